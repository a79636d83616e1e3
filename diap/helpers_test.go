package diap

import (
	"testing"

	"github.com/arloliu/go-diap/crc16"
	"github.com/arloliu/go-diap/stats"
	"github.com/stretchr/testify/require"
)

// uniformSeqs builds a load set where every channel holds n windows {i, i, i}
// for i in 1..n, with temperature overridden by temp when given.
func uniformSeqs(n int, temp ...stats.Window) [stats.NumChannels][]stats.Window {
	var seqs [stats.NumChannels][]stats.Window
	for ch := range seqs {
		seqs[ch] = make([]stats.Window, n)
		for i := range n {
			v := int32(i + 1)
			seqs[ch][i] = stats.Window{Low: v, Avg: v, High: v}
		}
	}
	copy(seqs[stats.Temperature], temp)

	return seqs
}

// newTestEngine creates an engine over a store loaded with seqs.
func newTestEngine(t *testing.T, seqs [stats.NumChannels][]stats.Window, opts ...EngineOption) *Engine {
	t.Helper()

	store := stats.NewStore()
	require.NoError(t, store.Load(seqs))

	cfg, err := NewEngineConfig(opts...)
	require.NoError(t, err)

	e, err := NewEngine(store, cfg)
	require.NoError(t, err)

	return e
}

// request builds a correctly checksummed request frame for commands.
func request(commands ...string) []byte {
	return EncodeRequest(crc16.XModem, commands...)
}

// storeLens returns the length of every channel of s.
func storeLens(s *stats.Store) []int {
	lens := make([]int, 0, stats.NumChannels)
	for _, ch := range stats.Channels() {
		lens = append(lens, s.ChannelLen(ch))
	}

	return lens
}

// decode decodes a response frame, failing the test on error.
func decode(t *testing.T, frame []byte) *Response {
	t.Helper()

	resp, err := DecodeResponse(frame, nil)
	require.NoError(t, err, "response frame %q", frame)

	return resp
}
