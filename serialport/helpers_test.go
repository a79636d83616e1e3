package serialport

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-diap/diap"
	"github.com/arloliu/go-diap/stats"
)

const testTimeout = 3 * time.Second

// seqsOf builds a load set where every channel holds one {v, v, v} window per value.
func seqsOf(values ...int32) [stats.NumChannels][]stats.Window {
	var seqs [stats.NumChannels][]stats.Window
	for ch := range seqs {
		for _, v := range values {
			seqs[ch] = append(seqs[ch], stats.Window{Low: v, Avg: v, High: v})
		}
	}

	return seqs
}

func newTestEngine(t *testing.T, seqs [stats.NumChannels][]stats.Window) *diap.Engine {
	t.Helper()

	store := stats.NewStore()
	require.NoError(t, store.Load(seqs))

	cfg, err := diap.NewEngineConfig()
	require.NoError(t, err)

	e, err := diap.NewEngine(store, cfg)
	require.NoError(t, err)

	return e
}

type testHost struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

// send writes raw bytes to the responder.
func (h *testHost) send(b []byte) {
	h.t.Helper()

	go func() { _, _ = h.conn.Write(b) }()
}

// receive reads one response frame and decodes it.
func (h *testHost) receive() *diap.Response {
	h.t.Helper()

	require.NoError(h.t, h.conn.SetReadDeadline(time.Now().Add(testTimeout)))
	frame, err := h.reader.ReadBytes('\n')
	require.NoError(h.t, err)

	resp, err := diap.DecodeResponse(frame, nil)
	require.NoError(h.t, err, "response frame %q", frame)

	return resp
}

// roundTrip sends a request for commands and returns the decoded response.
func (h *testHost) roundTrip(commands ...string) *diap.Response {
	h.t.Helper()

	h.send(diap.EncodeRequest(nil, commands...))

	return h.receive()
}

// startResponder serves engine over an in-memory pipe and returns the host
// side of the pipe and the result of Serve.
func startResponder(t *testing.T, engine *diap.Engine, opts ...Option) (*Responder, *testHost, <-chan error) {
	t.Helper()

	devSide, hostSide := net.Pipe()
	r, err := NewResponder(devSide, engine, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- r.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		_ = r.Close()
		_ = hostSide.Close()
	})

	return r, &testHost{t: t, conn: hostSide, reader: bufio.NewReader(hostSide)}, errCh
}

// waitServe waits for Serve to return.
func waitServe(t *testing.T, errCh <-chan error) error {
	t.Helper()

	select {
	case err := <-errCh:
		return err
	case <-time.After(testTimeout):
		require.FailNow(t, "Serve did not return")
		return nil
	}
}

// pipePorts returns the two ends of an in-memory full-duplex link.
func pipePorts() (net.Conn, net.Conn) {
	return net.Pipe()
}
