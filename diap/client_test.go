package diap

import (
	"testing"

	"github.com/arloliu/go-diap/crc16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequest(t *testing.T) {
	frame := EncodeRequest(nil, "t1", "t2")
	want := "DIAP000<t1;t2>" + hex4(crc16.Checksum([]byte("t1;t2"))) + "\n"
	assert.Equal(t, want, string(frame))

	req, err := Parse(frame)
	require.NoError(t, err)
	require.NoError(t, req.Verify(crc16.Default))
	assert.Equal(t, []string{"t1", "t2"}, req.Commands())
}

func TestEncodeRequest_Empty(t *testing.T) {
	frame := EncodeRequest(crc16.XModem)
	assert.Equal(t, "DIAP000<>0000\n", string(frame))
}

func TestDecodeResponse(t *testing.T) {
	frame := appendFrame(nil, "t1=00012;foo=UNSUPPORTED FEATURE", crc16.XModem)

	resp, err := DecodeResponse(frame, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.ErrorLabel)
	require.Len(t, resp.Fragments, 2)
	assert.Equal(t, Fragment{Token: "t1", Value: "00012"}, resp.Fragments[0])
	assert.False(t, resp.Fragments[0].Unsupported())
	assert.True(t, resp.Fragments[1].Unsupported())

	v, ok := resp.Value("t1")
	assert.True(t, ok)
	assert.Equal(t, "00012", v)

	_, ok = resp.Value("t2")
	assert.False(t, ok)
}

func TestDecodeResponse_ErrorLabels(t *testing.T) {
	labels := []string{
		LabelBadHeader,
		LabelNoLineFeed,
		LabelNoOpenDelimiter,
		LabelNoCloseDelimiter,
		LabelCommandTooLarge,
		LabelInvalidCRCChar,
		LabelRequestCorrupt,
		LabelResponseTooLarge,
		LabelUndefinedError,
	}

	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			resp, err := DecodeResponse(appendFrame(nil, label, crc16.XModem), nil)
			require.NoError(t, err)
			assert.Equal(t, label, resp.ErrorLabel)
			assert.Equal(t, label, resp.Payload)
			assert.Empty(t, resp.Fragments)
		})
	}
}

func TestDecodeResponse_Invalid(t *testing.T) {
	t.Run("corrupt checksum", func(t *testing.T) {
		frame := appendFrame(nil, "t1=00012", crc16.XModem)
		if frame[len(frame)-2] == '0' {
			frame[len(frame)-2] = '1'
		} else {
			frame[len(frame)-2] = '0'
		}

		_, err := DecodeResponse(frame, nil)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("structure", func(t *testing.T) {
		_, err := DecodeResponse([]byte("DIAP000<t1=00012"), nil)
		assert.ErrorIs(t, err, ErrMissingTerminator)
	})

	t.Run("fragment without value", func(t *testing.T) {
		_, err := DecodeResponse(appendFrame(nil, "t1=1;t2", crc16.XModem), nil)
		assert.ErrorIs(t, err, ErrMalformedFragment)
	})
}

func TestClientEngineRoundTrip(t *testing.T) {
	e := newTestEngine(t, uniformSeqs(1))

	resp, err := DecodeResponse(e.Handle(EncodeRequest(nil, "s1", "l2", "v3")), nil)
	require.NoError(t, err)
	assert.Equal(t, []Fragment{
		{Token: "s1", Value: "001"},
		{Token: "l2", Value: "001"},
		{Token: "v3", Value: "000001"},
	}, resp.Fragments)
}
