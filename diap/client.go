package diap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arloliu/go-diap/crc16"
)

// ErrMalformedFragment is returned by DecodeResponse for a fragment without '='.
var ErrMalformedFragment = errors.New("diap: malformed response fragment")

// Fragment is one "token=value" pair of a response.
type Fragment struct {
	Token string
	Value string
}

// Unsupported reports whether the responder did not recognize the token.
func (f Fragment) Unsupported() bool {
	return f.Value == UnsupportedFeatureValue
}

// Response is a decoded response frame.
type Response struct {
	// Payload is the exact text between '<' and '>'.
	Payload string
	// ErrorLabel is set when the responder answered with an error label.
	ErrorLabel string
	// Fragments holds the answered tokens in request order.
	Fragments []Fragment
}

// Value returns the value answered for token.
func (r *Response) Value(token string) (string, bool) {
	for _, f := range r.Fragments {
		if f.Token == token {
			return f.Value, true
		}
	}

	return "", false
}

// EncodeRequest builds a request frame for commands. A nil fn uses crc16.Default.
func EncodeRequest(fn crc16.Func, commands ...string) []byte {
	if fn == nil {
		fn = crc16.Default
	}
	payload := strings.Join(commands, separator)

	return appendFrame(make([]byte, 0, len(payload)+FrameOverhead), payload, fn)
}

// DecodeResponse validates a response frame and splits its payload.
// A nil fn uses crc16.Default.
func DecodeResponse(frame []byte, fn crc16.Func) (*Response, error) {
	if fn == nil {
		fn = crc16.Default
	}

	req, err := parseFrame(frame, BufferSize)
	if err != nil {
		return nil, err
	}
	if err := req.Verify(fn); err != nil {
		return nil, err
	}

	resp := &Response{Payload: req.Command}
	if IsErrorLabel(req.Command) {
		resp.ErrorLabel = req.Command
		return resp, nil
	}

	for _, part := range req.Commands() {
		token, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedFragment, part)
		}
		resp.Fragments = append(resp.Fragments, Fragment{Token: token, Value: value})
	}

	return resp, nil
}
