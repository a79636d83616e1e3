package diap

import (
	"strconv"
	"strings"

	"github.com/arloliu/go-diap/stats"
)

// maxValueLen is the longest value a fragment can carry: the unsupported label
// or a full-width int32.
var maxValueLen = max(len(UnsupportedFeatureValue), len(strconv.Itoa(-2147483648)))

// ResponseBuilder accumulates "token=value" fragments joined by ';' under a
// fixed byte budget.
//
// A ResponseBuilder is created per request and is not goroutine-safe.
type ResponseBuilder struct {
	buf      strings.Builder
	capacity int
	overhead int
	count    int
}

// NewResponseBuilder creates a builder whose framed output, with overhead bytes
// of framing around the payload, must fit in capacity bytes.
func NewResponseBuilder(capacity, overhead int) *ResponseBuilder {
	return &ResponseBuilder{capacity: capacity, overhead: overhead}
}

// worstCase is the largest fragment token can produce, separator included,
// when its value is padded to width.
func worstCase(token string, width int) int {
	return 1 + len(token) + 1 + max(maxValueLen, width)
}

// Append adds "token=value" to the response.
//
// If the worst-case fragment for token could overflow the budget, the
// accumulated content is discarded and ErrResponseTooLarge is returned; the
// caller must stop processing and answer with that error.
func (b *ResponseBuilder) Append(token, value string) error {
	return b.append(token, value, len(value))
}

func (b *ResponseBuilder) append(token, value string, width int) error {
	if b.buf.Len()+worstCase(token, width)+b.overhead > b.capacity {
		b.Reset()
		return ErrResponseTooLarge
	}

	if b.buf.Len() > 0 {
		b.buf.WriteByte(';')
	}
	b.buf.WriteString(token)
	b.buf.WriteByte('=')
	b.buf.WriteString(value)
	b.count++

	return nil
}

// AppendValue adds the field of w selected by e, zero-padded to e.PadWidth.
func (b *ResponseBuilder) AppendValue(e CommandEntry, w stats.Window) error {
	return b.append(e.Token, FormatValue(e.Field.Select(w), e.PadWidth), int(e.PadWidth))
}

// AppendUnsupported adds "token=UNSUPPORTED FEATURE".
func (b *ResponseBuilder) AppendUnsupported(token string) error {
	return b.Append(token, UnsupportedFeatureValue)
}

// String returns the accumulated payload.
func (b *ResponseBuilder) String() string {
	return b.buf.String()
}

// Len returns the payload length in bytes.
func (b *ResponseBuilder) Len() int {
	return b.buf.Len()
}

// Count returns the number of fragments appended since the last reset.
func (b *ResponseBuilder) Count() int {
	return b.count
}

// Reset discards the accumulated content.
func (b *ResponseBuilder) Reset() {
	b.buf.Reset()
	b.count = 0
}

// FormatValue renders v as a decimal zero-padded to width digits.
//
// Values wider than width are rendered in full. A negative value keeps its sign
// inside the width, as printf's %0*d does.
func FormatValue(v int32, width uint8) string {
	s := strconv.FormatInt(int64(v), 10)
	if len(s) >= int(width) {
		return s
	}

	pad := strings.Repeat("0", int(width)-len(s))
	if v < 0 {
		return "-" + pad + s[1:]
	}

	return pad + s
}

// isUndefinedPayload reports whether payload carries no answer.
func isUndefinedPayload(payload string) bool {
	return payload == "" || payload == "\n" || payload == "\r"
}
