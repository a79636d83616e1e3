package diap

import "errors"

// Error payload labels sent in place of a response.
const (
	LabelBadHeader          = "BAD MSG HEADER"
	LabelNoLineFeed         = "NO LINE FEED"
	LabelNoOpenDelimiter    = "NO OPEN DELIMITER"
	LabelNoCloseDelimiter   = "NO CLOSE DELIMITER"
	LabelCommandTooLarge    = "COMMAND TOO LARGE"
	LabelInvalidCRCChar     = "INVALID CRC CHAR"
	LabelRequestCorrupt     = "REQUEST CORRUPT"
	LabelResponseTooLarge   = "RESPONSE TOO LARGE"
	LabelUndefinedError     = "UNDEFINED ERROR"
	UnsupportedFeatureValue = "UNSUPPORTED FEATURE"
)

// ProtocolError is a request failure that is answered with a fixed payload label.
type ProtocolError struct {
	label string
	desc  string
}

func newProtocolError(label, desc string) *ProtocolError {
	return &ProtocolError{label: label, desc: desc}
}

func (e *ProtocolError) Error() string {
	return "diap: " + e.desc
}

// Label returns the payload sent back for this error.
func (e *ProtocolError) Label() string {
	return e.label
}

// Sentinel errors, one per wire label.
var (
	// Frame-malformation errors, checked in this order.
	ErrBadHeader             = newProtocolError(LabelBadHeader, "bad message header")
	ErrMissingTerminator     = newProtocolError(LabelNoLineFeed, "no line terminator")
	ErrMissingOpenDelimiter  = newProtocolError(LabelNoOpenDelimiter, "no open delimiter")
	ErrMissingCloseDelimiter = newProtocolError(LabelNoCloseDelimiter, "no close delimiter")
	ErrCommandTooLarge       = newProtocolError(LabelCommandTooLarge, "command too large")
	ErrInvalidChecksumChars  = newProtocolError(LabelInvalidCRCChar, "invalid checksum characters")
	ErrChecksumMismatch      = newProtocolError(LabelRequestCorrupt, "checksum mismatch")

	// Capacity error, aborts the remaining commands of a request.
	ErrResponseTooLarge = newProtocolError(LabelResponseTooLarge, "response too large")

	// Degenerate result.
	ErrUndefinedResponse = newProtocolError(LabelUndefinedError, "empty response")
)

// Label returns the payload label for err.
//
// Errors that do not wrap a ProtocolError map to UNDEFINED ERROR.
// A nil error has no label.
func Label(err error) string {
	if err == nil {
		return ""
	}

	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.label
	}

	return LabelUndefinedError
}

// IsErrorLabel reports whether payload is one of the error labels.
func IsErrorLabel(payload string) bool {
	switch payload {
	case LabelBadHeader, LabelNoLineFeed, LabelNoOpenDelimiter, LabelNoCloseDelimiter,
		LabelCommandTooLarge, LabelInvalidCRCChar, LabelRequestCorrupt,
		LabelResponseTooLarge, LabelUndefinedError:
		return true
	}

	return false
}
