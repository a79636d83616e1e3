package diap

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/go-diap/crc16"
)

// Header is the literal token that starts every frame.
const Header = "DIAP000"

const (
	// MaxCommandSize is the default limit on the bytes between '<' and '>' of a request.
	MaxCommandSize = 255

	// BufferSize is the frame buffer budget shared by requests and responses.
	BufferSize = 511

	// FrameOverhead is the number of bytes a response frame adds around its
	// payload: header, both delimiters, four checksum digits and the line feed.
	FrameOverhead = len(Header) + 2 + 4 + 1
)

const (
	openDelimiter  = '<'
	closeDelimiter = '>'
	separator      = ";"
	terminators    = "\n\r"
)

// Request is an inbound frame that passed structural validation.
type Request struct {
	// Command is the exact text between '<' and '>'.
	Command string
	// ChecksumField is the hex text between '>' and the line terminator.
	ChecksumField string
}

// Parse validates the structure of buf and extracts its command and checksum
// text. Checks run in protocol order and the first failure is returned.
//
// Parse does not verify the checksum value; see Request.Verify.
func Parse(buf []byte) (*Request, error) {
	return parseFrame(buf, MaxCommandSize)
}

func parseFrame(buf []byte, maxCommandSize int) (*Request, error) {
	if !bytes.HasPrefix(buf, []byte(Header)) {
		return nil, ErrBadHeader
	}

	if bytes.IndexAny(buf, terminators) < 0 {
		return nil, ErrMissingTerminator
	}

	open := bytes.IndexByte(buf, openDelimiter)
	if open < 0 {
		return nil, ErrMissingOpenDelimiter
	}

	n := bytes.IndexByte(buf[open+1:], closeDelimiter)
	if n < 0 {
		return nil, ErrMissingCloseDelimiter
	}
	closeIdx := open + 1 + n

	if n > maxCommandSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrCommandTooLarge, n, maxCommandSize)
	}

	field := buf[closeIdx+1:]
	if end := bytes.IndexAny(field, terminators); end >= 0 {
		field = field[:end]
	}
	if !isHexString(field) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChecksumChars, field)
	}

	return &Request{
		Command:       string(buf[open+1 : closeIdx]),
		ChecksumField: string(field),
	}, nil
}

// Verify checks the checksum field against fn(0, Command).
func (r *Request) Verify(fn crc16.Func) error {
	received, err := strconv.ParseUint(r.ChecksumField, 16, 16)
	if err != nil {
		// more significant digits than 16 bits can never match
		return fmt.Errorf("%w: checksum %q out of range", ErrChecksumMismatch, r.ChecksumField)
	}

	calculated := fn(0, []byte(r.Command))
	if uint16(received) != calculated {
		return fmt.Errorf("%w: received %04X, calculated %04X", ErrChecksumMismatch, received, calculated)
	}

	return nil
}

// Commands returns the non-empty ';'-separated tokens of the command, in order.
func (r *Request) Commands() []string {
	parts := strings.Split(r.Command, separator)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}

	return tokens
}

// appendFrame appends "DIAP000<payload>CCCC\n" to dst.
func appendFrame(dst []byte, payload string, fn crc16.Func) []byte {
	dst = append(dst, Header...)
	dst = append(dst, openDelimiter)
	dst = append(dst, payload...)
	dst = append(dst, closeDelimiter)
	dst = fmt.Appendf(dst, "%04X", fn(0, []byte(payload)))

	return append(dst, '\n')
}

func isHexString(b []byte) bool {
	if len(b) == 0 {
		return false
	}

	for _, c := range b {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}
