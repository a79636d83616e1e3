package serialport

import (
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"
)

// Default serial line parameters of a DIAP device.
const (
	DefaultBaudRate = 115200
	DefaultDataBits = 8
	DefaultStopBits = 1
)

// Port is the byte stream a Responder serves. go.bug.st/serial ports satisfy
// it, and so does any in-memory io.ReadWriteCloser used in tests.
type Port interface {
	io.ReadWriter
	io.Closer
}

// PortOptions describes the serial connection parameters used when opening a
// real serial port.
type PortOptions struct {
	BaudRate int    `toml:"baud_rate" json:"baud_rate"`
	DataBits int    `toml:"data_bits" json:"data_bits"`
	StopBits int    `toml:"stop_bits" json:"stop_bits"`
	Parity   string `toml:"parity" json:"parity"`
}

// parityCodes maps the accepted parity spellings to their one-letter code.
var parityCodes = map[string]string{
	"":     "N",
	"N":    "N",
	"NONE": "N",
	"E":    "E",
	"EVEN": "E",
	"O":    "O",
	"ODD":  "O",
}

var serialParity = map[string]serial.Parity{
	"N": serial.NoParity,
	"E": serial.EvenParity,
	"O": serial.OddParity,
}

var serialStopBits = map[int]serial.StopBits{
	1: serial.OneStopBit,
	2: serial.TwoStopBits,
}

// Normalize fills unset fields with the DIAP line defaults (115200 8N1) and
// canonicalizes the parity to N, E or O.
func (o PortOptions) Normalize() (PortOptions, error) {
	if o.BaudRate <= 0 {
		o.BaudRate = DefaultBaudRate
	}
	if o.DataBits == 0 {
		o.DataBits = DefaultDataBits
	}
	if o.StopBits == 0 {
		o.StopBits = DefaultStopBits
	}

	code, ok := parityCodes[strings.ToUpper(strings.TrimSpace(o.Parity))]
	if !ok {
		return o, fmt.Errorf("serialport: unsupported parity %q: expected N, E, or O", o.Parity)
	}
	o.Parity = code

	if _, err := o.mode(); err != nil {
		return o, err
	}

	return o, nil
}

// Mode converts the options into the serial.Mode used by go.bug.st/serial.
func (o PortOptions) Mode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}

	return opts.mode()
}

// mode builds the serial.Mode of already-defaulted options.
func (o PortOptions) mode() (*serial.Mode, error) {
	if o.DataBits < 5 || o.DataBits > 8 {
		return nil, fmt.Errorf("serialport: invalid data bits %d: must be between 5 and 8", o.DataBits)
	}

	stopBits, ok := serialStopBits[o.StopBits]
	if !ok {
		return nil, fmt.Errorf("serialport: invalid stop bits %d: supported values are 1 or 2", o.StopBits)
	}

	parity, ok := serialParity[o.Parity]
	if !ok {
		return nil, fmt.Errorf("serialport: unsupported parity %q: expected N, E, or O", o.Parity)
	}

	return &serial.Mode{
		BaudRate: o.BaudRate,
		DataBits: o.DataBits,
		Parity:   parity,
		StopBits: stopBits,
	}, nil
}

// String renders the options as "115200 8N1".
func (o PortOptions) String() string {
	return fmt.Sprintf("%d %d%s%d", o.BaudRate, o.DataBits, o.Parity, o.StopBits)
}

// Open opens the serial device at path.
func Open(path string, opts PortOptions) (Port, error) {
	mode, err := opts.Mode()
	if err != nil {
		return nil, err
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", path, err)
	}

	return port, nil
}
