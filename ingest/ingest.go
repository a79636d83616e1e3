// Package ingest turns sensor sample CSV files into statistic windows.
//
// The first line of the CSV is a header and is skipped. Every following row
// holds one sample per channel, in channel order:
//
//	temperature,pressure,humidity,sound,light,vibration
//
// Each value is scaled by ten and truncated to an integer, then consecutive
// rows are grouped into windows whose min, truncated mean and max become one
// stats.Window per channel. A trailing partial window is dropped.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/go-diap/stats"
)

// DefaultWindowSize is the number of samples summarized by one window.
const DefaultWindowSize = 3

// scale converts a sample to the fixed-point unit served by the responder.
const scale = 10

var (
	// ErrNoHeader is returned for an input without a header line.
	ErrNoHeader = errors.New("ingest: missing header line")
	// ErrColumnCount is returned for a row without exactly one value per channel.
	ErrColumnCount = errors.New("ingest: wrong column count")
	// ErrBadValue is returned for a value that is not a finite number in int32 range once scaled.
	ErrBadValue = errors.New("ingest: bad value")
)

// Option configures ReadCSV.
type Option interface {
	apply(*options) error
}

type options struct {
	windowSize int
}

type optFunc func(*options) error

func (f optFunc) apply(o *options) error { return f(o) }

// WithWindowSize sets the number of rows per window.
func WithWindowSize(n int) Option {
	return optFunc(func(o *options) error {
		if n < 1 {
			return fmt.Errorf("ingest: window size %d must be positive", n)
		}
		o.windowSize = n

		return nil
	})
}

// LoadFile reads the CSV file at path; see ReadCSV.
func LoadFile(path string, opts ...Option) ([stats.NumChannels][]stats.Window, error) {
	f, err := os.Open(path)
	if err != nil {
		return [stats.NumChannels][]stats.Window{}, err
	}
	defer f.Close()

	return ReadCSV(f, opts...)
}

// ReadCSV reads sample rows from r and returns the windows of every channel,
// ready for stats.Store.Load.
func ReadCSV(r io.Reader, opts ...Option) ([stats.NumChannels][]stats.Window, error) {
	var seqs [stats.NumChannels][]stats.Window

	o := options{windowSize: DefaultWindowSize}
	for _, opt := range opts {
		if err := opt.apply(&o); err != nil {
			return seqs, err
		}
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return seqs, ErrNoHeader
		}

		return seqs, fmt.Errorf("ingest: header: %w", err)
	}

	// cols[ch] collects the scaled samples of the window being filled
	var cols [stats.NumChannels][]float64
	for ch := range cols {
		cols[ch] = make([]float64, 0, o.windowSize)
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return [stats.NumChannels][]stats.Window{}, fmt.Errorf("ingest: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if len(record) != stats.NumChannels {
			return [stats.NumChannels][]stats.Window{}, fmt.Errorf("%w: line %d has %d columns, want %d",
				ErrColumnCount, line, len(record), stats.NumChannels)
		}

		for ch, field := range record {
			v, err := parseSample(field)
			if err != nil {
				return [stats.NumChannels][]stats.Window{}, fmt.Errorf("%w: line %d column %d: %q",
					ErrBadValue, line, ch+1, field)
			}
			cols[ch] = append(cols[ch], v)
		}

		if len(cols[0]) < o.windowSize {
			continue
		}
		for ch := range cols {
			seqs[ch] = append(seqs[ch], summarize(cols[ch]))
			cols[ch] = cols[ch][:0]
		}
	}

	return seqs, nil
}

// parseSample scales a sample and truncates it toward zero.
func parseSample(field string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}

	v := math.Trunc(f * scale)
	if math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, strconv.ErrRange
	}

	return v, nil
}

// summarize returns the min, truncated mean and max of samples.
func summarize(samples []float64) stats.Window {
	sum := int64(floats.Sum(samples))

	return stats.Window{
		Low:  int32(floats.Min(samples)),
		Avg:  int32(sum / int64(len(samples))), //nolint:gosec // mean of int32 values
		High: int32(floats.Max(samples)),
	}
}
