package stats

import (
	"fmt"
	"math"
)

// Window is the (low, avg, high) summary of one group of raw samples.
//
// Values are fixed point: raw sample × 10, truncated to an integer.
type Window struct {
	Low  int32
	Avg  int32
	High int32
}

// NewWindow summarizes samples into a Window.
//
// Avg is the mean of the samples truncated toward zero, so Low <= Avg <= High
// always holds. NewWindow returns the zero Window when samples is empty.
func NewWindow(samples ...int32) Window {
	if len(samples) == 0 {
		return Window{}
	}

	low, high := int32(math.MaxInt32), int32(math.MinInt32)
	var sum int64
	for _, v := range samples {
		low = min(low, v)
		high = max(high, v)
		sum += int64(v)
	}

	return Window{
		Low:  low,
		Avg:  int32(sum / int64(len(samples))), //nolint:gosec // mean of int32 values fits int32
		High: high,
	}
}

// Valid reports whether Low <= Avg <= High.
func (w Window) Valid() bool {
	return w.Low <= w.Avg && w.Avg <= w.High
}

// IsZero reports whether w is the zero Window returned for an empty channel.
func (w Window) IsZero() bool {
	return w == Window{}
}

func (w Window) String() string {
	return fmt.Sprintf("{low: %d, avg: %d, high: %d}", w.Low, w.Avg, w.High)
}
