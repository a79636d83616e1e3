package diap

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// EngineMetrics contains atomic metrics for an Engine.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type EngineMetrics struct {
	// RequestCount indicates the number of frames handled.
	RequestCount atomic.Uint64
	// AnsweredCount indicates the number of requests answered with values.
	AnsweredCount atomic.Uint64
	// RejectCount indicates the number of frames rejected by validation.
	RejectCount atomic.Uint64
	// OverflowCount indicates the number of requests aborted with RESPONSE TOO LARGE.
	OverflowCount atomic.Uint64
	// UnsupportedCount indicates the number of tokens answered with UNSUPPORTED FEATURE.
	UnsupportedCount atomic.Uint64
	// AdvanceCount indicates the number of global windowing advances.
	AdvanceCount atomic.Uint64
	// StoreLength indicates the number of windows left per channel.
	StoreLength atomic.Int64

	labels *xsync.MapOf[string, *xsync.Counter]
}

func newEngineMetrics() *EngineMetrics {
	return &EngineMetrics{
		labels: xsync.NewMapOf[string, *xsync.Counter](),
	}
}

// LabelCount returns how many responses carried the error label.
func (m *EngineMetrics) LabelCount(label string) int64 {
	c, ok := m.labels.Load(label)
	if !ok {
		return 0
	}

	return c.Value()
}

// LabelCounts returns a snapshot of the count of every error label seen so far.
func (m *EngineMetrics) LabelCounts() map[string]int64 {
	out := make(map[string]int64, m.labels.Size())
	m.labels.Range(func(label string, c *xsync.Counter) bool {
		out[label] = c.Value()
		return true
	})

	return out
}

func (m *EngineMetrics) incLabel(label string) {
	c, _ := m.labels.LoadOrCompute(label, xsync.NewCounter)
	c.Inc()
}

func (m *EngineMetrics) incRequestCount() {
	m.RequestCount.Add(1)
}

func (m *EngineMetrics) incAnsweredCount() {
	m.AnsweredCount.Add(1)
}

func (m *EngineMetrics) incRejectCount(label string) {
	m.RejectCount.Add(1)
	m.incLabel(label)
}

func (m *EngineMetrics) incOverflowCount() {
	m.OverflowCount.Add(1)
	m.incLabel(LabelResponseTooLarge)
}

func (m *EngineMetrics) incUnsupportedCount() {
	m.UnsupportedCount.Add(1)
}

func (m *EngineMetrics) incAdvanceCount() {
	m.AdvanceCount.Add(1)
}

func (m *EngineMetrics) setStoreLength(n int) {
	m.StoreLength.Store(int64(n))
}
