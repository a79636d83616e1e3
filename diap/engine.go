package diap

import (
	"errors"

	"github.com/arloliu/go-diap/crc16"
	"github.com/arloliu/go-diap/logger"
	"github.com/arloliu/go-diap/stats"
)

// ErrConfigNil is returned by NewEngine when no configuration is given.
var ErrConfigNil = errors.New("diap: engine config is nil")

// Engine answers DIAP request frames from a statistic store.
//
// Engine is NOT goroutine-safe: one request is validated, dispatched and framed
// before the next is accepted, and the store must not be reloaded while Handle
// runs. serialport.Responder provides that discipline.
type Engine struct {
	cfg      *EngineConfig
	store    *stats.Store
	table    *CommandTable
	checksum crc16.Func
	logger   logger.Logger
	metrics  *EngineMetrics
}

// NewEngine creates an Engine serving store. A nil store starts empty.
func NewEngine(store *stats.Store, cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}
	if store == nil {
		store = stats.NewStore()
	}

	e := &Engine{
		cfg:      cfg,
		store:    store,
		table:    cfg.table,
		checksum: cfg.checksum,
		logger:   cfg.logger.With("component", "diap-engine"),
		metrics:  newEngineMetrics(),
	}
	e.metrics.setStoreLength(store.Len())

	return e, nil
}

// Handle answers one inbound frame and returns the framed response.
//
// Handle always produces a frame: either the response fragments, or the label
// of the error that ended the request.
func (e *Engine) Handle(buf []byte) []byte {
	payload, _ := e.Process(buf)
	return e.Frame(payload)
}

// Process answers one inbound frame and returns the unframed payload.
//
// err is nil when the payload holds response fragments. Otherwise the payload
// is Label(err).
func (e *Engine) Process(buf []byte) (payload string, err error) {
	e.metrics.incRequestCount()

	req, err := parseFrame(buf, e.cfg.maxCommandSize)
	if err == nil {
		err = req.Verify(e.checksum)
	}
	if err != nil {
		label := Label(err)
		e.metrics.incRejectCount(label)
		e.logger.Warn("frame rejected", "label", label, "reason", err, "request", string(buf))

		return label, err
	}

	payload, err = e.dispatch(req)
	if err != nil {
		return Label(err), err
	}
	e.metrics.incAnsweredCount()

	return payload, nil
}

func (e *Engine) dispatch(req *Request) (string, error) {
	rb := NewResponseBuilder(e.cfg.responseCapacity, FrameOverhead)

	for _, token := range req.Commands() {
		var err error
		if entry, ok := e.table.Resolve(token); ok {
			w := e.store.Peek(entry.Channel)
			e.logger.Debug("dispatch",
				"token", token,
				"channel", entry.Channel,
				"field", entry.Field,
				"window", w,
			)
			err = rb.AppendValue(entry, w)
		} else {
			e.metrics.incUnsupportedCount()
			e.logger.Debug("unsupported command", "token", token)
			err = rb.AppendUnsupported(token)
		}

		if err != nil {
			e.metrics.incOverflowCount()
			e.logger.Warn("response overflow",
				"reason", err,
				"fragments", rb.Count(),
				"capacity", e.cfg.responseCapacity,
			)

			return "", err
		}
	}

	e.advance()

	payload := rb.String()
	if isUndefinedPayload(payload) {
		e.metrics.incLabel(LabelUndefinedError)
		e.logger.Warn("empty response", "command", req.Command)

		return "", ErrUndefinedResponse
	}

	return payload, nil
}

// advance drops the oldest window of every channel, once per request.
func (e *Engine) advance() {
	if !e.store.Advance() {
		return
	}
	e.metrics.incAdvanceCount()
	e.metrics.setStoreLength(e.store.Len())
}

// Frame wraps payload as "DIAP000<payload>CCCC\n".
func (e *Engine) Frame(payload string) []byte {
	return appendFrame(make([]byte, 0, len(payload)+FrameOverhead), payload, e.checksum)
}

// Load replaces the store content. It must not run concurrently with Handle.
func (e *Engine) Load(seqs [stats.NumChannels][]stats.Window) error {
	if err := e.store.Load(seqs); err != nil {
		return err
	}
	e.metrics.setStoreLength(e.store.Len())
	e.logger.Info("statistic store loaded", "windows", e.store.Len())

	return nil
}

// Store returns the statistic store served by e.
func (e *Engine) Store() *stats.Store {
	return e.store
}

// Config returns the engine configuration.
func (e *Engine) Config() *EngineConfig {
	return e.cfg
}

// Metrics returns the engine metrics.
func (e *Engine) Metrics() *EngineMetrics {
	return e.metrics
}
