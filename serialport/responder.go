package serialport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/arloliu/go-diap/diap"
	"github.com/arloliu/go-diap/logger"
	"github.com/arloliu/go-diap/stats"
)

var (
	// ErrResponderClosed is returned after Close has been called.
	ErrResponderClosed = errors.New("serialport: responder is closed")
	// ErrAlreadyServing is returned when Serve is called while another Serve runs.
	ErrAlreadyServing = errors.New("serialport: responder is already serving")
	// ErrNilEngine is returned by NewResponder without an engine.
	ErrNilEngine = errors.New("serialport: engine is nil")
)

type reloadRequest struct {
	seqs [stats.NumChannels][]stats.Window
	done chan error
}

// Responder answers DIAP requests arriving on a Port, one at a time.
//
// A single read goroutine, started by the first Serve call, scans the port for
// the lifetime of the Responder. Frames read while no Serve runs wait for the
// next Serve call, so restarting Serve never drops a request.
type Responder struct {
	port   Port
	engine *diap.Engine
	cfg    *responderConfig
	logger logger.Logger

	lineChan chan []byte
	// readErr is set by readLoop before lineChan is closed.
	readErr  error
	readOnce sync.Once

	reloadChan chan *reloadRequest
	closeChan  chan struct{}
	closeOnce  sync.Once
	serving    atomic.Bool
}

// NewResponder creates a Responder serving engine over port.
func NewResponder(port Port, engine *diap.Engine, opts ...Option) (*Responder, error) {
	if port == nil {
		return nil, errors.New("serialport: port is nil")
	}
	if engine == nil {
		return nil, ErrNilEngine
	}

	cfg, err := newResponderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Responder{
		port:       port,
		engine:     engine,
		cfg:        cfg,
		logger:     cfg.logger.With("component", "diap-responder"),
		lineChan:   make(chan []byte),
		reloadChan: make(chan *reloadRequest),
		closeChan:  make(chan struct{}),
	}, nil
}

// Serve runs the request loop until ctx is done, the port reaches EOF, or
// Close is called. Serve may be called again after it returns because of ctx.
//
// It returns nil on EOF and after Close, ctx.Err() on cancellation, and the
// underlying error when reading from or writing to the port fails. The read
// goroutine exits once the port is closed or fails.
func (r *Responder) Serve(ctx context.Context) error {
	if r.isClosed() {
		return ErrResponderClosed
	}
	if !r.serving.CompareAndSwap(false, true) {
		return ErrAlreadyServing
	}
	defer r.serving.Store(false)

	log := r.logger.With("session", uuid.NewString())
	log.Info("responder started", "max_frame_size", r.cfg.maxFrameSize)

	r.readOnce.Do(func() { go r.readLoop() })

	for {
		select {
		case <-ctx.Done():
			log.Info("responder stopped", "reason", ctx.Err())
			return ctx.Err()

		case <-r.closeChan:
			log.Info("responder stopped", "reason", "closed")
			return nil

		case req := <-r.reloadChan:
			req.done <- r.engine.Load(req.seqs)

		case line, ok := <-r.lineChan:
			if !ok {
				if r.readErr != nil {
					return r.readFailed(log, r.readErr)
				}
				log.Info("responder stopped", "reason", "eof")

				return nil
			}

			if err := r.answer(log, line); err != nil {
				if r.isClosed() {
					return nil
				}

				return err
			}
		}
	}
}

// readLoop scans frames from the port and hands copies of them to lineChan.
func (r *Responder) readLoop() {
	defer close(r.lineChan)

	scan := bufio.NewScanner(r.port)
	scan.Buffer(make([]byte, 0, r.cfg.maxFrameSize), r.cfg.maxFrameSize)
	scan.Split(splitFrames(r.cfg.maxFrameSize - 1))

	for scan.Scan() {
		token := scan.Bytes()
		if isBlankLine(token) {
			continue
		}

		select {
		case r.lineChan <- bytes.Clone(token):
		case <-r.closeChan:
			return
		}
	}

	r.readErr = scan.Err()
}

func (r *Responder) readFailed(log logger.Logger, err error) error {
	if r.isClosed() {
		log.Info("responder stopped", "reason", "closed")
		return nil
	}
	log.Error("read failed", "error", err)

	return fmt.Errorf("serialport: read: %w", err)
}

func (r *Responder) answer(log logger.Logger, line []byte) error {
	resp := r.engine.Handle(line)
	log.Debug("request answered", "request", string(line), "response", string(resp))

	if _, err := r.port.Write(resp); err != nil {
		log.Error("write failed", "error", err)
		return fmt.Errorf("serialport: write: %w", err)
	}

	return nil
}

// Reload hands seqs to the request loop, which installs them between two
// requests. It blocks until the store is replaced, ctx is done, or the
// responder is closed; a Serve loop must be running for it to complete.
func (r *Responder) Reload(ctx context.Context, seqs [stats.NumChannels][]stats.Window) error {
	req := &reloadRequest{seqs: seqs, done: make(chan error, 1)}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.closeChan:
		return ErrResponderClosed
	case r.reloadChan <- req:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-req.done:
		if err != nil {
			r.logger.Warn("store reload rejected", "error", err)
		}

		return err
	}
}

// Close stops Serve and closes the port. Close is idempotent.
func (r *Responder) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.closeChan)
		err = r.port.Close()
	})

	return err
}

// Engine returns the engine served by r.
func (r *Responder) Engine() *diap.Engine {
	return r.engine
}

func (r *Responder) isClosed() bool {
	select {
	case <-r.closeChan:
		return true
	default:
		return false
	}
}

// splitFrames is a bufio.SplitFunc that yields everything up to and including
// the first '\n' or '\r'. A run of limit bytes without a terminator, or the
// remainder of the stream at EOF, is yielded unterminated.
func splitFrames(limit int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if i := bytes.IndexAny(data, "\n\r"); i >= 0 && i < limit {
			return i + 1, data[:i+1], nil
		}
		if len(data) >= limit {
			return limit, data[:limit], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}

		return 0, nil, nil
	}
}

func isBlankLine(token []byte) bool {
	return len(token) == 1 && (token[0] == '\n' || token[0] == '\r')
}
