package serialport

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-diap/diap"
	"github.com/arloliu/go-diap/logger"
)

// Limits accepted by WithMaxFrameSize.
const (
	MinFrameSize = diap.FrameOverhead
	MaxFrameSize = 64 * 1024
)

type responderConfig struct {
	maxFrameSize int
	logger       logger.Logger
}

func newResponderConfig(opts ...Option) (*responderConfig, error) {
	cfg := &responderConfig{
		maxFrameSize: diap.BufferSize,
		logger:       logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Option is a functional option for configuring a Responder.
type Option interface {
	apply(*responderConfig) error
}

type optFunc func(*responderConfig) error

func (f optFunc) apply(cfg *responderConfig) error { return f(cfg) }

// WithMaxFrameSize sets the size of the inbound frame buffer. A run of n-1
// bytes without a terminator is answered as a frame missing its line feed.
func WithMaxFrameSize(n int) Option {
	return optFunc(func(cfg *responderConfig) error {
		if n < MinFrameSize || n > MaxFrameSize {
			return fmt.Errorf("serialport: max frame size %d out of range [%d, %d]", n, MinFrameSize, MaxFrameSize)
		}
		cfg.maxFrameSize = n

		return nil
	})
}

// WithLogger sets the logger for the responder.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *responderConfig) error {
		if l == nil {
			return errors.New("serialport: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
