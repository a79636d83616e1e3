package diap

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-diap/crc16"
	"github.com/arloliu/go-diap/logger"
)

// Limits accepted by the engine options.
const (
	MinResponseCapacity = FrameOverhead + 32
	MaxResponseCapacity = 64 * 1024
)

// EngineConfig holds the configuration of an Engine.
type EngineConfig struct {
	maxCommandSize   int
	responseCapacity int
	checksum         crc16.Func
	table            *CommandTable
	logger           logger.Logger
}

// NewEngineConfig creates an engine configuration.
//
// opts are functional options applied in order; see With* functions.
func NewEngineConfig(opts ...EngineOption) (*EngineConfig, error) {
	cfg := &EngineConfig{
		maxCommandSize:   MaxCommandSize,
		responseCapacity: BufferSize,
		checksum:         crc16.Default,
		table:            DefaultCommandTable(),
		logger:           logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.maxCommandSize >= cfg.responseCapacity {
		return nil, fmt.Errorf("diap: max command size %d must be below response capacity %d",
			cfg.maxCommandSize, cfg.responseCapacity)
	}

	return cfg, nil
}

// MaxCommandSize returns the limit on the bytes between '<' and '>' of a request.
func (cfg *EngineConfig) MaxCommandSize() int { return cfg.maxCommandSize }

// ResponseCapacity returns the byte budget of a framed response.
func (cfg *EngineConfig) ResponseCapacity() int { return cfg.responseCapacity }

// Checksum returns the checksum function shared by requests and responses.
func (cfg *EngineConfig) Checksum() crc16.Func { return cfg.checksum }

// CommandTable returns the table used for dispatch.
func (cfg *EngineConfig) CommandTable() *CommandTable { return cfg.table }

// GetLogger returns the configured logger.
func (cfg *EngineConfig) GetLogger() logger.Logger { return cfg.logger }

// EngineOption is a functional option for configuring an EngineConfig.
type EngineOption interface {
	apply(*EngineConfig) error
}

type engineOptFunc func(*EngineConfig) error

func (f engineOptFunc) apply(cfg *EngineConfig) error { return f(cfg) }

// WithMaxCommandSize sets the limit on the command text of a request.
func WithMaxCommandSize(n int) EngineOption {
	return engineOptFunc(func(cfg *EngineConfig) error {
		if n < 1 {
			return fmt.Errorf("diap: max command size %d must be positive", n)
		}
		cfg.maxCommandSize = n

		return nil
	})
}

// WithResponseCapacity sets the byte budget of a framed response.
func WithResponseCapacity(n int) EngineOption {
	return engineOptFunc(func(cfg *EngineConfig) error {
		if n < MinResponseCapacity || n > MaxResponseCapacity {
			return fmt.Errorf("diap: response capacity %d out of range [%d, %d]",
				n, MinResponseCapacity, MaxResponseCapacity)
		}
		cfg.responseCapacity = n

		return nil
	})
}

// WithChecksum replaces the CRC-16 primitive.
func WithChecksum(fn crc16.Func) EngineOption {
	return engineOptFunc(func(cfg *EngineConfig) error {
		if fn == nil {
			return errors.New("diap: checksum function must not be nil")
		}
		cfg.checksum = fn

		return nil
	})
}

// WithCommandTable replaces the command vocabulary.
func WithCommandTable(tbl *CommandTable) EngineOption {
	return engineOptFunc(func(cfg *EngineConfig) error {
		if tbl == nil {
			return errors.New("diap: command table must not be nil")
		}
		cfg.table = tbl

		return nil
	})
}

// WithLogger sets the logger for the engine.
func WithLogger(l logger.Logger) EngineOption {
	return engineOptFunc(func(cfg *EngineConfig) error {
		if l == nil {
			return errors.New("diap: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
