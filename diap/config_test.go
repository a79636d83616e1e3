package diap

import (
	"testing"

	"github.com/arloliu/go-diap/crc16"
	"github.com/arloliu/go-diap/logger"
	"github.com/arloliu/go-diap/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineConfig_Defaults(t *testing.T) {
	require := require.New(t)

	cfg, err := NewEngineConfig()
	require.NoError(err)
	require.Equal(MaxCommandSize, cfg.MaxCommandSize())
	require.Equal(BufferSize, cfg.ResponseCapacity())
	require.NotNil(cfg.Checksum())
	require.Equal(crc16.Checksum([]byte("t1")), cfg.Checksum()(0, []byte("t1")))
	require.Same(DefaultCommandTable(), cfg.CommandTable())
	require.NotNil(cfg.GetLogger())
}

func TestNewEngineConfig_Options(t *testing.T) {
	assert := assert.New(t)

	tbl, err := NewCommandTable(CommandEntry{Token: "x", Channel: stats.Light, Field: FieldLow, PadWidth: 1})
	require.NoError(t, err)
	ml := logger.NewMockLogger()

	cfg, err := NewEngineConfig(
		WithMaxCommandSize(100),
		WithResponseCapacity(1024),
		WithCommandTable(tbl),
		WithLogger(ml),
	)
	require.NoError(t, err)
	assert.Equal(100, cfg.MaxCommandSize())
	assert.Equal(1024, cfg.ResponseCapacity())
	assert.Same(tbl, cfg.CommandTable())
	assert.Same(ml, cfg.GetLogger())
}

func TestNewEngineConfig_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []EngineOption
	}{
		{"zero command size", []EngineOption{WithMaxCommandSize(0)}},
		{"negative command size", []EngineOption{WithMaxCommandSize(-1)}},
		{"capacity below minimum", []EngineOption{WithResponseCapacity(MinResponseCapacity - 1)}},
		{"capacity above maximum", []EngineOption{WithResponseCapacity(MaxResponseCapacity + 1)}},
		{"nil checksum", []EngineOption{WithChecksum(nil)}},
		{"nil table", []EngineOption{WithCommandTable(nil)}},
		{"nil logger", []EngineOption{WithLogger(nil)}},
		{"command size not below capacity", []EngineOption{WithMaxCommandSize(BufferSize)}},
		{"capacity shrunk below command size", []EngineOption{WithResponseCapacity(MaxCommandSize)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewEngineConfig(tt.opts...)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestWithMaxCommandSize_Enforced(t *testing.T) {
	e := newTestEngine(t, uniformSeqs(1), WithMaxCommandSize(5))

	resp := decode(t, e.Handle(request("t1", "t2")))
	assert.Empty(t, resp.ErrorLabel)

	resp = decode(t, e.Handle(request("t1", "t2", "t3")))
	assert.Equal(t, LabelCommandTooLarge, resp.ErrorLabel)
}

func TestWithResponseCapacity_Enforced(t *testing.T) {
	// three "t1" fragments fit; the fourth could not hold a worst-case value
	const capacity = 60
	e := newTestEngine(t, uniformSeqs(1), WithResponseCapacity(capacity), WithMaxCommandSize(capacity-1))

	resp := decode(t, e.Handle(request("t1", "t1", "t1")))
	assert.Equal(t, "t1=00001;t1=00001;t1=00001", resp.Payload)

	payload, err := e.Process(request("t1", "t1", "t1", "t1"))
	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Equal(t, LabelResponseTooLarge, payload)
}
