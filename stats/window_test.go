package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name    string
		samples []int32
		want    Window
	}{
		{"empty", nil, Window{}},
		{"single", []int32{42}, Window{42, 42, 42}},
		{"ascending", []int32{120, 150, 200}, Window{120, 156, 200}},
		{"unordered", []int32{200, 120, 150}, Window{120, 156, 200}},
		{"negative truncates toward zero", []int32{-10, -11, -11}, Window{-11, -10, -10}},
		{"mixed sign", []int32{-5, 0, 6}, Window{-5, 0, 6}},
		{"extremes", []int32{math.MaxInt32, math.MaxInt32, math.MinInt32}, Window{math.MinInt32, 715827882, math.MaxInt32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.samples...)
			assert.Equal(t, tt.want, w)
			assert.True(t, w.Valid())
		})
	}
}

func TestNewWindow_AlwaysValid(t *testing.T) {
	// exhaustive over a small range of triples
	for a := int32(-6); a <= 6; a++ {
		for b := int32(-6); b <= 6; b++ {
			for c := int32(-6); c <= 6; c++ {
				w := NewWindow(a, b, c)
				require.True(t, w.Valid(), "samples (%d, %d, %d) gave %v", a, b, c, w)
			}
		}
	}
}

func TestWindow_Valid(t *testing.T) {
	assert.True(t, Window{}.Valid())
	assert.True(t, Window{1, 1, 1}.Valid())
	assert.False(t, Window{2, 1, 3}.Valid())
	assert.False(t, Window{1, 4, 3}.Valid())
}

func TestWindow_IsZero(t *testing.T) {
	assert.True(t, Window{}.IsZero())
	assert.False(t, Window{0, 0, 1}.IsZero())
}

func TestWindow_String(t *testing.T) {
	assert.Equal(t, "{low: 12, avg: 15, high: 20}", Window{12, 15, 20}.String())
}

func TestChannel(t *testing.T) {
	names := []string{"temperature", "pressure", "humidity", "sound", "light", "vibration"}

	chs := Channels()
	require.Len(t, chs, NumChannels)
	for i, ch := range chs {
		assert.Equal(t, Channel(i), ch)
		assert.Equal(t, names[i], ch.String())
		assert.True(t, ch.Valid())

		parsed, err := ParseChannel(names[i])
		require.NoError(t, err)
		assert.Equal(t, ch, parsed)
	}

	assert.False(t, Channel(NumChannels).Valid())
	assert.Equal(t, "channel(6)", Channel(NumChannels).String())

	_, err := ParseChannel("Temperature")
	assert.Error(t, err, "channel names are case-sensitive")
}
