package diap

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-diap/stats"
)

// Field selects one value of a stats.Window.
type Field uint8

const (
	FieldLow Field = iota
	FieldAvg
	FieldHigh
)

// Select returns the value of w picked by f.
func (f Field) Select(w stats.Window) int32 {
	switch f {
	case FieldAvg:
		return w.Avg
	case FieldHigh:
		return w.High
	default:
		return w.Low
	}
}

func (f Field) String() string {
	switch f {
	case FieldLow:
		return "low"
	case FieldAvg:
		return "avg"
	case FieldHigh:
		return "high"
	default:
		return fmt.Sprintf("field(%d)", uint8(f))
	}
}

// DefaultPadWidth is the zero-pad width used for channels without a class width.
const DefaultPadWidth uint8 = 3

// PadWidth returns the zero-pad width of values read from ch.
func PadWidth(ch stats.Channel) uint8 {
	switch ch {
	case stats.Temperature:
		return 5
	case stats.Pressure:
		return 4
	case stats.Humidity, stats.Sound, stats.Light:
		return 3
	case stats.Vibration:
		return 6
	default:
		return DefaultPadWidth
	}
}

// CommandEntry maps one command token to the value it reads.
type CommandEntry struct {
	Token    string
	Channel  stats.Channel
	Field    Field
	PadWidth uint8
}

// CommandTable resolves command tokens. It is immutable once built.
type CommandTable struct {
	entries []CommandEntry
	index   map[string]CommandEntry
}

var (
	errEmptyToken     = errors.New("diap: empty command token")
	errDuplicateToken = errors.New("diap: duplicate command token")
)

// NewCommandTable builds a table from entries. Tokens must be non-empty and unique.
func NewCommandTable(entries ...CommandEntry) (*CommandTable, error) {
	tbl := &CommandTable{
		entries: make([]CommandEntry, 0, len(entries)),
		index:   make(map[string]CommandEntry, len(entries)),
	}

	for _, e := range entries {
		if e.Token == "" {
			return nil, errEmptyToken
		}
		if _, ok := tbl.index[e.Token]; ok {
			return nil, fmt.Errorf("%w: %q", errDuplicateToken, e.Token)
		}
		if !e.Channel.Valid() {
			return nil, fmt.Errorf("diap: token %q has invalid channel %d", e.Token, e.Channel)
		}
		if e.Field > FieldHigh {
			return nil, fmt.Errorf("diap: token %q has invalid field %d", e.Token, e.Field)
		}
		tbl.entries = append(tbl.entries, e)
		tbl.index[e.Token] = e
	}

	return tbl, nil
}

// channelPrefixes names the token stem of every channel; stems are followed by
// 1 (low), 2 (avg) or 3 (high).
var channelPrefixes = [stats.NumChannels]string{
	stats.Temperature: "t",
	stats.Pressure:    "p",
	stats.Humidity:    "anesetpercent",
	stats.Sound:       "s",
	stats.Light:       "l",
	stats.Vibration:   "v",
}

var defaultTable = func() *CommandTable {
	entries := make([]CommandEntry, 0, stats.NumChannels*3)
	for _, ch := range stats.Channels() {
		for i, f := range []Field{FieldLow, FieldAvg, FieldHigh} {
			entries = append(entries, CommandEntry{
				Token:    fmt.Sprintf("%s%d", channelPrefixes[ch], i+1),
				Channel:  ch,
				Field:    f,
				PadWidth: PadWidth(ch),
			})
		}
	}

	tbl, err := NewCommandTable(entries...)
	if err != nil {
		panic(err)
	}

	return tbl
}()

// DefaultCommandTable returns the standard DIAP command vocabulary.
func DefaultCommandTable() *CommandTable {
	return defaultTable
}

// Resolve looks token up by exact, case-sensitive match.
func (t *CommandTable) Resolve(token string) (CommandEntry, bool) {
	e, ok := t.index[token]
	return e, ok
}

// Entries returns a copy of the table in definition order.
func (t *CommandTable) Entries() []CommandEntry {
	out := make([]CommandEntry, len(t.entries))
	copy(out, t.entries)

	return out
}

// Len returns the number of tokens in the table.
func (t *CommandTable) Len() int {
	return len(t.entries)
}
