// Package stats holds the per-channel statistic windows served by a DIAP responder.
//
// A Store owns one FIFO of Window per sensor channel. All six FIFOs always have
// the same length: they are loaded together and advanced together.
package stats

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-diap/internal/queue"
)

// ErrUnequalLength is returned by Store.Load when the channel sequences differ in length.
var ErrUnequalLength = errors.New("stats: channel sequences have unequal length")

// Store holds one oldest-first FIFO of Window per channel.
//
// Store is not goroutine-safe. The owner must ensure that Load and Advance never
// run concurrently with a read.
type Store struct {
	fifos [NumChannels]queue.Queue[Window]
}

// NewStore creates an empty Store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.fifos {
		s.fifos[i] = queue.NewRingQueue[Window](0)
	}

	return s
}

// Load replaces the content of every channel with seqs.
//
// seqs is indexed by Channel and every sequence must have the same length;
// otherwise ErrUnequalLength is returned and the store is left unchanged.
func (s *Store) Load(seqs [NumChannels][]Window) error {
	n := len(seqs[0])
	for ch, seq := range seqs {
		if len(seq) != n {
			return fmt.Errorf("%w: %s has %d windows, %s has %d",
				ErrUnequalLength, Channel(ch), len(seq), Temperature, n) //nolint:gosec // ch < NumChannels
		}
	}

	for ch, seq := range seqs {
		fifo := queue.NewRingQueue[Window](len(seq))
		for _, w := range seq {
			fifo.PushBack(w)
		}
		s.fifos[ch] = fifo
	}

	return nil
}

// Peek returns the oldest window of ch, or the zero Window if ch is empty.
func (s *Store) Peek(ch Channel) Window {
	if !ch.Valid() {
		return Window{}
	}

	w, _ := s.fifos[ch].Front()

	return w
}

// Advance drops the oldest window from every channel.
//
// It returns false, and changes nothing, when the store is already empty.
func (s *Store) Advance() bool {
	if s.IsEmpty() {
		return false
	}

	for _, fifo := range s.fifos {
		fifo.PopFront()
	}

	return true
}

// Len returns the number of windows held by each channel.
func (s *Store) Len() int {
	return s.fifos[Temperature].Len()
}

// ChannelLen returns the number of windows held by ch.
func (s *Store) ChannelLen(ch Channel) int {
	if !ch.Valid() {
		return 0
	}

	return s.fifos[ch].Len()
}

// IsEmpty reports whether the store holds no windows.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Snapshot returns a copy of the windows of ch, oldest first.
func (s *Store) Snapshot(ch Channel) []Window {
	if !ch.Valid() {
		return nil
	}

	return s.fifos[ch].Slice()
}
