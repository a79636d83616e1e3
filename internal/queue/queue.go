// Package queue provides the FIFO containers used by the statistic store.
package queue

// Queue defines the interface for a FIFO of T.
type Queue[T any] interface {
	// PushBack adds an item to the tail of the queue.
	PushBack(item T)
	// PopFront removes and returns the item at the head of the queue.
	// ok is false if the queue is empty.
	PopFront() (item T, ok bool)
	// Front returns the item at the head of the queue without removing it.
	// ok is false if the queue is empty.
	Front() (item T, ok bool)
	// Reset to an empty queue
	Reset()
	// IsEmpty returns true if the queue is empty, false otherwise.
	IsEmpty() bool
	// Len returns the number of items in the queue.
	Len() int
	// Slice returns a copy of the items, head first.
	Slice() []T
}
