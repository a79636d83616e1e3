package queue

const minRingSize = 8

// ringQueue implements the Queue interface with a growable ring buffer.
//
// PopFront is O(1); the buffer doubles when full and never shrinks until Reset.
// It is not goroutine-safe.
type ringQueue[T any] struct {
	buf  []T
	head int
	size int
}

var _ Queue[int] = (*ringQueue[int])(nil)

// NewRingQueue creates a new ring buffer queue with room for prealloc items.
func NewRingQueue[T any](prealloc int) Queue[T] {
	if prealloc < minRingSize {
		prealloc = minRingSize
	}

	return &ringQueue[T]{buf: make([]T, prealloc)}
}

// PushBack adds an item to the tail of the queue.
func (q *ringQueue[T]) PushBack(item T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = item
	q.size++
}

// PopFront removes and returns the item at the head of the queue.
func (q *ringQueue[T]) PopFront() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	item := q.buf[q.head]
	q.buf[q.head] = zero // release references held by the slot
	q.head = (q.head + 1) % len(q.buf)
	q.size--

	return item, true
}

// Front returns the item at the head of the queue without removing it.
func (q *ringQueue[T]) Front() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}

	return q.buf[q.head], true
}

// Reset resets the queue to an empty state, keeping the allocated buffer.
func (q *ringQueue[T]) Reset() {
	clear(q.buf)
	q.head = 0
	q.size = 0
}

// IsEmpty returns true if the queue is empty, false otherwise.
func (q *ringQueue[T]) IsEmpty() bool {
	return q.size == 0
}

// Len returns the number of items in the queue.
func (q *ringQueue[T]) Len() int {
	return q.size
}

// Slice returns a copy of the items, head first.
func (q *ringQueue[T]) Slice() []T {
	out := make([]T, q.size)
	for i := range q.size {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}

	return out
}

func (q *ringQueue[T]) grow() {
	buf := make([]T, len(q.buf)*2)
	n := copy(buf, q.buf[q.head:])
	copy(buf[n:], q.buf[:q.head])
	q.buf = buf
	q.head = 0
}
