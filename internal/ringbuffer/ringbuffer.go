package ringbuffer

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("ringbuffer: write to closed buffer")

// RingBuffer is a blocking single-producer, single-consumer queue of samples.
type RingBuffer[T any] struct {
	buf        []T
	size       int
	readIndex  int
	writeIndex int
	closed     bool
	mu         sync.Mutex
	cond       *sync.Cond
}

// New creates a RingBuffer holding up to size-1 samples.
func New[T any](size int) *RingBuffer[T] {
	rb := &RingBuffer[T]{
		buf:  make([]T, size),
		size: size,
	}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

func (rb *RingBuffer[T]) availableWrite() int {
	if rb.writeIndex >= rb.readIndex {
		return rb.size - (rb.writeIndex - rb.readIndex) - 1
	}
	return rb.readIndex - rb.writeIndex - 1
}

func (rb *RingBuffer[T]) availableRead() int {
	if rb.writeIndex >= rb.readIndex {
		return rb.writeIndex - rb.readIndex
	}
	return rb.size - rb.readIndex + rb.writeIndex
}

// Len returns the number of samples waiting to be read.
func (rb *RingBuffer[T]) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.availableRead()
}

// Close marks the end of the stream and wakes blocked readers and writers.
func (rb *RingBuffer[T]) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}

// Write appends data, blocking while the buffer is full. It returns
// ErrClosed if the buffer is closed before all of data is written.
func (rb *RingBuffer[T]) Write(data []T) error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for i := 0; i < len(data); {
		for !rb.closed && rb.availableWrite() == 0 {
			rb.cond.Wait()
		}
		if rb.closed {
			return ErrClosed
		}

		end := rb.size
		if rb.readIndex > rb.writeIndex {
			end = rb.readIndex - 1
		} else if rb.readIndex == 0 {
			end = rb.size - 1
		}
		written := copy(rb.buf[rb.writeIndex:end], data[i:])
		rb.writeIndex = (rb.writeIndex + written) % rb.size
		i += written
		rb.cond.Broadcast()
	}
	return nil
}

// Read fills dst, blocking until len(dst) samples are available. Once the
// buffer is closed it returns whatever is left; it returns 0 when the buffer
// is closed and drained.
func (rb *RingBuffer[T]) Read(dst []T) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for !rb.closed && rb.availableRead() < len(dst) {
		rb.cond.Wait()
	}

	n := min(len(dst), rb.availableRead())
	if n == 0 {
		return 0
	}
	if rb.readIndex+n <= rb.size {
		copy(dst, rb.buf[rb.readIndex:rb.readIndex+n])
	} else {
		part1 := copy(dst, rb.buf[rb.readIndex:])
		copy(dst[part1:n], rb.buf[:n-part1])
	}
	rb.readIndex = (rb.readIndex + n) % rb.size
	rb.cond.Broadcast()
	return n
}
