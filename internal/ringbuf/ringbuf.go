// Package ringbuf implements a fixed-capacity circular FIFO byte store.
//
// The capacity is always a power of two so cursor wrap-around is a mask
// instead of a division. A Buffer never grows: writes beyond the free space
// are truncated and reads return at most what is stored.
//
// A Buffer is not goroutine-safe.
package ringbuf

import "fmt"

const (
	// MinBits is the smallest accepted capacity exponent (2 bytes).
	MinBits = 1
	// MaxBits is the largest accepted capacity exponent (1 GiB).
	MaxBits = 30
)

// Buffer is a circular byte FIFO of capacity 1<<bits.
type Buffer struct {
	data []byte
	mask int
	head int // read index, always in [0, cap)
	size int // occupied bytes, always in [0, cap]
}

// New creates a Buffer holding up to 1<<bits bytes.
//
// It panics if bits is outside [MinBits, MaxBits].
func New(bits uint) *Buffer {
	if bits < MinBits || bits > MaxBits {
		panic(fmt.Sprintf("ringbuf: capacity bits %d out of range [%d, %d]", bits, MinBits, MaxBits))
	}

	capacity := 1 << bits

	return &Buffer{
		data: make([]byte, capacity),
		mask: capacity - 1,
	}
}

// Cap returns the fixed capacity in bytes.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return b.size }

// Free returns the number of bytes that can be written without truncation.
func (b *Buffer) Free() int { return len(b.data) - b.size }

// Reset discards all unread bytes. The storage is not zeroed.
func (b *Buffer) Reset() {
	b.head = 0
	b.size = 0
}

// Write copies min(len(p), Free()) bytes into the buffer and returns the
// number of bytes copied. Bytes that do not fit are dropped; unread data is
// never overwritten.
func (b *Buffer) Write(p []byte) int {
	n := min(len(p), b.Free())
	if n == 0 {
		return 0
	}

	tail := (b.head + b.size) & b.mask
	first := copy(b.data[tail:], p[:n])
	if first < n {
		copy(b.data, p[first:n])
	}
	b.size += n

	return n
}

// Read copies min(len(p), Len()) bytes out in FIFO order and returns the
// number of bytes copied, which may be zero.
func (b *Buffer) Read(p []byte) int {
	n := min(len(p), b.size)
	if n == 0 {
		return 0
	}

	first := copy(p[:n], b.data[b.head:])
	if first < n {
		copy(p[first:n], b.data)
	}
	b.head = (b.head + n) & b.mask
	b.size -= n
	if b.size == 0 {
		b.head = 0
	}

	return n
}
