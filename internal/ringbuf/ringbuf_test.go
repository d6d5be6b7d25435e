package ringbuf

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b := New(4)
	assert.Equal(t, 16, b.Cap())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 16, b.Free())

	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(MaxBits + 1) })
}

func TestBuffer_FIFO(t *testing.T) {
	b := New(3) // 8 bytes

	require.Equal(t, 5, b.Write([]byte("hello")))
	assert.Equal(t, 5, b.Len())

	out := make([]byte, 3)
	require.Equal(t, 3, b.Read(out))
	assert.Equal(t, []byte("hel"), out)
	assert.Equal(t, 2, b.Len())

	// Wraps around the end of the backing array.
	require.Equal(t, 6, b.Write([]byte("123456")))
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 0, b.Free())

	out = make([]byte, 8)
	require.Equal(t, 8, b.Read(out))
	assert.Equal(t, []byte("lo123456"), out)
	assert.Equal(t, 0, b.Len())
}

func TestBuffer_WriteTruncatesToFreeSpace(t *testing.T) {
	b := New(2) // 4 bytes

	require.Equal(t, 3, b.Write([]byte("abc")))
	assert.Equal(t, 1, b.Write([]byte("defg")))
	assert.Equal(t, 0, b.Write([]byte("h")))
	assert.Equal(t, 4, b.Len())

	out := make([]byte, 10)
	n := b.Read(out)
	require.Equal(t, 4, n)
	assert.Equal(t, []byte("abcd"), out[:n])
}

func TestBuffer_ReadShort(t *testing.T) {
	b := New(4)

	out := make([]byte, 4)
	assert.Equal(t, 0, b.Read(out))

	b.Write([]byte("xy"))
	assert.Equal(t, 2, b.Read(out))
	assert.Equal(t, []byte("xy"), out[:2])

	assert.Equal(t, 0, b.Write(nil))
	assert.Equal(t, 0, b.Read(nil))
}

func TestBuffer_Reset(t *testing.T) {
	b := New(4)
	b.Write([]byte("data"))
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, b.Cap(), b.Free())
	assert.Equal(t, 0, b.Read(make([]byte, 4)))
}

func TestBuffer_SizeAfterWriteRead(t *testing.T) {
	b := New(6)

	for n := 0; n <= b.Cap(); n += 7 {
		for m := 0; m <= n; m += 3 {
			b.Reset()
			require.Equal(t, n, b.Write(make([]byte, n)))
			require.Equal(t, m, b.Read(make([]byte, m)))
			assert.Equal(t, n-m, b.Len(), "n=%d m=%d", n, m)
		}
	}
}

func TestBuffer_RandomOpsMatchModel(t *testing.T) {
	b := New(5) // 32 bytes
	var model []byte
	rnd := rand.New(rand.NewSource(1))

	var next byte
	for i := 0; i < 5000; i++ {
		if rnd.Intn(2) == 0 {
			chunk := make([]byte, rnd.Intn(40))
			for j := range chunk {
				chunk[j] = next
				next++
			}
			n := b.Write(chunk)
			require.Equal(t, min(len(chunk), 32-len(model)), n)
			model = append(model, chunk[:n]...)
			// bytes that did not fit are not part of the stream
			next -= byte(len(chunk) - n)
		} else {
			out := make([]byte, rnd.Intn(40))
			n := b.Read(out)
			require.Equal(t, min(len(out), len(model)), n)
			require.True(t, bytes.Equal(model[:n], out[:n]), "iteration %d", i)
			model = model[n:]
		}
		require.Equal(t, len(model), b.Len())
	}
}
