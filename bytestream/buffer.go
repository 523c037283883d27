package bytestream

// Buffer is the byte storage behind one or more streams. Streams created with
// NewShared hold the same *Buffer, so a resize or replacement through one
// handle is seen by all of them.
type Buffer struct {
	data []byte
}

func NewBuffer(size int) *Buffer {
	return &Buffer{
		data: make([]byte, size),
	}
}

func (b *Buffer) Bytes() []byte {
	return b.data
}

func (b *Buffer) Len() int {
	return len(b.data)
}

func (b *Buffer) resize(n int) {
	switch {
	case n == len(b.data):
	case n < len(b.data):
		b.data = b.data[:n]
	case n <= cap(b.data):
		tail := b.data[len(b.data):n]
		for i := range tail {
			tail[i] = 0
		}
		b.data = b.data[:n]
	default:
		grown := make([]byte, n)
		copy(grown, b.data)
		b.data = grown
	}
}

func (b *Buffer) replace(data []byte) {
	b.data = data
}

func (b *Buffer) prepend(p []byte) {
	joined := make([]byte, len(p)+len(b.data))
	copy(joined, p)
	copy(joined[len(p):], b.data)
	b.data = joined
}
