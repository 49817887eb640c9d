package stream

// minGrowth is the smallest region a BufferOutput lends.
const minGrowth = 256

// BufferOutput is a growable in-memory Output. Every Lend at least doubles the
// logical length of the buffer and lends the new region; Commit trims the
// unused tail again, so the contents are exactly the committed bytes.
type BufferOutput struct {
	buf   []byte
	count int64
	lease lease
}

var _ Output = (*BufferOutput)(nil)

// NewBufferOutput creates a BufferOutput whose contents start with buf. Like
// bytes.NewBuffer, the new BufferOutput takes ownership of buf.
func NewBufferOutput(buf []byte) *BufferOutput {
	return &BufferOutput{buf: buf}
}

// Lend grows the buffer to max(2*len, 256) bytes and returns the new region.
func (b *BufferOutput) Lend() ([]byte, error) {
	if err := b.lease.acquire(); err != nil {
		return nil, err
	}

	old := len(b.buf)
	size := max(old*2, minGrowth)
	if cap(b.buf) < size {
		grown := make([]byte, old, size)
		copy(grown, b.buf)
		b.buf = grown
	}

	b.buf = b.buf[:size]
	b.lease.grant(size - old)
	return b.buf[old:], nil
}

// Commit shrinks the buffer by the unused tail of the last span.
func (b *BufferOutput) Commit(unused int) error {
	n, err := b.lease.release(unused)
	if err != nil {
		return err
	}

	b.buf = b.buf[:len(b.buf)-unused]
	b.count += int64(n)
	return nil
}

// ByteCount returns the number of bytes committed since creation. Bytes that
// were already in the initial buffer are not counted.
func (b *BufferOutput) ByteCount() int64 {
	return b.count
}

// Flush is a no-op; the buffer is the backing store.
func (b *BufferOutput) Flush() error {
	return nil
}

// Bytes returns the committed contents. The slice aliases the buffer and is
// only valid until the next Lend.
func (b *BufferOutput) Bytes() []byte {
	if b.lease.active {
		return b.buf[:len(b.buf)-b.lease.size]
	}
	return b.buf
}

// String returns the committed contents as a string.
func (b *BufferOutput) String() string {
	return string(b.Bytes())
}

// Len returns the number of committed bytes held by the buffer.
func (b *BufferOutput) Len() int {
	return len(b.Bytes())
}

// Reset empties the buffer but keeps its storage. ByteCount is not reset.
func (b *BufferOutput) Reset() {
	b.buf = b.buf[:0]
	b.lease = lease{}
}
