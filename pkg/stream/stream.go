package stream

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// DefaultBufferSize is the buffer size used by the fixed-buffer adapters when
// a non-positive size is requested.
const DefaultBufferSize = 8192

// Usage errors reported by every adapter.
var (
	ErrLeaseOutstanding = errors.New("stream: previous span has not been committed")
	ErrNoLease          = errors.New("stream: commit without a lent span")
	ErrInvalidCommit    = errors.New("stream: unused count out of range")
	ErrClosed           = errors.New("stream: channel is closed")
)

type (
	// Output is a buffered channel that lends writable spans of its buffer.
	Output interface {
		// Lend returns a span of at least one byte that the caller may fill.
		// The span belongs to the channel and is only valid until Commit.
		Lend() ([]byte, error)

		// Commit declares that the last unused bytes of the previously lent
		// span were not written.
		Commit(unused int) error

		// ByteCount returns the number of bytes committed since creation.
		ByteCount() int64

		// Flush pushes buffered bytes to the underlying store.
		Flush() error
	}

	// Input is a buffered channel that lends readable spans of its buffer.
	Input interface {
		// Lend returns the next span of at least one readable byte, or io.EOF
		// once the channel is exhausted.
		Lend() ([]byte, error)

		// Commit pushes the last unused bytes of the previously lent span
		// back so that the next Lend returns them again.
		Commit(unused int) error

		// ByteCount returns the number of bytes consumed since creation.
		ByteCount() int64
	}
)

// lease tracks the single outstanding span of a channel.
type lease struct {
	size   int
	active bool
}

func (l *lease) acquire() error {
	if l.active {
		return ErrLeaseOutstanding
	}
	return nil
}

func (l *lease) grant(size int) {
	l.size = size
	l.active = true
}

// release ends the lease and returns the number of bytes actually used.
func (l *lease) release(unused int) (int, error) {
	if !l.active {
		return 0, ErrNoLease
	}
	if unused < 0 || unused > l.size {
		return 0, errors.Wrapf(ErrInvalidCommit, "unused=%d lent=%d", unused, l.size)
	}

	l.active = false
	return l.size - unused, nil
}

func bufferSize(size int) int {
	if size <= 0 {
		return DefaultBufferSize
	}
	return size
}

// WriteByte writes a single byte to out.
func WriteByte(out Output, c byte) error {
	span, err := out.Lend()
	if err != nil {
		return err
	}

	span[0] = c
	return out.Commit(len(span) - 1)
}

// WriteRaw writes all of p to out, lending as many spans as needed. It stops
// at the first failed Lend.
func WriteRaw(out Output, p []byte) error {
	for len(p) > 0 {
		span, err := out.Lend()
		if err != nil {
			return err
		}

		n := copy(span, p)
		p = p[n:]
		if err := out.Commit(len(span) - n); err != nil {
			return err
		}
	}

	return nil
}

// WriteString writes s to out without converting it to a byte slice first.
func WriteString(out Output, s string) error {
	for len(s) > 0 {
		span, err := out.Lend()
		if err != nil {
			return err
		}

		n := copy(span, s)
		s = s[n:]
		if err := out.Commit(len(span) - n); err != nil {
			return err
		}
	}

	return nil
}

// ReadByte reads a single byte from in.
func ReadByte(in Input) (byte, error) {
	span, err := in.Lend()
	if err != nil {
		return 0, err
	}

	c := span[0]
	return c, in.Commit(len(span) - 1)
}

// ReadRaw fills p from in. Like io.ReadFull it returns io.EOF when nothing
// could be read and io.ErrUnexpectedEOF when the input ended part way.
func ReadRaw(in Input, p []byte) error {
	read := 0
	for read < len(p) {
		span, err := in.Lend()
		if err != nil {
			if err == io.EOF && read > 0 {
				return io.ErrUnexpectedEOF
			}
			return err
		}

		n := copy(p[read:], span)
		read += n
		if err := in.Commit(len(span) - n); err != nil {
			return err
		}
	}

	return nil
}

// ReadString reads exactly n bytes from in.
func ReadString(in Input, n int) (string, error) {
	buf := make([]byte, n)
	if err := ReadRaw(in, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadAll reads from in until it is exhausted.
func ReadAll(in Input) (string, error) {
	var sb strings.Builder
	for {
		span, err := in.Lend()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}

		sb.Write(span)
		if err := in.Commit(0); err != nil {
			return sb.String(), err
		}
	}
}

// Skip advances in by n bytes without exposing them. It returns
// io.ErrUnexpectedEOF when in is exhausted first.
func Skip(in Input, n int) error {
	for n > 0 {
		span, err := in.Lend()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			return err
		}

		if len(span) >= n {
			return in.Commit(len(span) - n)
		}

		n -= len(span)
		if err := in.Commit(0); err != nil {
			return err
		}
	}

	return nil
}

// Copy moves everything remaining in src into dst and returns the number of
// bytes copied.
func Copy(dst Output, src Input) (int64, error) {
	var total int64
	for {
		span, err := src.Lend()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}

		if err := WriteRaw(dst, span); err != nil {
			_ = src.Commit(len(span))
			return total, err
		}

		total += int64(len(span))
		if err := src.Commit(0); err != nil {
			return total, err
		}
	}
}
