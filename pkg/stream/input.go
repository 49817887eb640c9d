package stream

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// maxEmptyReads bounds the number of consecutive (0, nil) reads tolerated
// from an io.Reader before giving up.
const maxEmptyReads = 100

type (
	// ReaderInput buffers reads from an io.Reader. Each refill reads at most
	// one buffer's worth; a read of zero bytes at end of input exhausts the
	// channel.
	ReaderInput struct {
		r      io.Reader
		buf    []byte
		offset int
		avail  int
		count  int64
		eof    bool
		err    error
		lease  lease
	}

	// FileInput is a ReaderInput over an *os.File.
	FileInput struct {
		*ReaderInput
		file   *os.File
		own    bool
		closed bool
	}

	// BytesInput lends spans of an in-memory byte slice directly.
	BytesInput struct {
		data  []byte
		pos   int
		chunk int
		count int64
		lease lease
	}
)

var (
	_ Input = (*ReaderInput)(nil)
	_ Input = (*FileInput)(nil)
	_ Input = (*BytesInput)(nil)
)

// NewReaderInput creates an Input reading from r through a buffer of the given
// size (DefaultBufferSize when size <= 0).
func NewReaderInput(r io.Reader, size int) *ReaderInput {
	return &ReaderInput{
		r:   r,
		buf: make([]byte, bufferSize(size)),
	}
}

// Lend returns the unread part of the buffer, refilling it first when empty.
func (in *ReaderInput) Lend() ([]byte, error) {
	if err := in.lease.acquire(); err != nil {
		return nil, err
	}

	if in.offset >= in.avail {
		if err := in.refill(); err != nil {
			return nil, err
		}
	}

	span := in.buf[in.offset:in.avail]
	in.offset = in.avail
	in.lease.grant(len(span))
	return span, nil
}

// Commit pushes the unused tail of the last span back into the buffer.
func (in *ReaderInput) Commit(unused int) error {
	n, err := in.lease.release(unused)
	if err != nil {
		return err
	}

	in.offset -= unused
	in.count += int64(n)
	return nil
}

// ByteCount returns the number of bytes consumed so far.
func (in *ReaderInput) ByteCount() int64 {
	return in.count
}

// EOF reports whether the underlying reader has signalled the end of input.
// Buffered bytes may still be available to Lend.
func (in *ReaderInput) EOF() bool {
	return in.eof
}

func (in *ReaderInput) refill() error {
	if in.err != nil {
		return in.err
	}
	if in.eof {
		return io.EOF
	}

	for range maxEmptyReads {
		n, err := in.r.Read(in.buf)
		if err == io.EOF {
			in.eof = true
		} else if err != nil {
			in.err = errors.Wrap(err, "failed to refill buffer")
		}

		if n > 0 {
			in.offset, in.avail = 0, n
			return nil
		}
		if in.eof {
			return io.EOF
		}
		if in.err != nil {
			return in.err
		}
	}

	in.err = io.ErrNoProgress
	return in.err
}

// NewFileInput opens the file at path and returns an owning FileInput.
func NewFileInput(path string, size int) (*FileInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open file: %s", path)
	}

	return NewFileInputFrom(f, size, true), nil
}

// NewFileInputFrom wraps an already open file. When own is true the file is
// closed by Close.
func NewFileInputFrom(f *os.File, size int, own bool) *FileInput {
	return &FileInput{
		ReaderInput: NewReaderInput(f, size),
		file:        f,
		own:         own,
	}
}

// Name returns the name of the underlying file.
func (f *FileInput) Name() string {
	return f.file.Name()
}

// Close closes the file when owned.
func (f *FileInput) Close() error {
	if f.closed {
		return nil
	}

	f.closed = true
	if !f.own {
		return nil
	}

	return errors.Wrapf(f.file.Close(), "failed to close file: %s", f.file.Name())
}

// NewBytesInput creates an Input over data. Spans are at most chunk bytes
// long; chunk <= 0 lends everything that remains at once.
func NewBytesInput(data []byte, chunk int) *BytesInput {
	return &BytesInput{data: data, chunk: chunk}
}

// Lend returns the next span of data, or io.EOF once all of it was consumed.
func (b *BytesInput) Lend() ([]byte, error) {
	if err := b.lease.acquire(); err != nil {
		return nil, err
	}
	if b.pos >= len(b.data) {
		return nil, io.EOF
	}

	end := len(b.data)
	if b.chunk > 0 && b.pos+b.chunk < end {
		end = b.pos + b.chunk
	}

	span := b.data[b.pos:end:end]
	b.pos = end
	b.lease.grant(len(span))
	return span, nil
}

// Commit pushes the unused tail of the last span back.
func (b *BytesInput) Commit(unused int) error {
	n, err := b.lease.release(unused)
	if err != nil {
		return err
	}

	b.pos -= unused
	b.count += int64(n)
	return nil
}

// ByteCount returns the number of bytes consumed so far.
func (b *BytesInput) ByteCount() int64 {
	return b.count
}

// Len returns the number of bytes not yet consumed.
func (b *BytesInput) Len() int {
	return len(b.data) - int(b.count)
}
