package stream

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/consts"
)

type (
	// SinkOutput buffers writes to an externally managed io.Writer. The buffer
	// is flushed to the sink whenever it fills up, on Flush and on Close.
	// Closing a SinkOutput never closes the sink itself.
	SinkOutput struct {
		w      io.Writer
		buf    []byte
		offset int
		count  int64
		lease  lease
		closed bool
	}

	// FileOutput is a SinkOutput over an *os.File. Files opened by
	// NewFileOutput are owned and closed by Close; files passed to
	// NewFileOutputFrom are closed only when ownership is transferred.
	FileOutput struct {
		*SinkOutput
		file *os.File
		own  bool
	}
)

var (
	_ Output = (*SinkOutput)(nil)
	_ Output = (*FileOutput)(nil)
)

// NewSinkOutput creates an Output that writes to w through a buffer of the
// given size (DefaultBufferSize when size <= 0).
func NewSinkOutput(w io.Writer, size int) *SinkOutput {
	return &SinkOutput{
		w:   w,
		buf: make([]byte, bufferSize(size)),
	}
}

// Lend returns the free tail of the buffer, flushing it first when full.
func (s *SinkOutput) Lend() ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if err := s.lease.acquire(); err != nil {
		return nil, err
	}

	if s.offset == len(s.buf) {
		if err := s.Flush(); err != nil {
			return nil, err
		}
	}

	span := s.buf[s.offset:]
	s.offset = len(s.buf)
	s.lease.grant(len(span))
	return span, nil
}

// Commit backs the buffer cursor up over the unused tail of the last span.
func (s *SinkOutput) Commit(unused int) error {
	n, err := s.lease.release(unused)
	if err != nil {
		return err
	}

	s.offset -= unused
	s.count += int64(n)
	return nil
}

// ByteCount returns the number of committed bytes, flushed or not.
func (s *SinkOutput) ByteCount() int64 {
	return s.count
}

// Buffered returns the number of committed bytes not yet written to the sink.
func (s *SinkOutput) Buffered() int {
	if s.lease.active {
		return s.offset - s.lease.size
	}
	return s.offset
}

// Flush writes the buffered bytes to the sink. A short write is reported as
// io.ErrShortWrite. Bytes the sink accepted are dropped from the buffer either
// way, so a later Flush only sends the remainder.
func (s *SinkOutput) Flush() error {
	if s.lease.active {
		return ErrLeaseOutstanding
	}
	if s.offset == 0 {
		return nil
	}

	n, err := s.w.Write(s.buf[:s.offset])
	if n > 0 {
		s.offset = copy(s.buf, s.buf[n:s.offset])
	}
	if err != nil {
		return errors.Wrap(err, "failed to flush buffer")
	}
	if s.offset != 0 {
		return io.ErrShortWrite
	}

	return nil
}

// Close flushes the buffer. Further calls to Lend fail with ErrClosed.
func (s *SinkOutput) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	return s.Flush()
}

// NewFileOutput creates (or truncates) the file at path and returns an owning
// FileOutput for it. Missing parent directories are created first.
func NewFileOutput(path string, size int) (*FileOutput, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory: %s", dir)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, consts.ModeFile)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open file: %s", path)
	}

	return NewFileOutputFrom(f, size, true), nil
}

// NewFileOutputFrom wraps an already open file. When own is true the file is
// closed by Close.
func NewFileOutputFrom(f *os.File, size int, own bool) *FileOutput {
	return &FileOutput{
		SinkOutput: NewSinkOutput(f, size),
		file:       f,
		own:        own,
	}
}

// Name returns the name of the underlying file.
func (f *FileOutput) Name() string {
	return f.file.Name()
}

// Close flushes any buffered bytes and closes the file when owned.
func (f *FileOutput) Close() error {
	if f.closed {
		return nil
	}

	err := f.SinkOutput.Close()
	if f.own {
		if cerr := f.file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close file: %s", f.file.Name())
		}
	}

	return err
}
