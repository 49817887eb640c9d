package stream

import (
	"io"

	"github.com/pkg/errors"
)

type (
	outputWriter struct{ out Output }
	inputReader  struct{ in Input }
)

// Writer adapts out to an io.Writer.
func Writer(out Output) io.Writer {
	return &outputWriter{out: out}
}

func (w *outputWriter) Write(p []byte) (int, error) {
	if err := WriteRaw(w.out, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *outputWriter) WriteString(s string) (int, error) {
	if err := WriteString(w.out, s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// Reader adapts in to an io.Reader.
func Reader(in Input) io.Reader {
	return &inputReader{in: in}
}

func (r *inputReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	span, err := r.in.Lend()
	if err != nil {
		return 0, err
	}

	n := copy(p, span)
	return n, r.in.Commit(len(span) - n)
}

// ReadFile reads the whole file at path through a FileInput.
func ReadFile(path string) (string, error) {
	in, err := NewFileInput(path, DefaultBufferSize)
	if err != nil {
		return "", err
	}
	defer func() { _ = in.Close() }()

	content, err := ReadAll(in)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read file: %s", path)
	}

	return content, nil
}

// WriteFile writes data to the file at path through a FileOutput, creating
// parent directories as needed.
func WriteFile(path string, data []byte) error {
	out, err := NewFileOutput(path, DefaultBufferSize)
	if err != nil {
		return err
	}

	if err := WriteRaw(out, data); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "failed to write file: %s", path)
	}

	return out.Close()
}

// CopyFile copies the file at src to dst.
func CopyFile(src, dst string) (int64, error) {
	in, err := NewFileInput(src, DefaultBufferSize)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	out, err := NewFileOutput(dst, DefaultBufferSize)
	if err != nil {
		return 0, err
	}

	n, err := Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, errors.Wrapf(err, "failed to copy %s to %s", src, dst)
	}

	return n, out.Close()
}
