// Package stream provides buffered byte channels built around a lend/commit
// protocol.
//
// An Output lends the caller a span of its internal buffer to fill in place.
// The caller then commits the span, declaring how many trailing bytes it did
// not use. An Input works the other way around: it lends a span of bytes that
// are ready to be read, and the commit pushes back whatever the caller did not
// consume so that the next lend sees it again. Neither direction copies bytes
// into an intermediate buffer owned by the caller.
//
// Only one span may be outstanding per channel. Lending twice without a commit
// returns ErrLeaseOutstanding, and committing without a lend returns
// ErrNoLease.
//
// # Adapters
//
//   - FileOutput / FileInput: fixed-size buffer over an *os.File, optionally
//     owning (and closing) the file.
//   - BufferOutput: growable in-memory buffer; its contents are exactly the
//     committed bytes.
//   - SinkOutput: fixed-size buffer in front of any io.Writer.
//   - ReaderInput / BytesInput: fixed-size buffer over an io.Reader, and a
//     zero-copy view over a byte slice.
//
// # Usage
//
//	out, err := stream.NewFileOutput("generated/widget.h", stream.DefaultBufferSize)
//	if err != nil {
//		return err
//	}
//	defer out.Close()
//
//	if err := stream.WriteString(out, "#pragma once\n"); err != nil {
//		return err
//	}
//
// The helpers WriteByte, WriteRaw, WriteString, ReadByte, ReadRaw, ReadAll,
// Skip and Copy are implemented purely in terms of Lend and Commit and work
// with every adapter.
//
// Channels are not safe for concurrent use.
package stream
