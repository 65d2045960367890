package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Source is a sequential byte source. Aggregate decoders read through a
// Source so the same code serves file streams and in-memory buffers.
type Source interface {
	// Next returns exactly n bytes. The returned slice must not be retained
	// past the next call.
	Next(n int) ([]byte, error)
	// Offset is the number of bytes consumed so far.
	Offset() int64
	// More reports whether at least one more byte is available.
	More() bool
}

const streamChunk = 64 << 10

// StreamSource reads from an io.Reader through a bufio.Reader.
type StreamSource struct {
	r   *bufio.Reader
	off int64
	buf []byte
}

// NewStreamSource wraps r. Reads are buffered.
func NewStreamSource(r io.Reader) *StreamSource {
	return &StreamSource{r: bufio.NewReader(r)}
}

func (s *StreamSource) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", ErrMalformedStream, n)
	}
	// The buffer grows with the bytes actually read, not the declared length.
	s.buf = s.buf[:0]
	for remaining := n; remaining > 0; {
		chunk := min(remaining, streamChunk)
		start := len(s.buf)
		s.buf = append(s.buf, make([]byte, chunk)...)
		read, err := io.ReadFull(s.r, s.buf[start:])
		s.off += int64(read)
		if err != nil {
			return nil, truncated(s.off, n, err)
		}
		remaining -= chunk
	}
	return s.buf, nil
}

func (s *StreamSource) Offset() int64 {
	return s.off
}

func (s *StreamSource) More() bool {
	_, err := s.r.Peek(1)
	return err == nil
}

// BufferSource reads from a byte slice without copying.
type BufferSource struct {
	data []byte
	off  int
}

func NewBufferSource(data []byte) *BufferSource {
	return &BufferSource{data: data}
}

func (b *BufferSource) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", ErrMalformedStream, n)
	}
	if n > len(b.data)-b.off {
		b.off = len(b.data)
		return nil, truncated(int64(b.off), n, io.ErrUnexpectedEOF)
	}
	out := b.data[b.off : b.off+n]
	b.off += n
	return out, nil
}

func (b *BufferSource) Offset() int64 {
	return int64(b.off)
}

func (b *BufferSource) More() bool {
	return b.off < len(b.data)
}

// Remaining is the number of unread bytes.
func (b *BufferSource) Remaining() int {
	return len(b.data) - b.off
}

func truncated(off int64, want int, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: need %d bytes at offset %d: %w", ErrMalformedStream, want, off, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("%w: read at offset %d: %w", ErrIO, off, err)
}
