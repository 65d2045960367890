package codec

import (
	"fmt"
	"io"
	"math"

	"github.com/ssargent/polyparser/pkg/model"
)

// Writer encodes little-endian primitives. Like Reader it holds the first
// error and turns later writes into no-ops.
type Writer struct {
	w   io.Writer
	buf [8]byte
	n   int64
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Err() error {
	return w.err
}

// Fail records err unless an earlier error is already held.
func (w *Writer) Fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Written is the number of bytes written so far.
func (w *Writer) Written() int64 {
	return w.n
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(b)
	w.n += int64(n)
	if err != nil {
		w.err = fmt.Errorf("%w: write at offset %d: %w", ErrIO, w.n, err)
	}
}

func (w *Writer) Uint8(v uint8) {
	w.buf[0] = v
	w.write(w.buf[:1])
}

func (w *Writer) Int8(v int8) {
	w.Uint8(uint8(v))
}

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
		return
	}
	w.Uint8(0)
}

func (w *Writer) Uint16(v uint16) {
	le.PutUint16(w.buf[:2], v)
	w.write(w.buf[:2])
}

func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

func (w *Writer) Uint32(v uint32) {
	le.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

func (w *Writer) Uint64(v uint64) {
	le.PutUint64(w.buf[:8], v)
	w.write(w.buf[:8])
}

func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

func (w *Writer) Float32(v float32) {
	w.Uint32(math.Float32bits(v))
}

func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// Str writes a uint16 length and the raw bytes of s.
func (w *Writer) Str(s string) {
	if len(s) > math.MaxUint16 {
		w.Fail(fmt.Errorf("%w: string of %d bytes exceeds %d", ErrUnencodable, len(s), math.MaxUint16))
		return
	}
	w.Uint16(uint16(len(s)))
	w.write([]byte(s))
}

func (w *Writer) Bytes(b []byte) {
	w.write(b)
}

// Count writes an int32 element count.
func (w *Writer) Count(n int) {
	if n > math.MaxInt32 {
		w.Fail(fmt.Errorf("%w: count %d exceeds int32", ErrUnencodable, n))
		return
	}
	w.Int32(int32(n))
}

func (w *Writer) Vec2(v model.Vec2) {
	w.Float32(v.X)
	w.Float32(v.Y)
}

func (w *Writer) Vec3(v model.Vec3) {
	w.Float32(v.X)
	w.Float32(v.Y)
	w.Float32(v.Z)
}

func (w *Writer) Quaternion(q model.Quaternion) {
	w.Float32(q.X)
	w.Float32(q.Y)
	w.Float32(q.Z)
	w.Float32(q.W)
}

// Color writes r, g and b as bytes. Alpha is not stored.
func (w *Writer) Color(c model.Color) {
	w.Uint8(channelByte(c.R))
	w.Uint8(channelByte(c.G))
	w.Uint8(channelByte(c.B))
}

func channelByte(v float32) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

// WriteSlice writes a count prefix followed by every element.
func WriteSlice[T any](w *Writer, items []T, fn func(*Writer, T)) {
	w.Count(len(items))
	for _, item := range items {
		fn(w, item)
	}
}
