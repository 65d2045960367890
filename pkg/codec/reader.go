package codec

import (
	"encoding/binary"
	"math"

	"github.com/ssargent/polyparser/pkg/model"
)

var le = binary.LittleEndian

// Reader decodes little-endian primitives from a Source. The first error
// is sticky: later reads return zero values and leave the source untouched,
// so aggregate decoders read field by field and check Err once.
type Reader struct {
	src  Source
	sess *Session
	err  error
}

// NewReader reads src on behalf of sess. A nil session gets defaults.
func NewReader(src Source, sess *Session) *Reader {
	if sess == nil {
		sess = NewSession(SessionOptions{})
	}
	return &Reader{src: src, sess: sess}
}

func (r *Reader) Err() error {
	return r.err
}

// Fail records err unless an earlier error is already held.
func (r *Reader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) Session() *Session {
	return r.sess
}

func (r *Reader) Offset() int64 {
	return r.src.Offset()
}

// More reports whether unread bytes remain and no error is held.
func (r *Reader) More() bool {
	return r.err == nil && r.src.More()
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	b, err := r.src.Next(n)
	if err != nil {
		r.err = err
		return nil
	}
	return b
}

func (r *Reader) Uint8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Int8() int8 {
	return int8(r.Uint8())
}

// Bool reads one byte; any non-zero value is true.
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

func (r *Reader) Uint16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return le.Uint16(b)
}

func (r *Reader) Int16() int16 {
	return int16(r.Uint16())
}

func (r *Reader) Uint32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return le.Uint32(b)
}

func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

func (r *Reader) Uint64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return le.Uint64(b)
}

func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

func (r *Reader) Float32() float32 {
	return math.Float32frombits(r.Uint32())
}

func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

// Str reads a uint16 length followed by that many raw bytes. The bytes
// are kept as-is; no charset conversion happens.
func (r *Reader) Str() string {
	n := int(r.Uint16())
	b := r.next(n)
	if b == nil {
		return ""
	}
	return string(b)
}

// SkipStr advances past a length-prefixed string without keeping it.
func (r *Reader) SkipStr() {
	r.next(int(r.Uint16()))
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) []byte {
	b := r.next(n)
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) {
	r.next(n)
}

func (r *Reader) Vec2() model.Vec2 {
	return model.Vec2{X: r.Float32(), Y: r.Float32()}
}

func (r *Reader) Vec3() model.Vec3 {
	return model.Vec3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}
}

func (r *Reader) Quaternion() model.Quaternion {
	return model.Quaternion{X: r.Float32(), Y: r.Float32(), Z: r.Float32(), W: r.Float32()}
}

// Color reads three channel bytes; alpha is always 1.
func (r *Reader) Color() model.Color {
	c := model.Color{
		R: float32(r.Uint8()) / 255,
		G: float32(r.Uint8()) / 255,
		B: float32(r.Uint8()) / 255,
		A: 1,
	}
	return c
}

// Checked reads an int32 and validates it against lim.
func (r *Reader) Checked(field string, lim Limits) int {
	v := int(r.Int32())
	if r.err != nil {
		return 0
	}
	r.Fail(r.sess.Check(field, v, lim))
	return v
}

// Count reads an int32 element count validated against the session's
// count limits. Negative counts read as zero.
func (r *Reader) Count(field string) int {
	n := r.Checked(field, r.sess.bounds.Count)
	if n < 0 || r.err != nil {
		return 0
	}
	return n
}

// ReadSlice reads a count prefix and then that many elements with fn. The
// result is never nil so an empty sequence and a missing one stay distinct.
func ReadSlice[T any](r *Reader, field string, fn func(*Reader) T) []T {
	n := r.Count(field)
	out := make([]T, 0, min(n, 1024))
	for i := 0; i < n && r.err == nil; i++ {
		v := fn(r)
		if r.err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// Discard reads a count prefix and then that many elements, dropping them.
func Discard(r *Reader, field string, fn func(*Reader)) {
	n := r.Count(field)
	for i := 0; i < n && r.err == nil; i++ {
		fn(r)
	}
}
