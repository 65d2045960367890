package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ssargent/polyparser/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Primitives(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  []byte
	}{
		{"bool", func(w *Writer) { w.Bool(true); w.Bool(false) }, []byte{1, 0}},
		{"int16", func(w *Writer) { w.Int16(-2) }, []byte{0xFE, 0xFF}},
		{"int32", func(w *Writer) { w.Int32(-26) }, []byte{0xE6, 0xFF, 0xFF, 0xFF}},
		{"float32", func(w *Writer) { w.Float32(1) }, []byte{0, 0, 0x80, 0x3F}},
		{"string", func(w *Writer) { w.Str("hi") }, []byte{2, 0, 'h', 'i'}},
		{"count", func(w *Writer) { w.Count(3) }, []byte{3, 0, 0, 0}},
		{
			"quaternion",
			func(w *Writer) { w.Quaternion(model.Quaternion{W: 1}) },
			[]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x80, 0x3F},
		},
		{"color drops alpha", func(w *Writer) { w.Color(model.Color{R: 1, G: 0.2, B: 0, A: 0.5}) }, []byte{255, 51, 0}},
		{"color clamps", func(w *Writer) { w.Color(model.Color{R: 2, G: -1, B: 0.5}) }, []byte{255, 0, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			tt.write(w)
			require.NoError(t, w.Err())
			assert.Equal(t, tt.want, buf.Bytes())
			assert.Equal(t, int64(len(tt.want)), w.Written())
		})
	}
}

func TestWriter_ColorByteExact(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := 0; i < 256; i++ {
		w.Uint8(uint8(i))
		w.Uint8(uint8(255 - i))
		w.Uint8(uint8(i / 2))
	}
	in := append([]byte(nil), buf.Bytes()...)

	r := NewReader(NewBufferSource(in), nil)
	var out bytes.Buffer
	ow := NewWriter(&out)
	for i := 0; i < 256; i++ {
		ow.Color(r.Color())
	}
	require.NoError(t, r.Err())
	assert.Equal(t, in, out.Bytes())
}

func TestWriter_StringTooLong(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Str(strings.Repeat("x", 70000))
	w.Int32(1)

	require.Error(t, w.Err())
	assert.True(t, errors.Is(w.Err(), ErrUnencodable))
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("read-only filesystem")
}

func TestWriter_IOFailure(t *testing.T) {
	w := NewWriter(failingWriter{})
	w.Int32(7)
	assert.True(t, errors.Is(w.Err(), ErrIO))
}
