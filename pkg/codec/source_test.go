package codec

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSources_Equivalent(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7}

	sources := map[string]Source{
		"stream":          NewStreamSource(bytes.NewReader(data)),
		"buffer":          NewBufferSource(data),
		"one byte reader": NewStreamSource(iotest.OneByteReader(bytes.NewReader(data))),
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			assert.True(t, src.More())

			b, err := src.Next(3)
			require.NoError(t, err)
			assert.Equal(t, []byte{1, 2, 3}, b)
			assert.Equal(t, int64(3), src.Offset())

			b, err = src.Next(0)
			require.NoError(t, err)
			assert.Empty(t, b)

			b, err = src.Next(4)
			require.NoError(t, err)
			assert.Equal(t, []byte{4, 5, 6, 7}, b)
			assert.False(t, src.More())

			_, err = src.Next(1)
			assert.True(t, errors.Is(err, ErrMalformedStream))
			assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		})
	}
}

func TestStreamSource_LargeRead(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 3*streamChunk+17)
	src := NewStreamSource(bytes.NewReader(data))

	b, err := src.Next(len(data))
	require.NoError(t, err)
	assert.Equal(t, data, b)
	assert.Equal(t, int64(len(data)), src.Offset())
}

func TestStreamSource_ShortLargeRead(t *testing.T) {
	src := NewStreamSource(bytes.NewReader(make([]byte, 10)))

	_, err := src.Next(1 << 30)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, int64(10), src.Offset())
}

func TestStreamSource_ReaderFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	src := NewStreamSource(iotest.ErrReader(boom))

	_, err := src.Next(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, boom))
}

func TestBufferSource_NegativeLength(t *testing.T) {
	src := NewBufferSource([]byte{1})
	_, err := src.Next(-1)
	assert.True(t, errors.Is(err, ErrMalformedStream))
	assert.Equal(t, 1, src.Remaining())
}
