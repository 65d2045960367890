//go:build bench
// +build bench

package codec

import (
	"bytes"
	"testing"

	"github.com/ssargent/polyparser/pkg/model"
)

func BenchmarkReader_Joint(b *testing.B) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := 0; i < 1000; i++ {
		w.Vec3(model.Vec3{X: float32(i), Y: 1, Z: 0})
		w.Bool(false)
		w.Bool(true)
		w.Str("3f2504e0-4f89-11d3-9a0c-0305e82c3301")
	}
	data := buf.Bytes()

	sources := map[string]func() Source{
		"buffer": func() Source { return NewBufferSource(data) },
		"stream": func() Source { return NewStreamSource(bytes.NewReader(data)) },
	}

	for name, newSource := range sources {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r := NewReader(newSource(), nil)
				for j := 0; j < 1000; j++ {
					_ = r.Vec3()
					_ = r.Bool()
					_ = r.Bool()
					_ = r.Str()
				}
				if r.Err() != nil {
					b.Fatal(r.Err())
				}
			}
		})
	}
}

func BenchmarkWriter_Str(b *testing.B) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		w.Str("3f2504e0-4f89-11d3-9a0c-0305e82c3301")
	}
}
