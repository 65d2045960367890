//go:build fuzz
// +build fuzz

package tagged

import (
	"testing"

	"github.com/ssargent/polyparser/pkg/codec"
)

// FuzzSkip walks arbitrary streams entry by entry.
func FuzzSkip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{byte(TagEndOfStream)})
	f.Add([]byte{byte(TagUnnamedInt), 1, 0, 0, 0, byte(TagEndOfStream)})

	f.Fuzz(func(t *testing.T, data []byte) {
		r := NewReader(codec.NewReader(codec.NewBufferSource(data), nil))
		for i := 0; i < 1024; i++ {
			e, err := r.Peek()
			if err != nil || e.Kind == KindEndOfStream {
				return
			}
			if err := r.Skip(); err != nil {
				return
			}
		}
	})
}
