package codec_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// ExampleReader demonstrates reading primitives back from a Writer.
func ExampleReader() {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	w.Int32(26)
	w.Str("Western")
	w.Vec2(model.Vec2{X: 1.5, Y: -2})
	if err := w.Err(); err != nil {
		log.Fatal(err)
	}

	r := codec.NewReader(codec.NewBufferSource(buf.Bytes()), nil)
	version := r.Int32()
	stub := r.Str()
	pos := r.Vec2()
	if err := r.Err(); err != nil {
		log.Fatal(err)
	}

	fmt.Println(version, stub, pos.X, pos.Y)
	// Output: 26 Western 1.5 -2
}

// ExampleSession_Check demonstrates the anomaly circuit breaker.
func ExampleSession_Check() {
	sess := codec.NewSession(codec.SessionOptions{MaxAnomalies: 1})
	lim := codec.DefaultBounds().Count

	fmt.Println(sess.Check("joints", 99999, lim))
	fmt.Println(sess.Check("edges", 99999, lim))
	// Output:
	// <nil>
	// anomalous value: edges = 99999 after 1 anomalies
}
