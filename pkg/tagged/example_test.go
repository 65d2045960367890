package tagged_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/tagged"
)

// ExampleWriter builds a small node stream and reads it back field by field.
func ExampleWriter() {
	var buf bytes.Buffer
	w := tagged.NewWriter(&buf)
	w.BeginNode("", &tagged.TypeRef{Name: "SandboxSlot", Assembly: "Assembly-CSharp"}, 0)
	w.Int("m_Version", 3)
	w.String("m_DisplayName", "Gulch run")
	w.EndNode()
	w.EndOfStream()
	if err := w.Err(); err != nil {
		log.Fatal(err)
	}

	r := tagged.NewReader(codec.NewReader(codec.NewBufferSource(buf.Bytes()), nil))
	node, err := r.EnterNode()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := r.Expect(tagged.KindInteger, "m_Version"); err != nil {
		log.Fatal(err)
	}
	version, err := r.ReadInteger()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := r.Expect(tagged.KindString, "m_DisplayName"); err != nil {
		log.Fatal(err)
	}
	name, err := r.ReadString()
	if err != nil {
		log.Fatal(err)
	}
	if err := r.ExitNode(); err != nil {
		log.Fatal(err)
	}

	fmt.Println(node.Type.Name, version, name)
	// Output: SandboxSlot 3 Gulch run
}
