package tagged

import (
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/ssargent/polyparser/pkg/codec"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Writer produces tagged-entry streams. An empty name selects the unnamed
// variant of a tag. Errors are sticky; check Err once at the end.
type Writer struct {
	w       *codec.Writer
	typeIDs map[TypeRef]int32
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: codec.NewWriter(w), typeIDs: make(map[TypeRef]int32)}
}

func (w *Writer) Err() error {
	return w.w.Err()
}

// header writes named (or its unnamed successor) and the name.
func (w *Writer) header(named Tag, name string) {
	if name == "" {
		w.w.Uint8(uint8(named + 1))
		return
	}
	w.w.Uint8(uint8(named))
	w.string(name)
}

// Integer writes v with the wire width of tag, which must be a named
// integer tag such as TagNamedInt.
func (w *Writer) Integer(tag Tag, name string, v int64) {
	info, ok := lookup(tag)
	if !ok || info.kind != KindInteger || !info.named {
		w.w.Fail(fmt.Errorf("%w: 0x%02x is not a named integer tag", codec.ErrUnencodable, uint8(tag)))
		return
	}
	w.header(tag, name)
	switch info.width {
	case 1:
		w.w.Uint8(uint8(v))
	case 2:
		w.w.Uint16(uint16(v))
	case 4:
		w.w.Uint32(uint32(v))
	default:
		w.w.Uint64(uint64(v))
	}
}

func (w *Writer) Int(name string, v int32) {
	w.Integer(TagNamedInt, name, int64(v))
}

func (w *Writer) Long(name string, v int64) {
	w.Integer(TagNamedLong, name, v)
}

func (w *Writer) Float(name string, v float32) {
	w.header(TagNamedFloat, name)
	w.w.Float32(v)
}

func (w *Writer) Double(name string, v float64) {
	w.header(TagNamedDouble, name)
	w.w.Float64(v)
}

func (w *Writer) String(name, s string) {
	w.header(TagNamedString, name)
	w.string(s)
}

func (w *Writer) Char(name string, c rune) {
	if c > math.MaxUint16 {
		w.w.Fail(fmt.Errorf("%w: char %U outside the basic plane", codec.ErrUnencodable, c))
		return
	}
	w.header(TagNamedChar, name)
	w.w.Uint16(uint16(c))
}

func (w *Writer) Bool(name string, v bool) {
	w.header(TagNamedBoolean, name)
	w.w.Bool(v)
}

func (w *Writer) Guid(name string, g [16]byte) {
	w.header(TagNamedGuid, name)
	w.w.Bytes(g[:])
}

func (w *Writer) Null(name string) {
	w.header(TagNamedNull, name)
}

// BeginNode starts a reference node. The first node of a type writes its
// full name; later ones refer to it by id. A nil typ writes a null type.
func (w *Writer) BeginNode(name string, typ *TypeRef, id int32) {
	w.header(TagNamedStartOfReferenceNode, name)
	switch {
	case typ == nil:
		w.w.Uint8(uint8(TagUnnamedNull))
	default:
		if tid, ok := w.typeIDs[*typ]; ok {
			w.w.Uint8(uint8(TagTypeID))
			w.w.Int32(tid)
			break
		}
		tid := int32(len(w.typeIDs))
		w.typeIDs[*typ] = tid
		w.w.Uint8(uint8(TagTypeName))
		w.w.Int32(tid)
		w.string(typ.Name + ", " + typ.Assembly)
	}
	w.w.Int32(id)
}

func (w *Writer) EndNode() {
	w.w.Uint8(uint8(TagEndOfNode))
}

// PrimitiveArray writes data as len(data)/elemSize elements.
func (w *Writer) PrimitiveArray(data []byte, elemSize int) {
	if elemSize <= 0 || len(data)%elemSize != 0 {
		w.w.Fail(fmt.Errorf("%w: %d bytes are not a whole number of %d-byte elements", codec.ErrUnencodable, len(data), elemSize))
		return
	}
	w.w.Uint8(uint8(TagPrimitiveArray))
	w.w.Int32(int32(len(data) / elemSize))
	w.w.Int32(int32(elemSize))
	w.w.Bytes(data)
}

func (w *Writer) StartArray(length int64) {
	w.w.Uint8(uint8(TagStartOfArray))
	w.w.Int64(length)
}

func (w *Writer) EndArray() {
	w.w.Uint8(uint8(TagEndOfArray))
}

func (w *Writer) EndOfStream() {
	w.w.Uint8(uint8(TagEndOfStream))
}

// string writes s as Latin-1 when every character fits in a byte and as
// UTF-16LE otherwise.
func (w *Writer) string(s string) {
	if !utf8.ValidString(s) {
		w.w.Fail(fmt.Errorf("%w: string is not valid UTF-8", codec.ErrUnencodable))
		return
	}
	if b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s)); err == nil {
		w.w.Uint8(0)
		w.w.Int32(int32(len(b)))
		w.w.Bytes(b)
		return
	}
	b, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		w.w.Fail(fmt.Errorf("%w: %w", codec.ErrUnencodable, err))
		return
	}
	w.w.Uint8(1)
	w.w.Int32(int32(len(b) / 2))
	w.w.Bytes(b)
}
