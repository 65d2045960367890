package tagged

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/ssargent/polyparser/pkg/codec"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	maxStringLen = 1 << 24
	// MaxPrimitiveArray bounds the byte length of one primitive array.
	MaxPrimitiveArray = 1 << 28
)

// Node is the header of an entered node.
type Node struct {
	Name string
	// Type is nil when the writer stored a null type.
	Type *TypeRef
	ID   int32
}

// Reader interprets a tagged-entry stream with one entry of lookahead.
// Peek reads an entry header; the typed Read methods consume it and its
// payload. The caller must know the field sequence in advance: nothing is
// skipped implicitly.
type Reader struct {
	r   *codec.Reader
	log *slog.Logger

	pending *Entry
	info    tagInfo
	types   map[int32]TypeRef
	depth   int
}

func NewReader(r *codec.Reader) *Reader {
	return &Reader{
		r:     r,
		log:   r.Session().Logger("tagged"),
		types: make(map[int32]TypeRef),
	}
}

// Err returns the first error seen by the reader.
func (t *Reader) Err() error {
	return t.r.Err()
}

// Depth is the number of nodes entered and not yet exited.
func (t *Reader) Depth() int {
	return t.depth
}

func (t *Reader) malformed(format string, args ...any) error {
	t.r.Fail(fmt.Errorf("%w: %s at offset %d", codec.ErrMalformedStream, fmt.Sprintf(format, args...), t.r.Offset()))
	return t.r.Err()
}

// Peek returns the next entry header without consuming its payload.
// Repeated calls return the same entry. The end of the underlying bytes
// reads as an EndOfStream entry.
func (t *Reader) Peek() (Entry, error) {
	if t.pending != nil {
		return *t.pending, nil
	}
	if err := t.r.Err(); err != nil {
		return Entry{}, err
	}
	if !t.r.More() {
		t.pending = &Entry{Tag: TagEndOfStream, Kind: KindEndOfStream}
		t.info = tags[TagEndOfStream]
		return *t.pending, nil
	}

	tag := Tag(t.r.Uint8())
	info, ok := lookup(tag)
	switch {
	case !ok:
		return Entry{}, t.malformed("unknown entry tag 0x%02x", uint8(tag))
	case info.typeDesc:
		return Entry{}, t.malformed("type entry 0x%02x where a value was expected", uint8(tag))
	}

	e := Entry{Tag: tag, Kind: info.kind}
	if info.named {
		e.Name = t.readString()
	}
	if err := t.r.Err(); err != nil {
		return Entry{}, err
	}
	t.pending, t.info = &e, info
	return e, nil
}

// Expect peeks and fails unless the next entry has the given kind and
// name. The entry stays pending.
func (t *Reader) Expect(kind Kind, name string) (Entry, error) {
	e, err := t.Peek()
	if err != nil {
		return e, err
	}
	if e.Kind != kind || e.Name != name {
		return e, t.malformed("expected %s %q, found %s %q", kind, name, e.Kind, e.Name)
	}
	return e, nil
}

// take consumes the pending entry header, which must be of kind.
func (t *Reader) take(kind Kind) (Entry, tagInfo, error) {
	e, err := t.Peek()
	if err != nil {
		return e, tagInfo{}, err
	}
	if e.Kind != kind {
		return e, tagInfo{}, t.malformed("expected %s, found %s %q", kind, e.Kind, e.Name)
	}
	info := t.info
	t.pending = nil
	return e, info, nil
}

// ReadInteger consumes an Integer entry. The payload width and signedness
// follow its wire tag.
func (t *Reader) ReadInteger() (int64, error) {
	_, info, err := t.take(KindInteger)
	if err != nil {
		return 0, err
	}
	var v int64
	switch {
	case info.width == 1 && info.signed:
		v = int64(t.r.Int8())
	case info.width == 1:
		v = int64(t.r.Uint8())
	case info.width == 2 && info.signed:
		v = int64(t.r.Int16())
	case info.width == 2:
		v = int64(t.r.Uint16())
	case info.width == 4 && info.signed:
		v = int64(t.r.Int32())
	case info.width == 4:
		v = int64(t.r.Uint32())
	case info.signed:
		v = t.r.Int64()
	default:
		v = int64(t.r.Uint64())
	}
	return v, t.r.Err()
}

// ReadFloat consumes a FloatingPoint entry of any width.
func (t *Reader) ReadFloat() (float64, error) {
	_, info, err := t.take(KindFloatingPoint)
	if err != nil {
		return 0, err
	}
	var v float64
	switch info.width {
	case 4:
		v = float64(t.r.Float32())
	case 8:
		v = t.r.Float64()
	default:
		v = t.readDecimal()
	}
	return v, t.r.Err()
}

// readDecimal converts a 128-bit .NET decimal (lo, mid, hi, flags).
func (t *Reader) readDecimal() float64 {
	lo, mid, hi, flags := t.r.Uint32(), t.r.Uint32(), t.r.Uint32(), t.r.Uint32()
	v := float64(hi)*(1<<64) + float64(mid)*(1<<32) + float64(lo)
	v /= math.Pow10(int((flags >> 16) & 0xFF))
	if flags&(1<<31) != 0 {
		v = -v
	}
	return v
}

// ReadString consumes a String entry. Char entries read as a
// one-character string.
func (t *Reader) ReadString() (string, error) {
	_, info, err := t.take(KindString)
	if err != nil {
		return "", err
	}
	if info.isChar {
		return string(rune(t.r.Uint16())), t.r.Err()
	}
	s := t.readString()
	return s, t.r.Err()
}

// ReadBool consumes a Boolean entry. Only a payload of 1 is true.
func (t *Reader) ReadBool() (bool, error) {
	if _, _, err := t.take(KindBoolean); err != nil {
		return false, err
	}
	return t.r.Uint8() == 1, t.r.Err()
}

func (t *Reader) ReadGuid() ([16]byte, error) {
	var g [16]byte
	if _, _, err := t.take(KindGuid); err != nil {
		return g, err
	}
	copy(g[:], t.r.Bytes(16))
	return g, t.r.Err()
}

func (t *Reader) ReadNull() error {
	_, _, err := t.take(KindNull)
	return err
}

// EnterNode consumes a StartOfNode entry, its type descriptor and its id.
func (t *Reader) EnterNode() (Node, error) {
	e, _, err := t.take(KindStartOfNode)
	if err != nil {
		return Node{}, err
	}
	n := Node{Name: e.Name}
	n.Type, err = t.readTypeEntry()
	if err != nil {
		return n, err
	}
	n.ID = t.r.Int32()
	if err := t.r.Err(); err != nil {
		return n, err
	}
	t.depth++
	t.log.Debug("entering node", "name", n.Name, "id", n.ID, "depth", t.depth)
	return n, nil
}

// ExitNode consumes the EndOfNode entry closing the current node.
func (t *Reader) ExitNode() error {
	if _, _, err := t.take(KindEndOfNode); err != nil {
		return err
	}
	if t.depth == 0 {
		return t.malformed("end of node outside any node")
	}
	t.depth--
	return nil
}

// ReadPrimitiveArray consumes a PrimitiveArray entry and returns its raw
// bytes: an element count and element size whose product is the length.
func (t *Reader) ReadPrimitiveArray() ([]byte, error) {
	if _, _, err := t.take(KindPrimitiveArray); err != nil {
		return nil, err
	}
	count, size := int64(t.r.Int32()), int64(t.r.Int32())
	if err := t.r.Err(); err != nil {
		return nil, err
	}
	n := count * size
	if count < 0 || size < 0 || n > MaxPrimitiveArray {
		return nil, t.malformed("primitive array of %d elements of %d bytes", count, size)
	}
	b := t.r.Bytes(int(n))
	return b, t.r.Err()
}

// StartArray consumes a StartOfArray entry and returns its declared length.
func (t *Reader) StartArray() (int64, error) {
	if _, _, err := t.take(KindStartOfArray); err != nil {
		return 0, err
	}
	return t.r.Int64(), t.r.Err()
}

func (t *Reader) EndArray() error {
	_, _, err := t.take(KindEndOfArray)
	return err
}

// readTypeEntry reads the type descriptor that follows a node start. Names
// are remembered by id so later TypeID entries can refer to them.
func (t *Reader) readTypeEntry() (*TypeRef, error) {
	tag := Tag(t.r.Uint8())
	if err := t.r.Err(); err != nil {
		return nil, err
	}
	switch tag {
	case TagTypeName:
		id := t.r.Int32()
		full := t.readString()
		if err := t.r.Err(); err != nil {
			return nil, err
		}
		name, assembly, ok := strings.Cut(full, ",")
		if !ok {
			return nil, t.malformed("type name %q has no assembly", full)
		}
		ref := TypeRef{Name: name, Assembly: strings.TrimPrefix(assembly, " ")}
		t.types[id] = ref
		return &ref, nil
	case TagTypeID:
		id := t.r.Int32()
		if err := t.r.Err(); err != nil {
			return nil, err
		}
		ref, ok := t.types[id]
		if !ok {
			return nil, t.malformed("type id %d was never named", id)
		}
		return &ref, nil
	case TagUnnamedNull:
		return nil, nil
	default:
		return nil, t.malformed("entry tag 0x%02x where a type was expected", uint8(tag))
	}
}

// readString reads a charset byte, a length and the characters: 0 is one
// byte per character (Latin-1), 1 is UTF-16LE.
func (t *Reader) readString() string {
	charset := t.r.Uint8()
	n := int(t.r.Int32())
	if t.r.Err() != nil {
		return ""
	}
	if n < 0 || n > maxStringLen {
		t.malformed("string length %d", n)
		return ""
	}

	var (
		s   []byte
		err error
	)
	switch charset {
	case 0:
		s, err = charmap.ISO8859_1.NewDecoder().Bytes(t.r.Bytes(n))
	case 1:
		s, err = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(t.r.Bytes(2 * n))
	default:
		t.malformed("unknown string charset %d", charset)
		return ""
	}
	if err != nil {
		t.malformed("string: %v", err)
		return ""
	}
	return string(s)
}
