package tagged

import "fmt"

// Token is one entry of a stream as seen by Walk.
type Token struct {
	Depth int
	Entry Entry
	// Value holds the decoded payload: int64, float64, string, bool,
	// [16]byte, []byte, Node, or an int64 length for arrays and int32 ids
	// for references. It is nil for entries without a payload.
	Value any
}

// Walk reads every remaining entry and calls fn for each, stopping at
// EndOfStream or the first error. It is meant for inspecting streams whose
// field sequence is not known in advance.
func (t *Reader) Walk(fn func(Token) error) error {
	for {
		e, err := t.Peek()
		if err != nil {
			return err
		}
		if e.Kind == KindEndOfStream {
			t.pending = nil
			return nil
		}

		depth := t.depth
		v, err := t.value(e)
		if err != nil {
			return err
		}
		if e.Kind == KindEndOfNode {
			depth = t.depth
		}
		if err := fn(Token{Depth: depth, Entry: e, Value: v}); err != nil {
			return err
		}
	}
}

// Skip consumes the pending entry and its payload. A node or array start
// is skipped together with everything up to its matching end.
func (t *Reader) Skip() error {
	e, err := t.Peek()
	if err != nil {
		return err
	}
	if _, err := t.value(e); err != nil {
		return err
	}

	var end Kind
	switch e.Kind {
	case KindStartOfNode:
		end = KindEndOfNode
	case KindStartOfArray:
		end = KindEndOfArray
	default:
		return nil
	}
	for {
		next, err := t.Peek()
		if err != nil {
			return err
		}
		switch next.Kind {
		case end:
			_, err := t.value(next)
			return err
		case KindEndOfStream:
			return t.malformed("stream ended inside %s", e.Kind)
		}
		if err := t.Skip(); err != nil {
			return err
		}
	}
}

// value consumes e and returns its payload.
func (t *Reader) value(e Entry) (any, error) {
	switch e.Kind {
	case KindInteger:
		return t.ReadInteger()
	case KindFloatingPoint:
		return t.ReadFloat()
	case KindString:
		return t.ReadString()
	case KindBoolean:
		return t.ReadBool()
	case KindGuid:
		return t.ReadGuid()
	case KindNull:
		return nil, t.ReadNull()
	case KindStartOfNode:
		return t.EnterNode()
	case KindEndOfNode:
		return nil, t.ExitNode()
	case KindStartOfArray:
		return t.StartArray()
	case KindEndOfArray:
		return nil, t.EndArray()
	case KindPrimitiveArray:
		return t.ReadPrimitiveArray()
	case KindInternalReference, KindExternalReferenceByIndex:
		t.pending = nil
		return t.r.Int32(), t.r.Err()
	case KindExternalReferenceByGuid:
		t.pending = nil
		var g [16]byte
		copy(g[:], t.r.Bytes(16))
		return g, t.r.Err()
	case KindExternalReferenceByString:
		t.pending = nil
		s := t.readString()
		return s, t.r.Err()
	case KindEndOfStream:
		t.pending = nil
		return nil, nil
	}
	return nil, fmt.Errorf("no payload reader for %s", e.Kind)
}
