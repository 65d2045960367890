// Package tagged reads the self-describing binary format used by .slot
// files.
//
// Every entry starts with a one-byte wire tag. The tags collapse to a
// small set of kinds (Integer covers every integer width, FloatingPoint
// every float width, and so on); named variants carry a field name after
// the tag. Reader.Peek returns the kind and name of the next entry, and
// the caller then consumes it with the matching Read method. Node starts
// are followed by a type descriptor and a node id, which EnterNode reads.
//
// An unknown tag, or an entry whose kind or name differs from what the
// caller expects, fails with codec.ErrMalformedStream.
//
// Writer produces the same format, one method per entry kind.
package tagged
