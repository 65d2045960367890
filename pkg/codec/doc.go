// Package codec provides the byte-level primitives shared by the layout,
// bridge and slot decoders.
//
// # Wire Primitives
//
// Every value is fixed width and little-endian with no padding:
//
//	int8/uint8/bool   1 byte (bool: any non-zero byte is true)
//	int16/uint16      2 bytes
//	int32/uint32      4 bytes
//	float32           4 bytes, IEEE-754
//	string            [Length uint16][Bytes]
//	color             [R uint8][G uint8][B uint8]
//	Vec2/Vec3/Quat    2, 3 or 4 consecutive float32 values
//
// Strings carry raw bytes. No terminator is stored and no charset
// conversion is applied, so identifiers containing multi-byte delimiters
// survive a decode/encode cycle unchanged. Color channels decode to
// byte/255 with alpha fixed at 1; alpha is dropped on encode.
//
// # Sources
//
// Decoders never see an io.Reader directly. They read through a Source,
// which is implemented by StreamSource (buffered io.Reader) and
// BufferSource (byte slice). The bridge decoder runs over a file stream
// when embedded in a layout and over an in-memory buffer when extracted
// from a save slot:
//
//	r := codec.NewReader(codec.NewBufferSource(payload), sess)
//	b := bridge.Decode(r)
//	if err := r.Err(); err != nil {
//	    return err
//	}
//
// # Sessions
//
// A Session carries everything one conversion needs beyond the cursor: a
// ksuid identifying the run in logs, a log/slog logger, the collected
// warnings and the anomaly circuit breaker. Counts, versions and a few
// budget figures are checked against Limits as they are read. Values
// outside the hard bounds are counted; after DefaultMaxAnomalies of them
// any further out-of-range value aborts the decode with ErrAnomalousValue.
//
// # Error Handling
//
// Reader and Writer keep the first error they encounter and ignore later
// calls, which lets aggregate codecs read or write a whole record and check
// Err once. Every error wraps one of the package sentinels:
//   - ErrMalformedStream: truncated input or a structural mismatch
//   - ErrUnresolvedReference: an encode-time GUID lookup failed
//   - ErrAnomalousValue: the circuit breaker tripped
//   - ErrIO: the underlying reader or writer failed
//   - ErrUnencodable: a value does not fit its wire representation
//
// # Thread Safety
//
// Readers, Writers and Sessions are owned by a single conversion and must
// not be shared between goroutines. Independent conversions may run
// concurrently with their own sessions.
package codec
