// Package archive stores raw save files in a pebble database. Payloads are
// compressed with zstd and deduplicated by their BLAKE3 digest; each entry
// carries a CBOR envelope describing the file.
package archive

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/zeebo/blake3"
)

var (
	ErrNotFound = errors.New("archive entry not found")
	ErrEmpty    = errors.New("archive payload is empty")
)

// Key prefixes. Record and payload keys end with the 20-byte ksuid, digest
// keys with the 32-byte BLAKE3 sum.
var (
	prefixRecord  = []byte("rec/")
	prefixPayload = []byte("raw/")
	prefixDigest  = []byte("sum/")
)

// Meta is the caller-supplied description of a stored file.
type Meta struct {
	Name    string `cbor:"name" json:"name"`
	Kind    string `cbor:"kind" json:"kind"`
	Version int    `cbor:"version" json:"version"`
	StubKey string `cbor:"stub_key,omitempty" json:"stub_key,omitempty"`
	Modded  bool   `cbor:"modded,omitempty" json:"modded,omitempty"`
}

// Record is the stored envelope of one entry.
type Record struct {
	ID         ksuid.KSUID `cbor:"-" json:"id"`
	Digest     string      `cbor:"digest" json:"digest"`
	Size       int         `cbor:"size" json:"size"`
	StoredSize int         `cbor:"stored_size" json:"stored_size"`
	Meta       Meta        `cbor:"meta" json:"meta"`
}

// CreatedAt is the time embedded in the record ID.
func (r *Record) CreatedAt() time.Time {
	return r.ID.Time()
}

// Archive is safe for concurrent use.
type Archive struct {
	db *pebble.DB
	mu sync.Mutex
}

// Open opens or creates an archive in dir.
func Open(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", dir, err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func key(prefix, suffix []byte) []byte {
	k := make([]byte, 0, len(prefix)+len(suffix))
	return append(append(k, prefix...), suffix...)
}

// ParseID parses the string form of a record ID.
func ParseID(s string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(s)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("%w: %q", ErrNotFound, s)
	}
	return id, nil
}

// Put stores raw under a new ID. When identical content is already
// stored, its record is returned and existing is true.
func (a *Archive) Put(raw []byte, meta Meta) (rec *Record, existing bool, err error) {
	if len(raw) == 0 {
		return nil, false, ErrEmpty
	}
	sum := blake3.Sum256(raw)

	a.mu.Lock()
	defer a.mu.Unlock()

	idBytes, err := a.get(key(prefixDigest, sum[:]))
	switch {
	case err == nil:
		id, err := ksuid.FromBytes(idBytes)
		if err != nil {
			return nil, false, fmt.Errorf("corrupt digest index: %w", err)
		}
		rec, err := a.Get(id)
		return rec, true, err
	case !errors.Is(err, ErrNotFound):
		return nil, false, err
	}

	compressed := compress(raw)
	rec = &Record{
		ID:         ksuid.New(),
		Digest:     hex.EncodeToString(sum[:]),
		Size:       len(raw),
		StoredSize: len(compressed),
		Meta:       meta,
	}
	env, err := marshalRecord(rec)
	if err != nil {
		return nil, false, err
	}

	b := a.db.NewBatch()
	defer b.Close()
	if err := b.Set(key(prefixRecord, rec.ID.Bytes()), env, nil); err != nil {
		return nil, false, err
	}
	if err := b.Set(key(prefixPayload, rec.ID.Bytes()), compressed, nil); err != nil {
		return nil, false, err
	}
	if err := b.Set(key(prefixDigest, sum[:]), rec.ID.Bytes(), nil); err != nil {
		return nil, false, err
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return nil, false, fmt.Errorf("commit archive entry: %w", err)
	}
	return rec, false, nil
}

// get copies the value of k out of the database.
func (a *Archive) get(k []byte) ([]byte, error) {
	data, closer, err := a.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (a *Archive) Get(id ksuid.KSUID) (*Record, error) {
	env, err := a.get(key(prefixRecord, id.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return unmarshalRecord(id, env)
}

// Raw returns the original bytes of an entry.
func (a *Archive) Raw(id ksuid.KSUID) ([]byte, error) {
	rec, err := a.Get(id)
	if err != nil {
		return nil, err
	}
	compressed, err := a.get(key(prefixPayload, id.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("%s payload: %w", id, err)
	}
	return decompress(compressed, rec.Size)
}

// List returns every record, oldest first.
func (a *Archive) List() ([]Record, error) {
	upper := key(prefixRecord, nil)
	upper[len(upper)-1]++
	iter, err := a.db.NewIter(&pebble.IterOptions{LowerBound: prefixRecord, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Record
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(prefixRecord):])
		if err != nil {
			return nil, fmt.Errorf("corrupt record key: %w", err)
		}
		rec, err := unmarshalRecord(id, iter.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, iter.Error()
}

// Delete removes an entry and its digest index.
func (a *Archive) Delete(id ksuid.KSUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec, err := a.Get(id)
	if err != nil {
		return err
	}
	sum, err := hex.DecodeString(rec.Digest)
	if err != nil {
		return fmt.Errorf("corrupt digest for %s: %w", id, err)
	}

	b := a.db.NewBatch()
	defer b.Close()
	for _, k := range [][]byte{
		key(prefixRecord, id.Bytes()),
		key(prefixPayload, id.Bytes()),
		key(prefixDigest, sum),
	} {
		if err := b.Delete(k, nil); err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}
