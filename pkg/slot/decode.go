package slot

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ssargent/polyparser/pkg/bridge"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
	"github.com/ssargent/polyparser/pkg/tagged"
)

// overrideType is the root type this decoder understands.
const overrideType = "BridgeSaveSlotData"

// ErrEncodeUnsupported is returned for any attempt to write a slot file.
var ErrEncodeUnsupported = fmt.Errorf("%w: slot files can only be decoded", codec.ErrUnencodable)

// Result is a decoded slot together with what the session observed.
type Result struct {
	Slot model.SaveSlot
	// NewerVersion is set when the slot or its physics version is newer
	// than this decoder knows.
	NewerVersion bool
	Warnings     []string
}

// DecodeFile opens path and decodes it as a slot.
func DecodeFile(path string, sess *codec.Session) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	defer f.Close()

	return Read(f, sess)
}

func Read(rd io.Reader, sess *codec.Session) (*Result, error) {
	return Decode(codec.NewReader(codec.NewStreamSource(rd), sess))
}

func DecodeBytes(data []byte, sess *codec.Session) (*Result, error) {
	return Decode(codec.NewReader(codec.NewBufferSource(data), sess))
}

// decoder reads the known field sequence and keeps the first error.
type decoder struct {
	t    *tagged.Reader
	sess *codec.Session
	log  *slog.Logger
	err  error
}

// Decode reads one slot from r.
func Decode(r *codec.Reader) (*Result, error) {
	sess := r.Session()
	d := &decoder{t: tagged.NewReader(r), sess: sess, log: sess.Logger("slot")}

	var s model.SaveSlot
	d.enter()

	bounds := sess.Bounds()
	s.Version = d.checked("m_Version", bounds.Count)
	s.PhysicsVersion = d.checked("m_PhysicsVersion", bounds.Count)
	s.SlotID = d.checked("m_SlotID", bounds.Count)
	s.DisplayName = d.string("m_DisplayName")
	s.FileName = d.string("m_SlotFilename")
	s.Budget = d.checked("m_Budget", bounds.SlotBudget)
	s.LastWriteTimeTicks = d.integer("m_LastWriteTimeTicks")
	if d.err != nil {
		return nil, d.wrap(r)
	}

	res := &Result{}
	if s.Version > model.MaxSlotVersion {
		res.NewerVersion = true
		sess.Warn(d.log, "slot saved with a newer format version", "version", s.Version, "max", model.MaxSlotVersion)
	}
	if s.PhysicsVersion > model.MaxPhysicsVersion {
		res.NewerVersion = true
		sess.Warn(d.log, "slot saved with a newer physics version", "version", s.PhysicsVersion, "max", model.MaxPhysicsVersion)
	}
	d.log.Info("decoding slot",
		"version", s.Version,
		"physics_version", s.PhysicsVersion,
		"slot_id", s.SlotID,
		"name", s.DisplayName,
		"last_write", FormatLastWrite(s.LastWriteTimeTicks),
	)

	s.Bridge = d.bridge()
	s.Thumbnail = d.thumbnail()
	s.UsingUnlimitedMaterials = d.boolean("m_UsingUnlimitedMaterials")
	s.UsingUnlimitedBudget = d.boolean("m_UsingUnlimitedBudget")
	d.exit()
	if d.err != nil {
		return nil, d.wrap(r)
	}

	d.log.Info("slot decoded",
		"bridge_version", s.Bridge.Version,
		"joints", len(s.Bridge.Joints),
		"edges", len(s.Bridge.Edges),
		"thumbnail_bytes", len(s.Thumbnail),
		"unlimited_materials", s.UsingUnlimitedMaterials,
		"unlimited_budget", s.UsingUnlimitedBudget,
	)
	res.Slot = s
	res.Warnings = sess.Warnings()
	return res, nil
}

func (d *decoder) wrap(r *codec.Reader) error {
	return fmt.Errorf("decode slot at offset %d: %w", r.Offset(), d.err)
}

func (d *decoder) enter() tagged.Node {
	if d.err != nil {
		return tagged.Node{}
	}
	n, err := d.t.EnterNode()
	d.err = err
	if err == nil && n.Type != nil && n.Type.Name == overrideType {
		d.log.Info("using override for type " + overrideType)
	}
	return n
}

func (d *decoder) exit() {
	if d.err == nil {
		d.err = d.t.ExitNode()
	}
}

func (d *decoder) expect(kind tagged.Kind, name string) bool {
	if d.err == nil {
		_, d.err = d.t.Expect(kind, name)
	}
	return d.err == nil
}

func (d *decoder) integer(name string) int64 {
	if !d.expect(tagged.KindInteger, name) {
		return 0
	}
	v, err := d.t.ReadInteger()
	d.err = err
	d.log.Debug("field", "name", name, "value", v)
	return v
}

func (d *decoder) checked(name string, lim codec.Limits) int {
	v := int(d.integer(name))
	if d.err == nil {
		d.err = d.sess.Check(name, v, lim)
	}
	return v
}

func (d *decoder) string(name string) string {
	if !d.expect(tagged.KindString, name) {
		return ""
	}
	v, err := d.t.ReadString()
	d.err = err
	d.log.Debug("field", "name", name, "value", v)
	return v
}

func (d *decoder) boolean(name string) bool {
	if !d.expect(tagged.KindBoolean, name) {
		return false
	}
	v, err := d.t.ReadBool()
	d.err = err
	return v
}

// bridge reads the node wrapping the bridge buffer and decodes the buffer
// with the same session.
func (d *decoder) bridge() model.Bridge {
	n := d.enter()
	if d.err != nil {
		return model.Bridge{}
	}
	buf, err := d.t.ReadPrimitiveArray()
	if err != nil {
		d.err = err
		return model.Bridge{}
	}
	d.log.Info("loading bridge data", "node", n.Name, "bytes", len(buf))

	src := codec.NewBufferSource(buf)
	br := codec.NewReader(src, d.sess)
	b := bridge.Decode(br)
	if err := br.Err(); err != nil {
		d.err = fmt.Errorf("embedded bridge: %w", err)
		return b
	}
	if rest := src.Remaining(); rest > 0 {
		d.log.Debug("bridge buffer has unread bytes", "bytes", rest)
	}
	d.exit()
	return b
}

// thumbnail accepts a null entry or a node holding one primitive array.
func (d *decoder) thumbnail() []byte {
	if d.err != nil {
		return nil
	}
	e, err := d.t.Peek()
	if err != nil {
		d.err = err
		return nil
	}
	if e.Name != "m_Thumb" {
		d.err = fmt.Errorf("%w: expected m_Thumb, found %s %q", codec.ErrMalformedStream, e.Kind, e.Name)
		return nil
	}

	switch e.Kind {
	case tagged.KindNull:
		d.err = d.t.ReadNull()
		d.log.Info("no thumbnail in save slot")
		return nil
	case tagged.KindStartOfNode:
		d.enter()
		if d.err != nil {
			return nil
		}
		data, err := d.t.ReadPrimitiveArray()
		if err != nil {
			d.err = err
			return nil
		}
		d.exit()
		d.log.Info("thumbnail loaded", "bytes", len(data))
		return bytes.Clone(data)
	default:
		d.err = fmt.Errorf("%w: m_Thumb is %s", codec.ErrMalformedStream, e.Kind)
		return nil
	}
}
