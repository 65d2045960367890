package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/layout"
	"github.com/ssargent/polyparser/pkg/slot"
)

// Options control a file conversion.
type Options struct {
	// Format is the tree format written when the input is a binary.
	Format Format
	Indent int
	// Output overrides the derived output path.
	Output  string
	Session codec.SessionOptions
	Logger  *slog.Logger
}

// Outcome describes one finished conversion.
type Outcome struct {
	Input        string
	Output       string
	Kind         Kind
	SessionID    string
	NewerVersion bool
	Warnings     []string
}

// File converts in according to its extension: binaries are decoded to a
// tree, layout trees are encoded to a binary. Nothing is written when the
// conversion fails.
func File(in string, opts Options) (*Outcome, error) {
	kind, format := Classify(in)
	if kind == KindUnknown {
		return nil, fmt.Errorf("unsupported file type: %s", in)
	}
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}
	sess := codec.NewSession(opts.Session)

	out := opts.Output
	if out == "" {
		out = OutputPath(in, opts.Format)
	}
	res := &Outcome{Input: in, Output: out, Kind: kind, SessionID: sess.ID.String()}

	var err error
	switch kind {
	case KindLayout:
		err = decodeLayoutFile(in, out, opts, sess, res)
	case KindSlot:
		err = decodeSlotFile(in, out, opts, sess, res)
	case KindLayoutTree:
		err = encodeLayoutFile(in, out, format, sess)
	case KindSlotTree:
		err = slot.ErrEncodeUnsupported
	}
	res.Warnings = sess.Warnings()
	if err != nil {
		return res, fmt.Errorf("%s: %w", in, err)
	}
	return res, nil
}

func decodeLayoutFile(in, out string, opts Options, sess *codec.Session, res *Outcome) error {
	r, err := layout.DecodeFile(in, sess)
	if err != nil {
		return err
	}
	res.NewerVersion = r.NewerVersion
	data, err := Marshal(&r.Layout, opts.Format, opts.Indent)
	if err != nil {
		return err
	}
	return WriteFile(out, data)
}

func decodeSlotFile(in, out string, opts Options, sess *codec.Session, res *Outcome) error {
	r, err := slot.DecodeFile(in, sess)
	if err != nil {
		return err
	}
	res.NewerVersion = r.NewerVersion
	data, err := Marshal(&r.Slot, opts.Format, opts.Indent)
	if err != nil {
		return err
	}
	return WriteFile(out, data)
}

func encodeLayoutFile(in, out string, f Format, sess *codec.Session) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	l, err := UnmarshalLayout(data, f)
	if err != nil {
		return err
	}
	return layout.EncodeFile(out, l, sess)
}

// WriteFile writes data to path through a temporary file in the same
// directory so a failed write leaves no partial output.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	return nil
}
