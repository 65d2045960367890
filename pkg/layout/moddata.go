package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// decodeModData reads the trailer of a modded layout: an int16 count of
// mod descriptors, then, if any bytes remain, an int32 count of mod save
// data blobs.
func decodeModData(r *codec.Reader) *model.ModData {
	sess := r.Session()
	log := sess.Logger("mods")

	n := int(r.Int16())
	if r.Err() == nil {
		r.Fail(sess.Check("mod count", n, sess.Bounds().Count))
	}
	md := &model.ModData{Mods: make([]model.Mod, 0, max(n, 0))}
	for i := 0; i < n && r.Err() == nil; i++ {
		s := r.Str()
		if r.Err() != nil {
			break
		}
		parts := strings.Split(s, model.ModDelimiter)
		m := model.Mod{Name: part(parts, 0), Version: part(parts, 1), Settings: part(parts, 2)}
		log.Info("layout saved with mod", "name", m.Name, "version", m.Version)
		md.Mods = append(md.Mods, m)
	}
	if !r.More() {
		return md
	}

	extra := r.Count("mod save data count")
	for i := 0; i < extra && r.Err() == nil; i++ {
		id := r.Str()
		parts := strings.Split(id, model.ModDelimiter)
		size := int(r.Int32())
		if r.Err() != nil {
			break
		}
		if size <= 0 {
			r.Fail(fmt.Errorf("%w: mod save data %q has length %d", codec.ErrMalformedStream, id, size))
			break
		}
		data := r.Bytes(size)
		if r.Err() != nil {
			break
		}

		name := part(parts, 0)
		if name == "" {
			sess.Warn(log, "skipping mod save data without a name", "identifier", id)
			continue
		}
		md.SaveData = append(md.SaveData, model.ModSaveData{Name: name, Version: part(parts, 1), Data: data})
	}
	return md
}

func part(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func encodeModData(w *codec.Writer, md *model.ModData) {
	if md == nil {
		w.Int16(0)
		return
	}
	if len(md.Mods) > math.MaxInt16 {
		w.Fail(fmt.Errorf("%w: %d mods exceed int16", codec.ErrUnencodable, len(md.Mods)))
		return
	}
	w.Int16(int16(len(md.Mods)))
	for _, m := range md.Mods {
		w.Str(strings.Join([]string{m.Name, m.Version, m.Settings}, model.ModDelimiter))
	}

	if len(md.SaveData) == 0 {
		return
	}
	codec.WriteSlice(w, md.SaveData, func(w *codec.Writer, sd model.ModSaveData) {
		if len(sd.Data) == 0 {
			w.Fail(fmt.Errorf("%w: mod save data %q is empty", codec.ErrUnencodable, sd.Name))
			return
		}
		w.Str(sd.Name + model.ModDelimiter + sd.Version)
		w.Count(len(sd.Data))
		w.Bytes(sd.Data)
	})
}
