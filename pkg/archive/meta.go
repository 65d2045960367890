package archive

import "github.com/ssargent/polyparser/pkg/model"

const (
	KindLayout = "layout"
	KindSlot   = "slot"
)

func LayoutMeta(name string, l *model.Layout) Meta {
	return Meta{
		Name:    name,
		Kind:    KindLayout,
		Version: l.Version,
		StubKey: l.StubKey,
		Modded:  l.IsModded,
	}
}

func SlotMeta(name string, s *model.SaveSlot) Meta {
	return Meta{Name: name, Kind: KindSlot, Version: s.Version}
}
