// Package report renders human-readable summaries of decoded files.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ssargent/polyparser/pkg/layout"
	"github.com/ssargent/polyparser/pkg/model"
	"github.com/ssargent/polyparser/pkg/slot"
)

// Printer writes summaries to one output. Colors are only emitted when
// the output is a terminal.
type Printer struct {
	out   io.Writer
	r     *lipgloss.Renderer
	label lipgloss.Style
	warn  lipgloss.Style
	// Now is used for relative times.
	Now func() time.Time
}

func New(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:   out,
		r:     r,
		label: r.NewStyle().Bold(true).Width(22),
		warn:  r.NewStyle().Foreground(lipgloss.Color("214")),
		Now:   time.Now,
	}
}

func (p *Printer) line(label string, value any) {
	fmt.Fprintf(p.out, "%s %v\n", p.label.Render(label+":"), value)
}

func (p *Printer) heading(title string) {
	fmt.Fprintln(p.out, p.r.NewStyle().Bold(true).Underline(true).Render(title))
}

// Layout prints the summary of a decoded layout.
func (p *Printer) Layout(l *model.Layout, warnings []string) {
	theme := layout.Theme(l.StubKey)
	themeStyle := p.r.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(theme.Color))).Bold(true)

	p.heading("Layout")
	p.line("Version", l.Version)
	p.line("Theme", themeStyle.Render(theme.Name)+" ("+l.StubKey+")")
	if l.Workshop.Title != "" {
		p.line("Workshop title", l.Workshop.Title)
	}
	if len(l.Workshop.Tags) > 0 {
		p.line("Workshop tags", strings.Join(l.Workshop.Tags, ", "))
	}
	p.line("Cash budget", "$"+humanize.Comma(int64(l.Budget.Cash)))
	p.line("Unbreakable", l.Settings.Unbreakable)

	p.bridge(&l.Bridge)

	p.heading("Level")
	counts := []struct {
		name string
		n    int
	}{
		{"Anchors", len(l.Anchors)},
		{"Vehicles", len(l.Vehicles) + len(l.ZAxisVehicles)},
		{"Checkpoints", len(l.Checkpoints)},
		{"Terrain stretches", len(l.TerrainIslands)},
		{"Platforms", len(l.Platforms)},
		{"Ramps", len(l.Ramps)},
		{"Water blocks", len(l.WaterBlocks)},
		{"Custom shapes", len(l.CustomShapes)},
		{"Pillars", len(l.Pillars) + len(l.SupportPillars)},
	}
	for _, c := range counts {
		p.line(c.name, humanize.Comma(int64(c.n)))
	}

	if l.IsModded && l.ModData != nil {
		p.heading("Mods")
		for _, m := range l.ModData.Mods {
			p.line(m.Name, m.Version)
		}
		for _, sd := range l.ModData.SaveData {
			p.line(sd.Name+" data", humanize.Bytes(uint64(len(sd.Data))))
		}
	}
	p.warnings(warnings)
}

// Slot prints the summary of a decoded save slot.
func (p *Printer) Slot(s *model.SaveSlot, warnings []string) {
	p.heading("Save slot")
	p.line("Name", s.DisplayName)
	p.line("File", s.FileName)
	p.line("Slot", s.SlotID)
	p.line("Version", fmt.Sprintf("%d (physics %d)", s.Version, s.PhysicsVersion))
	p.line("Budget", "$"+humanize.Comma(int64(s.Budget)))

	written := slot.FormatLastWrite(s.LastWriteTimeTicks)
	if s.LastWriteTimeTicks != 0 {
		written += " (" + humanize.RelTime(slot.LastWriteTime(s.LastWriteTimeTicks), p.Now(), "ago", "from now") + ")"
	}
	p.line("Last written", written)

	thumb := "none"
	if len(s.Thumbnail) > 0 {
		thumb = humanize.Bytes(uint64(len(s.Thumbnail)))
	}
	p.line("Thumbnail", thumb)
	p.line("Unlimited materials", s.UsingUnlimitedMaterials)
	p.line("Unlimited budget", s.UsingUnlimitedBudget)

	p.bridge(&s.Bridge)
	p.warnings(warnings)
}

func (p *Printer) bridge(b *model.Bridge) {
	p.heading("Bridge")
	p.line("Version", b.Version)
	p.line("Joints", humanize.Comma(int64(len(b.Joints))))
	p.line("Edges", humanize.Comma(int64(len(b.Edges))))
	if len(b.Edges) > 0 {
		byMaterial := make(map[model.Material]int)
		for _, e := range b.Edges {
			byMaterial[e.Material]++
		}
		var parts []string
		for m := model.MaterialRoad; m <= model.MaterialSpring; m++ {
			if n := byMaterial[m]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", m, n))
			}
		}
		p.line("Materials", strings.Join(parts, ", "))
	}
	p.line("Springs", len(b.Springs))
	p.line("Pistons", len(b.Pistons))
	p.line("Hydraulic phases", len(b.HydraulicsController.Phases))
}

func (p *Printer) warnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	p.heading("Warnings")
	for _, w := range warnings {
		fmt.Fprintln(p.out, p.warn.Render("! "+w))
	}
}
