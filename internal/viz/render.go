package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/magsetup/internal/setup"
)

// RenderDescriptor lays out the templates of a resolved selection.
func RenderDescriptor(sel setup.Selection, d *setup.Descriptor) string {
	var b strings.Builder
	b.WriteString(Title.Render(sel.String()) + "\n")
	b.WriteString(Separator(len(sel.String())) + "\n")

	width := len(setup.SlotMaterialDef)
	for _, s := range d.Slots() {
		width = max(width, len(s))
	}

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", SlotLabel.Render(fmt.Sprintf("%-*s", width, label)), value))
	}
	for _, p := range d.Paths() {
		row(p.Slot, SlotPath.Render(p.Path))
	}
	row(setup.SlotMaterialDef, Tag.Render(strings.Join(d.MaterialDef, ", ")))
	return b.String()
}

// RenderList renders a titled list, or a placeholder when it is empty.
func RenderList(title string, items []string) string {
	var b strings.Builder
	b.WriteString(Title.Render(title) + "\n")
	if len(items) == 0 {
		b.WriteString("  " + Subtle.Render("(none)") + "\n")
		return b.String()
	}
	for _, item := range items {
		b.WriteString("  " + item + "\n")
	}
	return b.String()
}
