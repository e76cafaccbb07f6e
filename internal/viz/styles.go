package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00cccc"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff"))

	Cursor = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	SlotLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	SlotPath = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff"))

	Tag = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff88ff"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00aaaa")).
		Bold(true)
)

// Separator draws a muted horizontal rule.
func Separator(width int) string {
	if width < 1 {
		width = 1
	}
	return Subtle.Render(strings.Repeat("─", width))
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(KeyHint.Render(pairs[i]) + Subtle.Render(" "+pairs[i+1]))
	}
	return b.String()
}
