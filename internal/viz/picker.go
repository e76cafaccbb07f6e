package viz

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/magsetup/internal/catalog"
	"github.com/san-kum/magsetup/internal/setup"
)

// ErrAborted is returned by Pick when the user quits before choosing.
var ErrAborted = errors.New("viz: selection aborted")

const (
	stepMethod = iota
	stepTime
	stepGeometry
	stepModel
	stepCooling
	stepLinearity
	stepDone
)

var stepNames = []string{"method", "time", "geometry", "model", "cooling", "linearity"}

// Picker walks the catalog one key at a time and builds a Selection.
type Picker struct {
	cat     *catalog.Catalog
	step    int
	choices []string
	cursor  int
	sel     setup.Selection
	aborted bool
}

func NewPicker(cat *catalog.Catalog) Picker {
	p := Picker{cat: cat, sel: setup.Selection{Linear: true}}
	p.choices = p.choicesFor(stepMethod)
	return p
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		p.aborted = true
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.choices)-1 {
			p.cursor++
		}
	case "esc", "backspace":
		p = p.back()
	case "enter", " ":
		if len(p.choices) == 0 {
			return p, nil
		}
		p = p.choose(p.choices[p.cursor])
		if p.step == stepDone {
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p Picker) choose(value string) Picker {
	switch p.step {
	case stepMethod:
		p.sel.Method = value
	case stepTime:
		p.sel.Time = value
	case stepGeometry:
		p.sel.Geometry = value
	case stepModel:
		p.sel.Model = value
	case stepCooling:
		p.sel.Cooling = value
	case stepLinearity:
		p.sel.Linear = value == "linear"
	}
	return p.advance(p.step + 1)
}

func (p Picker) advance(step int) Picker {
	if step == stepCooling && !p.hasCooling() {
		p.sel.Cooling = ""
		step = stepLinearity
	}
	p.step, p.cursor = step, 0
	p.choices = p.choicesFor(step)
	return p
}

func (p Picker) back() Picker {
	if p.step == stepMethod {
		return p
	}
	step := p.step - 1
	if step == stepCooling && !p.hasCooling() {
		step = stepModel
	}
	p.step, p.cursor = step, 0
	p.choices = p.choicesFor(step)
	return p
}

// hasCooling reports whether the cooling step offers a choice. Non-thermal
// models have none, and neither do nodes that only carry the robin template.
func (p Picker) hasCooling() bool {
	if !setup.CapabilitiesOf(p.sel.Model).Thermal {
		return false
	}
	return len(p.choicesFor(stepCooling)) > 0
}

func (p Picker) choicesFor(step int) []string {
	switch step {
	case stepMethod:
		return catalog.SupportedMethods(p.cat)
	case stepTime:
		return catalog.SupportedTimes(p.cat, p.sel.Method)
	case stepGeometry:
		return catalog.SupportedGeometries(p.cat, p.sel.Method, p.sel.Time)
	case stepModel:
		return catalog.SupportedModels(p.cat, p.sel.Method, p.sel.Geometry, p.sel.Time)
	case stepCooling:
		node, err := p.cat.Lookup(p.sel)
		if err != nil {
			return nil
		}
		return catalog.SupportedCoolings(node)
	case stepLinearity:
		return []string{"linear", "nonlinear"}
	}
	return nil
}

// Selection returns the chosen selection once the picker is done.
func (p Picker) Selection() (setup.Selection, bool) {
	return p.sel, p.step == stepDone && !p.aborted
}

func (p Picker) View() string {
	if p.step == stepDone {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n  " + Title.Render("MAGSETUP") + "  " + Subtle.Render("choose "+stepNames[p.step]) + "\n")
	if trail := p.trail(); trail != "" {
		b.WriteString("  " + Tag.Render(trail) + "\n")
	}
	b.WriteString("  " + Separator(25) + "\n\n")

	if len(p.choices) == 0 {
		b.WriteString("  " + Subtle.Render("nothing available here") + "\n")
	}
	for i, c := range p.choices {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("  %s %s\n", Cursor.Render("▸"), Selected.Render(c)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", Subtle.Render(c)))
		}
	}
	b.WriteString("\n  " + hints("j/k", "navigate", "enter", "select", "esc", "back", "q", "quit") + "\n")
	return b.String()
}

func (p Picker) trail() string {
	parts := []string{p.sel.Method, p.sel.Time, p.sel.Geometry, p.sel.Model}
	var set []string
	for i, s := range parts {
		if i >= p.step {
			break
		}
		set = append(set, s)
	}
	return strings.Join(set, " / ")
}

// Pick runs the picker in the terminal and returns the chosen selection.
func Pick(cat *catalog.Catalog) (setup.Selection, error) {
	final, err := tea.NewProgram(NewPicker(cat)).Run()
	if err != nil {
		return setup.Selection{}, err
	}
	sel, ok := final.(Picker).Selection()
	if !ok {
		return setup.Selection{}, ErrAborted
	}
	return sel, nil
}
