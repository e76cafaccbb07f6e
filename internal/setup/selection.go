package setup

import (
	"fmt"
	"strings"
)

// Time regimes.
const (
	Transient = "transient"
	Static    = "static"
)

// Geometries.
const (
	Geom2D  = "2D"
	GeomAxi = "Axi"
	Geom3D  = "3D"
)

// Selection is the input of a resolution: which template set to assemble.
type Selection struct {
	Method   string `yaml:"method" json:"method"`
	Time     string `yaml:"time" json:"time"`
	Geometry string `yaml:"geom" json:"geom"`
	Model    string `yaml:"model" json:"model"`
	Cooling  string `yaml:"cooling" json:"cooling"`
	Linear   bool   `yaml:"linear" json:"linear"`
	// Units is passed through to the rendering stage untouched.
	Units string `yaml:"units,omitempty" json:"units,omitempty"`
}

// Validate checks that every key needed to address the catalog is set.
func (s Selection) Validate() error {
	var missing []string
	if s.Method == "" {
		missing = append(missing, "method")
	}
	if s.Time == "" {
		missing = append(missing, "time")
	}
	if s.Geometry == "" {
		missing = append(missing, "geom")
	}
	if s.Model == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return fmt.Errorf("selection: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Key returns the catalog path of the selection.
func (s Selection) Key() []string {
	return []string{s.Method, s.Time, s.Geometry, s.Model}
}

func (s Selection) String() string {
	lin := "linear"
	if !s.Linear {
		lin = "nonlinear"
	}
	return fmt.Sprintf("%s/%s/%s/%s cooling=%s %s", s.Method, s.Time, s.Geometry, s.Model, s.Cooling, lin)
}

// Capabilities lists the physics a model identifier activates. Flags are
// independent: "thmqsel" is thermal, magnetic and dual-stage elastic.
type Capabilities struct {
	Thermal       bool
	Magnetic      bool
	ElasticSingle bool
	ElasticDual   bool
}

// CapabilitiesOf derives the capability flags from a model identifier.
// Magnetic is set for any identifier containing "mag" or "mqs", which
// includes the elastic variants "magel" and "mqsel".
func CapabilitiesOf(model string) Capabilities {
	return Capabilities{
		Thermal:       strings.Contains(model, "th"),
		Magnetic:      strings.Contains(model, "mag") || strings.Contains(model, "mqs"),
		ElasticSingle: strings.Contains(model, "magel"),
		ElasticDual:   strings.Contains(model, "mqsel"),
	}
}

// MaterialDef returns the generic material categories for a time regime.
func MaterialDef(time string) []string {
	def := []string{"conductor", "insulator"}
	if time == Transient {
		def = append(def, "conduct-nosource")
	}
	return def
}
