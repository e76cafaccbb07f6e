package config

import "sort"

var Presets = map[string]*Config{
	"thelec-axi": {
		Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "thelec", Cooling: "mean", Linear: true, Units: "meter",
	},
	"thelec-3d": {
		Method: "cfpdes", Time: "static", Geometry: "3D", Model: "thelec", Cooling: "mean", Linear: true, Units: "meter",
	},
	"mag-axi": {
		Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "mag", Linear: true, Units: "meter",
	},
	"thmag-axi": {
		Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "thmag", Cooling: "grad", Linear: true, Units: "meter",
	},
	"thmag-3d-nonlinear": {
		Method: "cfpdes", Time: "static", Geometry: "3D", Model: "thmag", Cooling: "grad", Linear: false, Units: "meter",
	},
	"thmagel-axi": {
		Method: "cfpdes", Time: "static", Geometry: "Axi", Model: "thmagel", Cooling: "meanH", Linear: true, Units: "meter",
	},
	"mqs-axi": {
		Method: "cfpdes", Time: "transient", Geometry: "Axi", Model: "mqs", Linear: true, Units: "meter",
	},
	"thmqsel-axi": {
		Method: "cfpdes", Time: "transient", Geometry: "Axi", Model: "thmqsel", Cooling: "gradH", Linear: true, Units: "meter",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
