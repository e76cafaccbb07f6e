package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/magsetup/internal/setup"
)

const (
	DefaultMethod   = "cfpdes"
	DefaultTime     = setup.Static
	DefaultGeometry = setup.GeomAxi
	DefaultModel    = "thelec"
	DefaultCooling  = "mean"
	DefaultUnits    = "meter"
)

// Config is a setup request stored as YAML.
type Config struct {
	Method   string `yaml:"method"`
	Time     string `yaml:"time"`
	Geometry string `yaml:"geom"`
	Model    string `yaml:"model"`
	Cooling  string `yaml:"cooling"`
	Linear   bool   `yaml:"linear"`
	Units    string `yaml:"units"`
	// Server names the machine the setup targets, if any.
	Server string `yaml:"server,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:   DefaultMethod,
		Time:     DefaultTime,
		Geometry: DefaultGeometry,
		Model:    DefaultModel,
		Cooling:  DefaultCooling,
		Linear:   true,
		Units:    DefaultUnits,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Selection() setup.Selection {
	return setup.Selection{
		Method:   c.Method,
		Time:     c.Time,
		Geometry: c.Geometry,
		Model:    c.Model,
		Cooling:  c.Cooling,
		Linear:   c.Linear,
		Units:    c.Units,
	}
}

// FromSelection is the inverse of Selection.
func FromSelection(sel setup.Selection) *Config {
	return &Config{
		Method:   sel.Method,
		Time:     sel.Time,
		Geometry: sel.Geometry,
		Model:    sel.Model,
		Cooling:  sel.Cooling,
		Linear:   sel.Linear,
		Units:    sel.Units,
	}
}
