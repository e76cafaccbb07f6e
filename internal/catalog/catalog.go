// Package catalog loads the setup catalog (magnetsetup.json): for every
// method, time regime, geometry and model, the template filenames of each
// physics facet.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/san-kum/magsetup/internal/setup"
)

// DefaultFile is the name of the catalog shipped with the tools.
const DefaultFile = "magnetsetup.json"

//go:embed magnetsetup.json
var defaultCatalog []byte

// Reserved top-level keys. They hold administrative data, not methods.
var reserved = map[string]bool{"mesh": true, "post": true}

type (
	Geometry = Ordered[*ModelNode]
	Time     = Ordered[Geometry]
	Method   = Ordered[Time]
)

// ModelNode lists the template filenames of one (method, time, geometry,
// model) combination. Filenames are relative to the model template directory.
type ModelNode struct {
	Cfg                string            `json:"cfg"`
	Model              string            `json:"model"`
	ModelNonlinear     string            `json:"model-nonlinear"`
	ConductorLinear    string            `json:"conductor-linear"`
	ConductorNonlinear string            `json:"conductor-nonlinear"`
	Insulator          string            `json:"insulator"`
	Models             map[string]string `json:"models"`
	Cooling            Ordered[string]   `json:"cooling"`
	CoolingPost        Ordered[string]   `json:"cooling-post"`
	StatsT             string            `json:"stats_T"`
	StatsPower         string            `json:"stats_Power"`
	StatsCurrent       string            `json:"stats_Current"`

	// Path is the catalog key path of the node, set at load time.
	Path []string `json:"-"`
}

// Catalog is the parsed setup catalog. It is read-only once loaded.
type Catalog struct {
	methods  Ordered[Method]
	reserved map[string]json.RawMessage
}

// UnmarshalJSON decodes the top-level object. A method whose value is
// empty (null, false, 0, "" or []) is kept with no content.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	c.reserved = make(map[string]json.RawMessage)
	err := eachMember(data, func(key string, raw json.RawMessage) error {
		if reserved[key] {
			c.reserved[key] = raw
			return nil
		}
		var m Method
		if !isEmptyValue(raw) {
			if err := json.Unmarshal(raw, &m); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		c.methods.set(key, m)
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

// Load parses the catalog shipped with the tools. Each call parses the
// document again.
func Load() (*Catalog, error) {
	cat, err := Parse(defaultCatalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DefaultFile, err)
	}
	return cat, nil
}

// LoadFile reads and parses a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog document. Comments and trailing commas are
// accepted. Every model node is checked for the keys all selections need.
func Parse(data []byte) (*Catalog, error) {
	data = bytes.TrimSpace(jsonc.ToJSON(data))
	if len(data) == 0 {
		return nil, fmt.Errorf("catalog: empty document")
	}

	cat := &Catalog{}
	if err := json.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *Catalog) validate() error {
	for _, method := range c.methods.keys {
		m := c.methods.vals[method]
		for _, time := range m.keys {
			t := m.vals[time]
			for _, geom := range t.keys {
				g := t.vals[geom]
				for _, model := range g.keys {
					path := []string{method, time, geom, model}
					node := g.vals[model]
					if node == nil {
						return &setup.CatalogLookupError{Path: path[:3], Key: model}
					}
					node.Path = path
					if err := node.validate(); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (n *ModelNode) validate() error {
	required := []struct {
		key string
		val string
	}{
		{"cfg", n.Cfg},
		{"model", n.Model},
		{"conductor-linear", n.ConductorLinear},
		{"conductor-nonlinear", n.ConductorNonlinear},
		{"insulator", n.Insulator},
		{"stats_Power", n.StatsPower},
		{"stats_Current", n.StatsCurrent},
	}
	for _, r := range required {
		if r.val == "" {
			return &setup.CatalogLookupError{Path: n.Path, Key: r.key}
		}
	}
	return nil
}

// Facet returns the filename of a physics facet under "models".
func (n *ModelNode) Facet(name string) (string, error) {
	if f, ok := n.Models[name]; ok && f != "" {
		return f, nil
	}
	return "", &setup.CatalogLookupError{Path: append(append([]string(nil), n.Path...), "models"), Key: name}
}

// CoolingFile returns the cooling template registered under key.
func (n *ModelNode) CoolingFile(key string) (string, error) {
	if f, ok := n.Cooling.Get(key); ok && f != "" {
		return f, nil
	}
	return "", &setup.CatalogLookupError{Path: append(append([]string(nil), n.Path...), "cooling"), Key: key}
}

// FluxFile returns the cooling post-processing template registered under key.
func (n *ModelNode) FluxFile(key string) (string, error) {
	if f, ok := n.CoolingPost.Get(key); ok && f != "" {
		return f, nil
	}
	return "", &setup.CatalogLookupError{Path: append(append([]string(nil), n.Path...), "cooling-post"), Key: key}
}

// Lookup returns the node addressed by a selection.
func (c *Catalog) Lookup(sel setup.Selection) (*ModelNode, error) {
	m, ok := c.methods.Get(sel.Method)
	if !ok {
		return nil, &setup.CatalogLookupError{Key: sel.Method}
	}
	t, ok := m.Get(sel.Time)
	if !ok {
		return nil, &setup.CatalogLookupError{Path: []string{sel.Method}, Key: sel.Time}
	}
	g, ok := t.Get(sel.Geometry)
	if !ok {
		return nil, &setup.CatalogLookupError{Path: []string{sel.Method, sel.Time}, Key: sel.Geometry}
	}
	node, ok := g.Get(sel.Model)
	if !ok {
		return nil, &setup.CatalogLookupError{Path: []string{sel.Method, sel.Time, sel.Geometry}, Key: sel.Model}
	}
	return node, nil
}

// Reserved returns the raw content of an administrative key ("mesh", "post").
func (c *Catalog) Reserved(key string) (json.RawMessage, bool) {
	n, ok := c.reserved[key]
	return n, ok
}
