// Package machine looks up server definitions in the machine registry
// (machines.json). Definitions are passed through untouched; Decode maps
// one onto a caller struct.
package machine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/magsetup/internal/setup"
)

const DefaultFile = "machines.json"

// Definition is the raw registry entry of one server.
type Definition map[string]any

// Decode copies a definition into out, converting scalar types where needed.
func (d Definition) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(d))
}

// Machine holds the fields most registries carry. Anything else ends up in Extra.
type Machine struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Dns            string         `json:"dns"`
	Cores          int            `json:"cores"`
	Multithreading bool           `json:"multithreading"`
	Smp            bool           `json:"smp"`
	Extra          map[string]any `json:",remain"`
}

type Registry struct {
	names []string
	defs  map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds or replaces a server definition.
func (r *Registry) Register(name string, def Definition) {
	if _, ok := r.defs[name]; !ok {
		r.names = append(r.names, name)
	}
	r.defs[name] = def
}

// Load reads a registry document (JSON, JSONC or YAML).
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading machines: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a registry document. Input starting with "{" or "//" is
// JSON with optional comments; anything else is YAML.
func Parse(data []byte) (*Registry, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("{")) || bytes.HasPrefix(data, []byte("//")) {
		return parseJSON(jsonc.ToJSON(data))
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing machines: %w", err)
	}
	r := NewRegistry()
	if len(doc.Content) == 0 {
		return r, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing machines: line %d: expected object", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var def Definition
		if err := root.Content[i+1].Decode(&def); err != nil {
			return nil, fmt.Errorf("server %s: %w", name, err)
		}
		r.add(name, def)
	}
	return r, nil
}

func parseJSON(data []byte) (*Registry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing machines: %w", err)
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("parsing machines: expected object")
	}
	r := NewRegistry()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing machines: %w", err)
		}
		name, _ := tok.(string)
		var def Definition
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("server %s: %w", name, err)
		}
		r.add(name, def)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing machines: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parsing machines: trailing data after object")
	}
	return r, nil
}

func (r *Registry) add(name string, def Definition) {
	if def == nil {
		def = Definition{}
	}
	r.Register(name, def)
}

// Lookup returns the definition of server.
func (r *Registry) Lookup(server string) (Definition, error) {
	def, ok := r.defs[server]
	if !ok {
		return nil, &setup.UnknownServerError{Name: server}
	}
	return def, nil
}

// Machine looks up server and decodes it into a Machine. An empty name
// field is filled with the registry key.
func (r *Registry) Machine(server string) (*Machine, error) {
	def, err := r.Lookup(server)
	if err != nil {
		return nil, err
	}
	m := &Machine{}
	if err := def.Decode(m); err != nil {
		return nil, fmt.Errorf("server %s: %w", server, err)
	}
	if m.Name == "" {
		m.Name = server
	}
	return m, nil
}

// Names lists the registered servers in document order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
