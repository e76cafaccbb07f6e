package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ordered is a string-keyed map that remembers document order.
type Ordered[V any] struct {
	keys []string
	vals map[string]V
}

func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	o.keys, o.vals = nil, nil
	return eachMember(data, func(key string, raw json.RawMessage) error {
		var val V
		if err := json.Unmarshal(raw, &val); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		o.set(key, val)
		return nil
	})
}

func (o *Ordered[V]) set(key string, val V) {
	if o.vals == nil {
		o.vals = make(map[string]V)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = val
}

// Keys returns the keys in document order. The slice is a copy.
func (o Ordered[V]) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Get returns the value stored under key.
func (o Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.vals[key]
	return v, ok
}

func (o Ordered[V]) Len() int {
	return len(o.keys)
}

// eachMember walks the members of a JSON object in document order.
func eachMember(data []byte, fn func(key string, raw json.RawMessage) error) error {
	if kind := kindOf(data); kind != "object" {
		return fmt.Errorf("expected object, got %s", kind)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}

func kindOf(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "nothing"
	}
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	default:
		return "number"
	}
}

func isNull(data []byte) bool {
	return kindOf(data) == "null"
}

// isEmptyValue reports whether a JSON value counts as empty: null, false,
// zero, "" or an empty array.
func isEmptyValue(data []byte) bool {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	}
	return false
}
