package mapper

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// Record is a destination record: a string-keyed map that remembers the
// order in which keys were first set. JSON and YAML output follow that order.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty Record with room for size keys.
func NewRecord(size int) *Record {
	return &Record{
		keys:   make([]string, 0, size),
		values: make(map[string]any, size),
	}
}

// Set stores value under key. Existing keys keep their position.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}

	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}

	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}

	v, ok := r.values[key]

	return v, ok
}

// Has reports whether key is present, even when its value is nil.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns a copy of the keys in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}

	return slices.Clone(r.keys)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}

	return len(r.keys)
}

// All iterates over key/value pairs in order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}

		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered shallow copy.
func (r *Record) Map() map[string]any {
	if r == nil {
		return nil
	}

	return maps.Clone(r.values)
}

// Equal reports whether both records hold the same keys in the same order
// with deeply equal values.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}

	if !slices.Equal(r.keys, other.keys) {
		return false
	}

	for _, k := range r.keys {
		if !reflect.DeepEqual(r.values[k], other.values[k]) {
			return false
		}
	}

	return true
}

// MarshalJSON writes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML returns the record as an ordered YAML mapping node.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if r == nil {
		return node, nil
	}

	for _, k := range r.keys {
		var val yaml.Node

		err := val.Encode(r.values[k])
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}

	return node, nil
}
