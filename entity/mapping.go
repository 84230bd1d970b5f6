package entity

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	keys   []string
	values map[string]any
}

// NewMapping returns an empty Mapping sized for n keys.
func NewMapping(n int) *Mapping {
	return &Mapping{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Collect builds a Mapping from a pair sequence, keeping its order.
func Collect(seq iter.Seq2[string, any]) *Mapping {
	m := NewMapping(0)
	for k, v := range seq {
		m.Set(k, v)
	}

	return m
}

// Set stores v under k. An existing key keeps its position.
func (m *Mapping) Set(k string, v any) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}

	m.values[k] = v
}

// Get returns the value stored under k.
func (m *Mapping) Get(k string) (any, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string { return slices.Clone(m.keys) }

// All iterates key/value pairs in insertion order.
func (m *Mapping) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy.
func (m *Mapping) Map() map[string]any {
	return maps.Clone(m.values)
}

// MarshalJSON encodes the mapping as a JSON object in key order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(m.values[k])
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

// MarshalYAML encodes the mapping as a YAML mapping node in key order.
func (m *Mapping) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}

		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[k]); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, keyNode, valNode)
	}

	return node, nil
}
