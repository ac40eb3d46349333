package dto

import (
	"bytes"
	"encoding/json"
)

// Placeholder is one key/value pair of a PlaceholderMap.
type Placeholder struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PlaceholderMap is an ordered, read-only mapping from placeholder key to value.
type PlaceholderMap struct {
	entries []Placeholder
	index   map[string]int
}

// NewPlaceholderMap copies entries into a new map. Later duplicates overwrite
// the value of the first occurrence but keep its position.
func NewPlaceholderMap(entries ...Placeholder) PlaceholderMap {
	m := PlaceholderMap{
		entries: make([]Placeholder, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if i, ok := m.index[e.Key]; ok {
			m.entries[i].Value = e.Value
			continue
		}
		m.index[e.Key] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return m
}

func (m PlaceholderMap) Len() int { return len(m.entries) }

func (m PlaceholderMap) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.entries[i].Value, true
}

func (m PlaceholderMap) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the pairs in insertion order.
func (m PlaceholderMap) Entries() []Placeholder {
	out := make([]Placeholder, len(m.entries))
	copy(out, m.entries)
	return out
}

// MarshalJSON encodes the map as a JSON object preserving key order.
func (m PlaceholderMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
