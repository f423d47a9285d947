package eonvm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrMalformedVkMap = errors.New("malformed verifying key map")

type VkEntry struct {
	Function string
	Vk       *Vk
}

// VkMap maps function names to verifying keys. It keeps insertion order and
// serializes as a JSON object of hex encoded keys in that order.
type VkMap struct {
	entries []VkEntry
}

func (m *VkMap) Set(function string, vk *Vk) {
	for i := range m.entries {
		if m.entries[i].Function == function {
			m.entries[i].Vk = vk
			return
		}
	}
	m.entries = append(m.entries, VkEntry{Function: function, Vk: vk})
}

func (m *VkMap) Get(function string) (*Vk, bool) {
	for _, e := range m.entries {
		if e.Function == function {
			return e.Vk, true
		}
	}
	return nil, false
}

func (m *VkMap) Entries() []VkEntry {
	return slices.Clone(m.entries)
}

func (m *VkMap) Len() int { return len(m.entries) }

func (m *VkMap) Sort() {
	slices.SortFunc(m.entries, func(a, b VkEntry) int { return strings.Compare(a.Function, b.Function) })
}

func (m *VkMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(e.Function)
		if err != nil {
			return nil, err
		}
		key, err := e.Vk.MarshalText()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteByte('"')
		buf.Write(key)
		buf.WriteByte('"')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *VkMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return fmt.Errorf("%w: expected object", ErrMalformedVkMap)
	}
	var entries []VkEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedVkMap, err)
		}
		name := tok.(string)
		var hexkey string
		if err := dec.Decode(&hexkey); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedVkMap, name, err)
		}
		if slices.ContainsFunc(entries, func(e VkEntry) bool { return e.Function == name }) {
			return fmt.Errorf("%w: duplicate function %s", ErrMalformedVkMap, name)
		}
		vk := new(Vk)
		if err := vk.UnmarshalText([]byte(hexkey)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedVkMap, name, err)
		}
		entries = append(entries, VkEntry{Function: name, Vk: vk})
	}
	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return fmt.Errorf("%w: unterminated object", ErrMalformedVkMap)
	}
	m.entries = entries
	return nil
}
