package sitedef

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MergeMeta concatenates the dynamic sequence with the static one. Dynamic
// entries come first so that static entries can override shared HID slots.
// The result never aliases either input.
func MergeMeta(dynamic, static []MetaEntry) []MetaEntry {
	out := make([]MetaEntry, 0, len(dynamic)+len(static))
	out = append(out, dynamic...)
	return append(out, static...)
}

type slotted interface {
	slot() string
}

// resolve is an ordered upsert keyed by slot. A repeated slot keeps the
// position of its first occurrence and takes the value of its last one.
// Unslotted entries are appended.
func resolve[T slotted](entries []T) []T {
	out := make([]T, 0, len(entries))
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		key := e.slot()
		if key == "" {
			out = append(out, e)
			continue
		}
		if i, ok := index[key]; ok {
			out[i] = e
			continue
		}
		index[key] = len(out)
		out = append(out, e)
	}
	return out
}

// ResolveMeta applies last-wins-per-HID to a merged meta sequence.
func ResolveMeta(entries []MetaEntry) []MetaEntry {
	return resolve(entries)
}

// ResolveLinks applies last-wins-per-HID to a link list.
func ResolveLinks(links []LinkEntry) []LinkEntry {
	return resolve(links)
}

func (e MetaEntry) attrs() map[string]string {
	m := make(map[string]string, 3)
	if e.HID != "" {
		m["hid"] = e.HID
	}
	switch e.Kind {
	case KindCharset:
		m["charset"] = e.Value
		return m
	case KindProperty:
		m["property"] = e.Key
	default:
		m["name"] = e.Key
	}
	m["content"] = e.Value
	return m
}

func metaFromAttrs(m map[string]string) (MetaEntry, error) {
	e := MetaEntry{HID: m["hid"]}
	if v, ok := m["charset"]; ok {
		e.Kind = KindCharset
		e.Value = v
		return e, nil
	}
	if v, ok := m["property"]; ok {
		e.Kind, e.Key = KindProperty, v
	} else if v, ok := m["name"]; ok {
		e.Kind, e.Key = KindName, v
	} else {
		return MetaEntry{}, fmt.Errorf("meta entry needs one of name, property or charset")
	}
	e.Value = m["content"]
	return e, nil
}

// MarshalJSON writes the entry in head-tag shape, e.g.
// {"hid":"description","name":"description","content":"..."}.
func (e MetaEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.attrs())
}

// UnmarshalJSON reads the head-tag shape written by MarshalJSON.
func (e *MetaEntry) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	v, err := metaFromAttrs(m)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// MarshalYAML writes the entry in head-tag shape.
func (e MetaEntry) MarshalYAML() (interface{}, error) {
	return e.attrs(), nil
}

// UnmarshalYAML reads the head-tag shape.
func (e *MetaEntry) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]string
	if err := node.Decode(&m); err != nil {
		return err
	}
	v, err := metaFromAttrs(m)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*e = v
	return nil
}
