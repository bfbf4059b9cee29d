package domsift

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Selector kinds.
const (
	IDSelector    = "id_selector"
	ClassSelector = "class_selector"
	XPathSelector = "xpath"
)

// AttrSelectorKind returns the selector kind key for a key-attribute selector.
func AttrSelectorKind(attr string) string {
	return attr + "_selector"
}

// Selector is one candidate selector for an element.
type Selector struct {
	Kind  string
	Value string
}

// SelectorSet is the ordered collection of candidate selectors for one element.
// An empty set means the element cannot be addressed.
type SelectorSet []Selector

// Get returns the selector of the given kind.
func (s SelectorSet) Get(kind string) (string, bool) {
	for _, sel := range s {
		if sel.Kind == kind {
			return sel.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the set as an object mapping kind to selector.
func (s SelectorSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sel := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := CompactJSON(sel.Kind)
		if err != nil {
			return nil, err
		}
		val, err := CompactJSON(sel.Value)
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

// UnmarshalJSON decodes an object, keeping key order.
func (s *SelectorSet) UnmarshalJSON(data []byte) error {
	set := SelectorSet{}
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		set = append(set, Selector{Kind: key, Value: value})
		return nil
	})
	if err != nil {
		return err
	}
	*s = set
	return nil
}

// MaxTextPreview is the maximum length of a stored text preview.
const MaxTextPreview = 100

// PreservedElement summarizes one element kept for selector building.
type PreservedElement struct {
	Tag         string      `json:"tag"`
	Attrs       Attrs       `json:"attrs"`
	TextPreview string      `json:"textPreview"`
	Selectors   SelectorSet `json:"selectors"`
	ChildCount  int         `json:"childCount"`
	Depth       int         `json:"depth"`
}

// HasDataAttr reports whether any stored attribute name starts with "data-".
func (e *PreservedElement) HasDataAttr() bool {
	for _, attr := range e.Attrs {
		if strings.HasPrefix(attr.Name, "data-") {
			return true
		}
	}
	return false
}
