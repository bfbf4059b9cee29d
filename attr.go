package domsift

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// keyAttrs are attribute names always considered useful for selectors.
var keyAttrs = map[string]bool{
	"id":                    true,
	"class":                 true,
	"role":                  true,
	"name":                  true,
	"href":                  true,
	"src":                   true,
	"alt":                   true,
	"title":                 true,
	"aria-label":            true,
	"aria-describedby":      true,
	"aria-labelledby":       true,
	"data-testid":           true,
	"data-ft":               true,
	"data-pagelet":          true,
	"data-ad-preview":       true,
	"data-visualcompletion": true,
	"type":                  true,
	"value":                 true,
	"placeholder":           true,
}

// dynamicAttrPattern matches data-* and aria-* attribute names.
var dynamicAttrPattern = regexp.MustCompile(`^(?:data|aria)-[\w-]+`)

// platformAttrMarkers are substrings that mark Facebook-specific attributes.
var platformAttrMarkers = []string{"fb-", "fb:", "_fb"}

// IsUsefulAttr reports whether an attribute is relevant for building selectors.
// The check is case-sensitive and depends only on the name; value is accepted
// for future value-based rules.
func IsUsefulAttr(name, value string) bool {
	if keyAttrs[name] {
		return true
	}
	if dynamicAttrPattern.MatchString(name) {
		return true
	}
	for _, marker := range platformAttrMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// multiValuedAttrs lists attributes whose value is a whitespace-separated token list.
var multiValuedAttrs = map[string]bool{
	"class":          true,
	"rel":            true,
	"rev":            true,
	"accept-charset": true,
	"headers":        true,
	"accesskey":      true,
	"dropzone":       true,
}

// IsMultiValuedAttr reports whether the attribute holds a token list.
func IsMultiValuedAttr(name string) bool {
	return multiValuedAttrs[name]
}

// Limits applied to stored attribute values.
const (
	MaxAttrTokens         = 3
	MaxAttrValueLength    = 100
	TruncatedAttrLength   = 50
	SampleAttrValueLength = 30
	Ellipsis              = "..."
)

// Attr is a single filtered attribute. Multi-valued attributes carry their
// tokens in Values; scalar attributes carry Value.
type Attr struct {
	Name   string
	Value  string
	Values []string
	Multi  bool
}

// NewAttr builds a stored attribute from a raw name/value pair, splitting
// token lists and applying the storage truncation rules.
func NewAttr(name, raw string) Attr {
	if IsMultiValuedAttr(name) {
		tokens := strings.Fields(raw)
		if len(tokens) > MaxAttrTokens {
			tokens = tokens[:MaxAttrTokens]
		}
		if tokens == nil {
			tokens = []string{}
		}
		return Attr{Name: name, Values: tokens, Multi: true}
	}
	if utf8.RuneCountInString(raw) > MaxAttrValueLength {
		raw = TruncateRunes(raw, TruncatedAttrLength) + Ellipsis
	}
	return Attr{Name: name, Value: raw}
}

// String returns the attribute value as a single string; token lists are
// joined with a space.
func (a Attr) String() string {
	if a.Multi {
		return strings.Join(a.Values, " ")
	}
	return a.Value
}

// Attrs is an ordered attribute mapping. It serializes as a JSON object whose
// keys keep document order.
type Attrs []Attr

// Get returns the attribute with the given name.
func (a Attrs) Get(name string) (Attr, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attr{}, false
}

// Has reports whether an attribute with the given name exists.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// MarshalJSON encodes the attributes as an object in document order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := CompactJSON(attr.Name)
		if err != nil {
			return nil, err
		}
		var val []byte
		if attr.Multi {
			val, err = CompactJSON(attr.Values)
		} else {
			val, err = CompactJSON(attr.Value)
		}
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

// UnmarshalJSON decodes an object, keeping key order. Array values become
// multi-valued attributes.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	attrs := Attrs{}
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '[' {
			var values []string
			if err := json.Unmarshal(raw, &values); err != nil {
				return err
			}
			attrs = append(attrs, Attr{Name: key, Values: values, Multi: true})
			return nil
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		attrs = append(attrs, Attr{Name: key, Value: value})
		return nil
	})
	if err != nil {
		return err
	}
	*a = attrs
	return nil
}

// TruncateRunes returns the first n characters of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// decodeOrderedObject walks a JSON object and calls fn for each member in order.
func decodeOrderedObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Errorf(EINVALID, "expected JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return Errorf(EINVALID, "expected JSON object key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
