package goquery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/domsift"
	"golang.org/x/net/html"
)

// ClassFilter reports whether a class token is stable enough to use in a selector.
type ClassFilter func(class string) bool

// hashClassPattern matches tokens made only of lowercase hexadecimal digits.
var hashClassPattern = regexp.MustCompile(`^[a-f0-9]+$`)

// maxClassLength is the exclusive length limit for usable class tokens.
const maxClassLength = 20

// maxSelectorClasses is the number of classes combined into a class selector.
const maxSelectorClasses = 3

// DefaultClassFilter keeps tokens shorter than 20 characters that do not look
// like generated hashes.
func DefaultClassFilter(class string) bool {
	return utf8.RuneCountInString(class) < maxClassLength && !hashClassPattern.MatchString(class)
}

// keyAttrSelectors are attributes rendered as [name="value"] selectors.
var keyAttrSelectors = map[string]bool{
	"role":            true,
	"data-testid":     true,
	"data-ad-preview": true,
}

// Synthesizer builds candidate selectors for an element. Values are inserted
// verbatim; ids and attribute values containing CSS metacharacters produce
// selectors that need escaping before use.
type Synthesizer struct {
	classFilter ClassFilter
}

// NewSynthesizer creates a Synthesizer. A nil filter uses DefaultClassFilter.
func NewSynthesizer(filter ClassFilter) *Synthesizer {
	if filter == nil {
		filter = DefaultClassFilter
	}
	return &Synthesizer{classFilter: filter}
}

// Synthesize returns the selectors for n: id, class, key attributes in
// document order, then a positional path among same-tag siblings.
// The result is empty when n cannot be addressed.
func (s *Synthesizer) Synthesize(t *Tree, n *html.Node) domsift.SelectorSet {
	set := domsift.SelectorSet{}

	if id, ok := attrValue(n, "id"); ok && id != "" {
		set = append(set, domsift.Selector{Kind: domsift.IDSelector, Value: "#" + id})
	}

	if class, ok := attrValue(n, "class"); ok {
		var kept []string
		for _, token := range strings.Fields(class) {
			if s.classFilter(token) {
				kept = append(kept, token)
			}
		}
		if len(kept) > maxSelectorClasses {
			kept = kept[:maxSelectorClasses]
		}
		if len(kept) > 0 {
			set = append(set, domsift.Selector{Kind: domsift.ClassSelector, Value: "." + strings.Join(kept, ".")})
		}
	}

	for _, a := range rawAttrs(n) {
		if !keyAttrSelectors[a.Key] || !domsift.IsUsefulAttr(a.Key, a.Val) {
			continue
		}
		set = append(set, domsift.Selector{
			Kind:  domsift.AttrSelectorKind(a.Key),
			Value: fmt.Sprintf(`[%s="%s"]`, a.Key, a.Val),
		})
	}

	if index, ok := siblingIndex(t, n); ok {
		set = append(set, domsift.Selector{Kind: domsift.XPathSelector, Value: fmt.Sprintf("//%s[%d]", n.Data, index)})
	}

	return set
}

// siblingIndex returns the 1-based position of n among its parent's direct
// element children with the same tag.
func siblingIndex(t *Tree, n *html.Node) (int, bool) {
	parent := t.Parent(n)
	if parent == nil {
		return 0, false
	}
	index := 1
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != n.Data {
			continue
		}
		if c == n {
			return index, true
		}
		index++
	}
	return 0, false
}
