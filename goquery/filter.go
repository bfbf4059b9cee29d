package goquery

import (
	"unicode/utf8"

	"github.com/fwojciec/domsift"
	"golang.org/x/net/html"
)

// Significant text bounds (exclusive) for elements preserved on text alone.
const (
	minSignificantText = 10
	maxSignificantText = 500
)

// Filter decides which elements are preserved and builds their records.
type Filter struct {
	matcher     *PatternMatcher
	synthesizer *Synthesizer
}

// NewFilter creates a Filter.
func NewFilter(matcher *PatternMatcher, synthesizer *Synthesizer) *Filter {
	return &Filter{matcher: matcher, synthesizer: synthesizer}
}

// Collect traverses the tree in document order and returns the preserved
// elements. The tree should already be stripped of noise.
func (f *Filter) Collect(t *Tree) []*domsift.PreservedElement {
	var elements []*domsift.PreservedElement
	for _, n := range t.Elements() {
		if e, ok := f.Preserve(t, n); ok {
			elements = append(elements, e)
		}
	}
	return elements
}

// Preserve returns the record for n when n matches a content pattern, carries
// a useful attribute, or holds significant text, and a selector can be
// synthesized for it.
func (f *Filter) Preserve(t *Tree, n *html.Node) (*domsift.PreservedElement, bool) {
	attrs := UsefulAttrs(n)
	text := Text(n)
	textLen := utf8.RuneCountInString(text)

	significant := textLen > minSignificantText && textLen < maxSignificantText
	if !f.matcher.Match(n) && len(attrs) == 0 && !significant {
		return nil, false
	}

	selectors := f.synthesizer.Synthesize(t, n)
	if len(selectors) == 0 {
		return nil, false
	}

	return &domsift.PreservedElement{
		Tag:         n.Data,
		Attrs:       attrs,
		TextPreview: domsift.TruncateRunes(text, domsift.MaxTextPreview),
		Selectors:   selectors,
		ChildCount:  t.ChildCount(n),
		Depth:       t.Depth(n),
	}, true
}

// UsefulAttrs returns the selector-relevant attributes of n in document order,
// with stored values truncated.
func UsefulAttrs(n *html.Node) domsift.Attrs {
	attrs := domsift.Attrs{}
	for _, a := range rawAttrs(n) {
		if domsift.IsUsefulAttr(a.Key, a.Val) {
			attrs = append(attrs, domsift.NewAttr(a.Key, a.Val))
		}
	}
	return attrs
}
