package goquery

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// ContentPattern describes the tag/attribute/value shape of elements that
// typically hold meaningful content. A pattern matches an element whose tag
// is in Tags and that carries one of Attrs with a value containing one of
// Values or matching one of Patterns.
type ContentPattern struct {
	Tags     []string
	Attrs    []string
	Values   []string
	Patterns []*regexp.Regexp
}

// Match reports whether n matches the pattern.
func (p ContentPattern) Match(n *html.Node) bool {
	if n.Type != html.ElementNode || !slices.Contains(p.Tags, n.Data) {
		return false
	}
	for _, name := range p.Attrs {
		value, ok := attrValue(n, name)
		if !ok {
			continue
		}
		for _, v := range p.Values {
			if strings.Contains(value, v) {
				return true
			}
		}
		for _, re := range p.Patterns {
			if re.MatchString(value) {
				return true
			}
		}
	}
	return false
}

// DefaultPatterns returns the built-in content patterns for social feed markup:
// article/main landmarks, feed units, ad previews, and post permalinks.
func DefaultPatterns() []ContentPattern {
	return []ContentPattern{
		{
			Tags:   []string{"article", "div", "section"},
			Attrs:  []string{"role"},
			Values: []string{"article", "main"},
		},
		{
			Tags:   []string{"div"},
			Attrs:  []string{"data-pagelet"},
			Values: []string{"FeedUnit_"},
		},
		{
			Tags:   []string{"div"},
			Attrs:  []string{"data-ad-preview"},
			Values: []string{"message"},
		},
		{
			Tags:  []string{"a"},
			Attrs: []string{"href"},
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`/posts/`),
				regexp.MustCompile(`/story\.php`),
			},
		},
	}
}

// PatternMatcher matches elements against an ordered list of content patterns.
type PatternMatcher struct {
	patterns []ContentPattern
}

// NewPatternMatcher creates a PatternMatcher for the given patterns.
func NewPatternMatcher(patterns []ContentPattern) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// Match reports whether any pattern matches n.
func (m *PatternMatcher) Match(n *html.Node) bool {
	for _, p := range m.patterns {
		if p.Match(n) {
			return true
		}
	}
	return false
}
