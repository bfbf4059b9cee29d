// Package goquery implements the reduction engine on top of goquery and
// golang.org/x/net/html: noise stripping, content-pattern matching, selector
// synthesis, element filtering and sample fragment rendering.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/domsift"
	"golang.org/x/net/html"
)

// wrapperTags are the elements the HTML5 parser inserts when the source omits them.
// A parser-inserted tbody is kept as a regular element since browsers insert
// it too, so selectors through it match the live DOM.
var wrapperTags = []string{"html", "head", "body"}

// Tree is a parsed document. Wrapper elements (html, head, body) that the
// parser synthesized but the source never contained are marked implied:
// they are traversed through but never preserved, never count as parents,
// and do not add to depth.
type Tree struct {
	doc     *goquery.Document
	implied map[*html.Node]bool
}

// ParseTree parses an HTML document.
func ParseTree(input string) (*Tree, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, domsift.Errorf(domsift.EPROCESSING, "failed to parse HTML: %v", err)
	}

	explicit := explicitWrappers(input)
	implied := make(map[*html.Node]bool)
	for _, tag := range wrapperTags {
		if explicit[tag] {
			continue
		}
		for _, n := range doc.Find(tag).Nodes {
			implied[n] = true
		}
	}

	return &Tree{doc: doc, implied: implied}, nil
}

// explicitWrappers reports which wrapper tags appear as start tags in the source.
func explicitWrappers(input string) map[string]bool {
	found := make(map[string]bool)
	z := html.NewTokenizer(strings.NewReader(input))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return found
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, _ := z.TagName()
		switch tag := string(name); tag {
		case "html", "head", "body":
			found[tag] = true
		}
	}
}

// Document returns the underlying goquery document.
func (t *Tree) Document() *goquery.Document {
	return t.doc
}

// Node returns the first element matching the CSS selector, or nil.
func (t *Tree) Node(selector string) *html.Node {
	return t.doc.Find(selector).Get(0)
}

// Implied reports whether n is a wrapper element synthesized by the parser.
func (t *Tree) Implied(n *html.Node) bool {
	return t.implied[n]
}

// Elements returns every non-implied element in document order (depth-first, pre-order).
func (t *Tree) Elements() []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && !t.implied[c] {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	for _, root := range t.doc.Nodes {
		walk(root)
	}
	return nodes
}

// Parent returns the parent element of n, or nil when n sits directly under
// the document or under an implied wrapper.
func (t *Tree) Parent(n *html.Node) *html.Node {
	p := n.Parent
	if p == nil || p.Type != html.ElementNode || t.implied[p] {
		return nil
	}
	return p
}

// Depth returns the number of non-implied ancestor elements of n.
func (t *Tree) Depth(n *html.Node) int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && !t.implied[p] {
			depth++
		}
	}
	return depth
}

// ChildCount returns the number of direct, non-implied element children of n.
func (t *Tree) ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !t.implied[c] {
			count++
		}
	}
	return count
}

// Text returns the descendant text of n with each text node trimmed and
// empty pieces dropped, concatenated in document order.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(strings.TrimSpace(c.Data))
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// attrKey returns the attribute's name including its namespace prefix.
func attrKey(a html.Attribute) string {
	if a.Namespace != "" {
		return a.Namespace + ":" + a.Key
	}
	return a.Key
}

// rawAttrs returns the attributes of n in document order; duplicate names keep
// their first value.
func rawAttrs(n *html.Node) []html.Attribute {
	attrs := make([]html.Attribute, 0, len(n.Attr))
	seen := make(map[string]bool, len(n.Attr))
	for _, a := range n.Attr {
		key := attrKey(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		attrs = append(attrs, html.Attribute{Key: key, Val: a.Val})
	}
	return attrs
}

// attrValue returns the raw value of the named attribute.
func attrValue(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if attrKey(a) == name {
			return a.Val, true
		}
	}
	return "", false
}
