package goquery

import (
	"bytes"

	"github.com/fwojciec/domsift"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sample fragment limits.
const (
	sampleSelectorsLength = 100
	sampleTextLength      = 50
)

// BuildSample renders the preserved elements as a fragment of marker
// elements inside a <div class="preserved-structure"> container. Each marker
// carries the original tag, one data-* attribute per stored attribute, and
// the selector set as JSON truncated to 100 characters (which may leave it
// invalid).
func BuildSample(elements []*domsift.PreservedElement) (string, error) {
	container := newDiv(html.Attribute{Key: "class", Val: "preserved-structure"})

	for _, e := range elements {
		marker := newDiv(html.Attribute{Key: "data-original-tag", Val: e.Tag})

		for _, attr := range e.Attrs {
			value := attr.String()
			if !attr.Multi {
				value = domsift.TruncateRunes(value, domsift.SampleAttrValueLength)
			}
			setAttr(marker, "data-"+attr.Name, value)
		}

		if len(e.Selectors) > 0 {
			b, err := domsift.CompactJSON(e.Selectors)
			if err != nil {
				return "", err
			}
			setAttr(marker, "data-selectors", domsift.TruncateRunes(string(b), sampleSelectorsLength))
		}

		marker.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: e.Tag + ": " + domsift.TruncateRunes(e.TextPreview, sampleTextLength) + "...",
		})
		container.AppendChild(marker)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, container); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func newDiv(attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     attrs,
	}
}

// setAttr sets an attribute, replacing an existing value with the same key.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
