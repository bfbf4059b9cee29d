package goquery

import "golang.org/x/net/html"

// noiseSelector matches elements removed, with their subtrees, before traversal.
const noiseSelector = "script, style, noscript"

// StripNoise removes script, style and noscript subtrees and every comment
// node from the tree in place. It must run before traversal.
func (t *Tree) StripNoise() {
	t.doc.Find(noiseSelector).Remove()

	var comments []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.CommentNode {
				comments = append(comments, c)
				continue
			}
			walk(c)
		}
	}
	for _, root := range t.doc.Nodes {
		walk(root)
	}

	for _, c := range comments {
		c.Parent.RemoveChild(c)
	}
}
