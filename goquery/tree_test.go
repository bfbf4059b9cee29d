package goquery_test

import (
	"testing"

	"github.com/fwojciec/domsift/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *goquery.Tree {
	t.Helper()
	tree, err := goquery.ParseTree(input)
	require.NoError(t, err)
	return tree
}

func tags(tree *goquery.Tree) []string {
	var out []string
	for _, n := range tree.Elements() {
		out = append(out, n.Data)
	}
	return out
}

func TestTree_Elements(t *testing.T) {
	t.Parallel()

	t.Run("skips wrappers the parser inserted for a fragment", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<div id="a"><p>one</p><p>two</p></div><span>three</span>`)

		assert.Equal(t, []string{"div", "p", "p", "span"}, tags(tree))
	})

	t.Run("keeps wrappers present in the source", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<html><head><title>T</title></head><body><main>x</main></body></html>`)

		assert.Equal(t, []string{"html", "head", "title", "body", "main"}, tags(tree))
	})

	t.Run("treats a lone body tag as explicit", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<body class="page"><div>x</div></body>`)

		assert.Equal(t, []string{"body", "div"}, tags(tree))
		assert.True(t, tree.Implied(tree.Node("html")))
		assert.False(t, tree.Implied(tree.Node("body")))
	})

	t.Run("keeps a tbody the parser inserted into a table", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<table id="t"><tr><td>cell</td></tr></table>`)

		assert.Equal(t, []string{"table", "tbody", "tr", "td"}, tags(tree))
		assert.False(t, tree.Implied(tree.Node("tbody")))
		assert.Equal(t, tree.Node("tbody"), tree.Parent(tree.Node("tr")))
		assert.Equal(t, 3, tree.Depth(tree.Node("td")))
	})

	t.Run("ignores wrapper names inside comments", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<!-- <body> --><div>x</div>`)

		assert.True(t, tree.Implied(tree.Node("body")))
	})
}

func TestTree_Navigation(t *testing.T) {
	t.Parallel()

	t.Run("top-level fragment elements have no parent and zero depth", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<div id="a"><p id="b">x</p></div>`)
		div := tree.Node("#a")

		assert.Nil(t, tree.Parent(div))
		assert.Equal(t, 0, tree.Depth(div))
		assert.Equal(t, 1, tree.Depth(tree.Node("#b")))
	})

	t.Run("depth counts explicit wrappers", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<html><body><div id="a">x</div></body></html>`)

		assert.Equal(t, 2, tree.Depth(tree.Node("#a")))
		assert.Equal(t, tree.Node("body"), tree.Parent(tree.Node("#a")))
	})

	t.Run("child count includes only direct element children", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<ul id="l">text<li>a<b>b</b></li><!--c--><li>c</li></ul>`)

		assert.Equal(t, 2, tree.ChildCount(tree.Node("#l")))
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	tree := parse(t, `<div id="a">  Hello <b> big </b>
		world  </div>`)

	assert.Equal(t, "Hellobigworld", goquery.Text(tree.Node("#a")))
}

func TestTree_StripNoise(t *testing.T) {
	t.Parallel()

	t.Run("removes script, style, noscript and comments", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<!--top--><div id="a"><script>var x = 1;</script><style>.x{}</style>`+
			`<noscript><p>enable js</p></noscript><!-- inner -->visible text</div>`)

		tree.StripNoise()

		html, err := tree.Document().Html()
		require.NoError(t, err)
		assert.NotContains(t, html, "var x")
		assert.NotContains(t, html, ".x{}")
		assert.NotContains(t, html, "enable js")
		assert.NotContains(t, html, "top")
		assert.NotContains(t, html, "inner")
		assert.Equal(t, "visible text", goquery.Text(tree.Node("#a")))
		assert.Equal(t, []string{"div"}, tags(tree))
	})

	t.Run("removes nested noise subtrees", func(t *testing.T) {
		t.Parallel()

		tree := parse(t, `<section id="s"><div><style>a{}</style><script>1</script></div></section>`)

		tree.StripNoise()

		assert.Equal(t, []string{"section", "div"}, tags(tree))
	})
}
