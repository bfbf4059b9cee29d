package goquery_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/domsift/goquery"
	"github.com/stretchr/testify/assert"
)

func TestPatternMatcher_Match(t *testing.T) {
	t.Parallel()

	matcher := goquery.NewPatternMatcher(goquery.DefaultPatterns())

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"article landmark on div", `<div id="t" role="article"></div>`, true},
		{"main landmark on section", `<section id="t" role="main"></section>`, true},
		{"role value matched by substring", `<article id="t" role="mainframe"></article>`, true},
		{"landmark role on a span is ignored", `<span id="t" role="main"></span>`, false},
		{"feed unit pagelet", `<div id="t" data-pagelet="FeedUnit_42"></div>`, true},
		{"other pagelet", `<div id="t" data-pagelet="RightRail"></div>`, false},
		{"ad preview message", `<div id="t" data-ad-preview="message"></div>`, true},
		{"post permalink", `<a id="t" href="https://www.facebook.com/page/posts/123">x</a>`, true},
		{"story permalink", `<a id="t" href="/story.php?story_fbid=1">x</a>`, true},
		{"story pattern escapes the dot", `<a id="t" href="/storyXphp">x</a>`, false},
		{"image is not a content pattern", `<img id="t" src="/photo.jpg" alt="photo">`, false},
		{"missing attribute", `<div id="t"></div>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := parse(t, tt.input)

			assert.Equal(t, tt.want, matcher.Match(tree.Node("#t")))
		})
	}
}

func TestContentPattern_Match(t *testing.T) {
	t.Parallel()

	t.Run("checks every listed attribute", func(t *testing.T) {
		t.Parallel()

		p := goquery.ContentPattern{
			Tags:   []string{"img"},
			Attrs:  []string{"src", "alt"},
			Values: []string{"banner"},
		}
		tree := parse(t, `<img id="t" src="/a.png" alt="site banner">`)

		assert.True(t, p.Match(tree.Node("#t")))
	})

	t.Run("pattern without values or expressions never matches", func(t *testing.T) {
		t.Parallel()

		p := goquery.ContentPattern{
			Tags:  []string{"button"},
			Attrs: []string{"type"},
		}
		tree := parse(t, `<button id="t" type="submit">Send</button>`)

		assert.False(t, p.Match(tree.Node("#t")))
	})

	t.Run("matches search expressions anywhere in the value", func(t *testing.T) {
		t.Parallel()

		p := goquery.ContentPattern{
			Tags:     []string{"a"},
			Attrs:    []string{"href"},
			Patterns: []*regexp.Regexp{regexp.MustCompile(`/status/\d+`)},
		}
		tree := parse(t, `<a id="t" href="https://x.com/user/status/123">post</a>`)

		assert.True(t, p.Match(tree.Node("#t")))
	})
}
