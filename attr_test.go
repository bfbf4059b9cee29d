package domsift_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/domsift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUsefulAttr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr string
		want bool
	}{
		{"id is a key attribute", "id", true},
		{"class is a key attribute", "class", true},
		{"placeholder is a key attribute", "placeholder", true},
		{"data-visualcompletion is a key attribute", "data-visualcompletion", true},
		{"arbitrary data attribute", "data-foo-bar", true},
		{"arbitrary aria attribute", "aria-hidden", true},
		{"bare data prefix is not useful", "data-", false},
		{"facebook namespace attribute", "fb:like", true},
		{"facebook hyphen marker", "x-fb-id", true},
		{"facebook underscore marker", "ajax_fb", true},
		{"style is not useful", "style", false},
		{"onclick is not useful", "onclick", false},
		{"match is case-sensitive", "ID", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domsift.IsUsefulAttr(tt.attr, "value"))
		})
	}
}

func TestNewAttr(t *testing.T) {
	t.Parallel()

	t.Run("splits class into at most three tokens", func(t *testing.T) {
		t.Parallel()

		attr := domsift.NewAttr("class", "  one two\tthree four ")

		assert.True(t, attr.Multi)
		assert.Equal(t, []string{"one", "two", "three"}, attr.Values)
		assert.Equal(t, "one two three", attr.String())
	})

	t.Run("empty class becomes an empty token list", func(t *testing.T) {
		t.Parallel()

		attr := domsift.NewAttr("class", "")

		assert.True(t, attr.Multi)
		assert.Empty(t, attr.Values)
	})

	t.Run("keeps scalar values up to one hundred characters", func(t *testing.T) {
		t.Parallel()

		value := strings.Repeat("x", 100)
		attr := domsift.NewAttr("href", value)

		assert.False(t, attr.Multi)
		assert.Equal(t, value, attr.Value)
	})

	t.Run("truncates long scalar values to fifty characters plus ellipsis", func(t *testing.T) {
		t.Parallel()

		attr := domsift.NewAttr("href", strings.Repeat("y", 101))

		assert.Equal(t, strings.Repeat("y", 50)+"...", attr.Value)
	})

	t.Run("counts characters rather than bytes", func(t *testing.T) {
		t.Parallel()

		value := strings.Repeat("é", 100)
		attr := domsift.NewAttr("title", value)

		assert.Equal(t, value, attr.Value)
	})
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", domsift.TruncateRunes("héllo", 4))
	assert.Equal(t, "héllo", domsift.TruncateRunes("héllo", 10))
	assert.Equal(t, "", domsift.TruncateRunes("héllo", 0))
}

func TestAttrs_JSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes attributes in document order", func(t *testing.T) {
		t.Parallel()

		attrs := domsift.Attrs{
			domsift.NewAttr("role", "button"),
			domsift.NewAttr("id", "x"),
			domsift.NewAttr("class", "btn primary"),
		}

		b, err := json.Marshal(attrs)

		require.NoError(t, err)
		assert.Equal(t, `{"role":"button","id":"x","class":["btn","primary"]}`, string(b))
	})

	t.Run("decodes back preserving order and list values", func(t *testing.T) {
		t.Parallel()

		var attrs domsift.Attrs
		err := json.Unmarshal([]byte(`{"role":"button","class":["a","b"]}`), &attrs)

		require.NoError(t, err)
		require.Len(t, attrs, 2)
		assert.Equal(t, "role", attrs[0].Name)
		assert.Equal(t, "button", attrs[0].Value)
		assert.True(t, attrs[1].Multi)
		assert.Equal(t, []string{"a", "b"}, attrs[1].Values)
	})

	t.Run("empty attributes encode as an empty object", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(domsift.Attrs{})

		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	})
}
