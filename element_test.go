package domsift_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/domsift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorSet(t *testing.T) {
	t.Parallel()

	set := domsift.SelectorSet{
		{Kind: domsift.IDSelector, Value: "#x"},
		{Kind: domsift.ClassSelector, Value: ".btn.primary"},
		{Kind: domsift.AttrSelectorKind("role"), Value: `[role="button"]`},
		{Kind: domsift.XPathSelector, Value: "//div[1]"},
	}

	t.Run("looks up selectors by kind", func(t *testing.T) {
		t.Parallel()

		v, ok := set.Get("role_selector")
		assert.True(t, ok)
		assert.Equal(t, `[role="button"]`, v)

		_, ok = set.Get("data-testid_selector")
		assert.False(t, ok)
	})

	t.Run("round trips through json keeping order", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(set)
		require.NoError(t, err)
		assert.Equal(t, `{"id_selector":"#x","class_selector":".btn.primary","role_selector":"[role=\"button\"]","xpath":"//div[1]"}`, string(b))

		var decoded domsift.SelectorSet
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.Equal(t, set, decoded)
	})
}

func TestPreservedElement_HasDataAttr(t *testing.T) {
	t.Parallel()

	assert.True(t, (&domsift.PreservedElement{Attrs: domsift.Attrs{domsift.NewAttr("data-ft", "{}")}}).HasDataAttr())
	assert.False(t, (&domsift.PreservedElement{Attrs: domsift.Attrs{domsift.NewAttr("aria-label", "x")}}).HasDataAttr())
}
