package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/domsift"
	"github.com/fwojciec/domsift/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter(gemini.DefaultModel)
	require.NoError(t, err)

	var _ domsift.TokenCounter = tc

	t.Run("counts tokens in markup", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), `<div role="article">Hello, world!</div>`)

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("reduced output costs fewer tokens", func(t *testing.T) {
		t.Parallel()

		raw := `<html><head><script>var tracking = {a: 1, b: 2, c: 3};</script></head><body><div class="x1a2b3c4d5e6f7a8b9c0" role="article">Post text</div></body></html>`
		reduced := `[{"tag":"div","attrs":{"role":"article"}}]`

		rawCount, err := tc.CountTokens(context.Background(), raw)
		require.NoError(t, err)
		reducedCount, err := tc.CountTokens(context.Background(), reduced)
		require.NoError(t, err)

		assert.Greater(t, rawCount, reducedCount)
	})

	t.Run("honors a canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "text")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-model")

	assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
}
