package domsift_test

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/domsift"
	"github.com/fwojciec/domsift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountReportTokens(t *testing.T) {
	t.Parallel()

	t.Run("counts input and preserved serialization", func(t *testing.T) {
		t.Parallel()

		var texts []string
		counter := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				texts = append(texts, text)
				return utf8.RuneCountInString(text), nil
			},
		}
		report := &domsift.Report{PreservedElements: []*domsift.PreservedElement{}}

		err := domsift.CountReportTokens(context.Background(), counter, "<div>hello</div>", report)

		require.NoError(t, err)
		assert.Equal(t, []string{"<div>hello</div>", "[]"}, texts)
		assert.Equal(t, &domsift.TokenStats{Original: 16, Preserved: 2}, report.Tokens)
	})

	t.Run("counter failures are processing errors", func(t *testing.T) {
		t.Parallel()

		counter := &mock.TokenCounter{
			CountTokensFn: func(context.Context, string) (int, error) {
				return 0, errors.New("tokenizer unavailable")
			},
		}
		report := &domsift.Report{}

		err := domsift.CountReportTokens(context.Background(), counter, "x", report)

		assert.Equal(t, domsift.EPROCESSING, domsift.ErrorCode(err))
		assert.Nil(t, report.Tokens)
	})
}
