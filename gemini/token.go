// Package gemini counts model tokens with the local Gemini tokenizer.
package gemini

import (
	"context"

	"github.com/fwojciec/domsift"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// DefaultModel is the tokenizer model used for report token statistics.
const DefaultModel = "gemini-2.0-flash"

var _ domsift.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens offline, without calling the Gemini API.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, domsift.Errorf(domsift.EINVALID, "unsupported tokenizer model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens in text sent as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
