package gemini

import (
	"context"

	"github.com/fwojciec/askweb"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ askweb.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures prompts with the model's local tokenizer, so
// counting never calls the API.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model. The vocabulary is
// downloaded on first use and cached. Returns EINVALID for models the
// local tokenizer does not support.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, askweb.Errorf(askweb.EINVALID, "no local tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose tokenizer is used.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens returns the number of tokens text occupies as a user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, askweb.Errorf(askweb.EINTERNAL, "counting tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}
