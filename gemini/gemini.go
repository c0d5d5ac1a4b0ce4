// Package gemini implements askweb.Embedder and askweb.ChatModel using
// Google Gemini.
package gemini

import (
	"context"
	"errors"

	"github.com/fwojciec/askweb"
	"google.golang.org/genai"
)

// Default model names.
const (
	DefaultChatModel      = "gemini-2.5-flash"
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// NewClient creates a Gemini API client. The client is safe for
// concurrent use and should be shared by every capability built on it.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, askweb.Errorf(askweb.EINVALID, "gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// describe returns a short message for a Gemini API failure.
func describe(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Status
	}
	return err.Error()
}
