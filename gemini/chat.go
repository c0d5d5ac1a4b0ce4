package gemini

import (
	"context"

	"github.com/fwojciec/askweb"
	"google.golang.org/genai"
)

// Ensure ChatModel implements askweb.ChatModel at compile time.
var _ askweb.ChatModel = (*ChatModel)(nil)

// ChatModel implements askweb.ChatModel using Gemini text generation.
type ChatModel struct {
	client *genai.Client
	model  string
}

// NewChatModel creates a ChatModel for the given model name.
// An empty model selects DefaultChatModel.
func NewChatModel(client *genai.Client, model string) *ChatModel {
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatModel{client: client, model: model}
}

// Generate sends prompt as a single user turn and returns the reply text.
// Returns EGENERATE if the API call fails or the reply is empty.
func (m *ChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := m.client.Models.GenerateContent(ctx, m.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", askweb.Errorf(askweb.EGENERATE, "gemini generation failed: %s", describe(err))
	}
	if result == nil {
		return "", askweb.Errorf(askweb.EGENERATE, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", askweb.Errorf(askweb.EGENERATE, "gemini returned an empty reply")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions from web pages. Answer based only on the context provided. If the context does not contain the answer, say so.",
			}},
		},
		Temperature: &temp,
	}
}
