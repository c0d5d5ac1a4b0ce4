package ollama

import (
	"context"

	"github.com/fwojciec/askweb"
)

// Ensure ChatModel implements askweb.ChatModel at compile time.
var _ askweb.ChatModel = (*ChatModel)(nil)

// ChatModel generates text with the /api/generate endpoint.
type ChatModel struct {
	client *Client
	model  string
}

// NewChatModel creates a ChatModel. An empty model selects
// DefaultChatModel.
func NewChatModel(client *Client, model string) *ChatModel {
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatModel{client: client, model: model}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float32 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate returns the completion of prompt.
// Returns EGENERATE if the server fails or the reply is empty.
func (m *ChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Model:   m.model,
		Prompt:  prompt,
		Options: generateOptions{Temperature: 0.4},
	}

	var resp generateResponse
	if err := m.client.post(ctx, "/api/generate", req, &resp); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", askweb.Errorf(askweb.EGENERATE, "%v", err)
	}
	if resp.Response == "" {
		return "", askweb.Errorf(askweb.EGENERATE, "ollama returned an empty reply")
	}
	return resp.Response, nil
}
