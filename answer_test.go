package askweb_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/askweb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("includes failures with code and message", func(t *testing.T) {
		t.Parallel()

		answer := &askweb.Answer{
			Question:   "What is jet fuel?",
			Text:       "Kerosene.",
			Sources:    []string{"https://a.example"},
			Matches:    []askweb.Match{},
			Considered: 2,
			Failures: []*askweb.SourceError{
				{URL: "https://b.example", Err: askweb.Errorf(askweb.EFETCH, "HTTP 500 for https://b.example")},
			},
		}

		data, err := json.Marshal(answer)
		require.NoError(t, err)

		var got struct {
			Sources  []string `json:"sources"`
			Failures []struct {
				URL     string `json:"url"`
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"failures"`
			RetrievalError *string `json:"retrievalError"`
		}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, []string{"https://a.example"}, got.Sources)
		require.Len(t, got.Failures, 1)
		assert.Equal(t, "https://b.example", got.Failures[0].URL)
		assert.Equal(t, askweb.EFETCH, got.Failures[0].Code)
		assert.Equal(t, "HTTP 500 for https://b.example", got.Failures[0].Message)
		assert.Nil(t, got.RetrievalError)
	})

	t.Run("includes the retrieval error message", func(t *testing.T) {
		t.Parallel()

		answer := &askweb.Answer{
			Question:     "What is jet fuel?",
			Text:         "I don't know.",
			Sources:      []string{},
			Matches:      []askweb.Match{},
			Considered:   1,
			RetrievalErr: askweb.Errorf(askweb.EEMBED, "quota exceeded"),
		}

		data, err := json.Marshal(answer)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "quota exceeded", got["retrievalError"])
		assert.Equal(t, "I don't know.", got["text"])
		assert.NotContains(t, got, "failures")
		assert.NotContains(t, got, "RetrievalErr")
	})
}
