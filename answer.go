package askweb

import (
	"context"
	"encoding/json"
	"fmt"
)

// DefaultTopK is the number of chunks retrieved for synthesis.
const DefaultTopK = 5

// Stage identifies a step of answering a query.
type Stage string

// Query stages in execution order.
const (
	StageSearching    Stage = "searching"
	StageIndexing     Stage = "indexing"
	StageRetrieving   Stage = "retrieving"
	StageSynthesizing Stage = "synthesizing"
	StageDone         Stage = "done"
)

// SourceError records why a search result contributed nothing.
// Err carries EFETCH, EEXTRACT or EEMBED.
type SourceError struct {
	URL string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s", e.URL, ErrorMessage(e.Err))
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// MarshalJSON encodes the failure as its URL, error code and message.
func (e *SourceError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URL     string `json:"url"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		URL:     e.URL,
		Code:    ErrorCode(e.Err),
		Message: ErrorMessage(e.Err),
	})
}

// Answer is the outcome of a successfully synthesized query.
type Answer struct {
	Question string `json:"question"`
	Text     string `json:"text"`

	// Sources lists URLs that contributed chunks, in search order.
	// It is empty when retrieval failed, since no chunk reached the prompt.
	Sources []string `json:"sources"`

	// Matches are the retrieved chunks the answer was synthesized from.
	Matches []Match `json:"matches"`

	// Empty lists URLs that were fetched but yielded no content.
	Empty []string `json:"empty,omitempty"`

	// Failures lists URLs skipped because a stage failed for them.
	Failures []*SourceError `json:"failures,omitempty"`

	// RetrievalErr is set when the indexed chunks could not be ranked
	// against the question. The answer was then written without context.
	RetrievalErr error `json:"-"`

	// Considered is the number of distinct URLs returned by search.
	Considered int `json:"considered"`
}

// MarshalJSON encodes the answer with RetrievalErr as a message.
func (a *Answer) MarshalJSON() ([]byte, error) {
	type answer Answer
	return json.Marshal(struct {
		*answer
		RetrievalError string `json:"retrievalError,omitempty"`
	}{
		answer:         (*answer)(a),
		RetrievalError: ErrorMessage(a.RetrievalErr),
	})
}

// Asker answers natural-language questions from the web.
type Asker interface {
	// AnswerQuery runs one full query cycle.
	// Returns ESEARCH if search fails and EGENERATE if synthesis fails.
	// Per-URL failures are reported in Answer.Failures instead.
	AnswerQuery(ctx context.Context, question string) (*Answer, error)
}

// Synthesizer composes an answer from retrieved chunks.
type Synthesizer interface {
	// Synthesize invokes the chat model once with a prompt built from
	// chunks and question. An empty chunk list is still sent, with an
	// explicit note that no content was found.
	Synthesize(ctx context.Context, chunks []Chunk, question string) (string, error)
}
