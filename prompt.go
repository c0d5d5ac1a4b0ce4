package askweb

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default bounds for the context sent to the chat model.
const (
	DefaultMaxContextChunks = 5
	DefaultMaxContextChars  = 6000
)

// EmptyContextNote replaces the context when no chunks were retrieved.
const EmptyContextNote = "No relevant content was found on the web for this question."

// ContextLimits bounds the context built from retrieved chunks.
// Zero values mean unlimited.
type ContextLimits struct {
	MaxChunks int
	MaxChars  int
}

// BuildContext concatenates chunk texts in the order given, each labelled
// with its index and source URL, stopping at the configured limits.
// The first chunk is truncated rather than dropped if it alone exceeds MaxChars.
func BuildContext(chunks []Chunk, limits ContextLimits) string {
	if len(chunks) == 0 {
		return EmptyContextNote
	}

	var sb strings.Builder
	used := 0
	for i, c := range chunks {
		if limits.MaxChunks > 0 && i == limits.MaxChunks {
			break
		}

		entry := fmt.Sprintf("[%d] %s\n%s", i+1, c.SourceURL, strings.TrimSpace(c.Text))
		if i > 0 {
			entry = "\n\n" + entry
		}

		n := utf8.RuneCountInString(entry)
		if limits.MaxChars > 0 && used+n > limits.MaxChars {
			if i > 0 {
				break
			}
			entry = string([]rune(entry)[:limits.MaxChars])
			n = limits.MaxChars
		}

		sb.WriteString(entry)
		used += n
	}
	return sb.String()
}

// BuildPrompt embeds the context built from chunks and the question into
// the fixed answer template.
func BuildPrompt(chunks []Chunk, question string, limits ContextLimits) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	sb.WriteString(BuildContext(chunks, limits))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	sb.WriteString("Answer: Let me analyze this information and answer your question.")
	return sb.String()
}
