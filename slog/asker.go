package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/askweb"
)

// Ensure LoggingAsker implements askweb.Asker.
var _ askweb.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging of each query's outcome.
type LoggingAsker struct {
	next   askweb.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next askweb.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// AnswerQuery delegates to the wrapped asker and logs the outcome.
func (a *LoggingAsker) AnswerQuery(ctx context.Context, question string) (answer *askweb.Answer, err error) {
	defer func(begin time.Time) {
		attrs := []any{"question", question}
		if answer != nil {
			attrs = append(attrs,
				"considered", answer.Considered,
				"sources", len(answer.Sources),
				"failed", len(answer.Failures),
				"empty", len(answer.Empty),
				"matches", len(answer.Matches),
			)
		}
		for _, f := range failures(answer) {
			a.logger.Warn("source skipped", "url", f.URL, "code", askweb.ErrorCode(f.Err), "reason", askweb.ErrorMessage(f.Err))
		}
		a.logger.Info("answer query", append(attrs,
			"duration", time.Since(begin),
			"err", err,
		)...)
	}(time.Now())
	return a.next.AnswerQuery(ctx, question)
}

func failures(a *askweb.Answer) []*askweb.SourceError {
	if a == nil {
		return nil
	}
	return a.Failures
}
