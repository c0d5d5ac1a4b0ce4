package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/askweb"
	main "github.com/fwojciec/askweb/cmd/askweb"
	"github.com/fwojciec/askweb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("answers each line until exit", func(t *testing.T) {
		t.Parallel()

		var asked []string
		asker := &mock.Asker{
			AnswerQueryFn: func(_ context.Context, question string) (*askweb.Answer, error) {
				asked = append(asked, question)
				return &askweb.Answer{Question: question, Text: "answer to " + question, Sources: []string{"https://a.example"}, Considered: 1}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  strings.NewReader("first\n\n  second  \nexit\nignored\n"),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Asker:  asker,
		}

		require.NoError(t, (&main.ChatCmd{}).Run(deps))

		assert.Equal(t, []string{"first", "second"}, asked)
		assert.Contains(t, stdout.String(), "answer to first")
		assert.Contains(t, stdout.String(), "answer to second")
	})

	t.Run("ends at end of input", func(t *testing.T) {
		t.Parallel()

		calls := 0
		asker := &mock.Asker{
			AnswerQueryFn: func(_ context.Context, question string) (*askweb.Answer, error) {
				calls++
				return &askweb.Answer{Question: question}, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  strings.NewReader("only question"),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Asker:  asker,
		}

		require.NoError(t, (&main.ChatCmd{}).Run(deps))
		assert.Equal(t, 1, calls)
	})

	t.Run("continues after a failed question", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AnswerQueryFn: func(_ context.Context, question string) (*askweb.Answer, error) {
				if question == "bad" {
					return nil, askweb.Errorf(askweb.EGENERATE, "model overloaded")
				}
				return &askweb.Answer{Question: question, Text: "fine"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdin:  strings.NewReader("bad\ngood\n"),
			Stdout: stdout,
			Stderr: stderr,
			Asker:  asker,
		}

		require.NoError(t, (&main.ChatCmd{}).Run(deps))
		assert.Contains(t, stderr.String(), "error: model overloaded")
		assert.Contains(t, stdout.String(), "fine")
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		asker := &mock.Asker{
			AnswerQueryFn: func(ctx context.Context, _ string) (*askweb.Answer, error) {
				cancel()
				return nil, ctx.Err()
			},
		}

		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdin:  strings.NewReader("one\ntwo\n"),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Asker:  asker,
		}

		err := (&main.ChatCmd{}).Run(deps)
		require.ErrorIs(t, err, context.Canceled)
	})
}
