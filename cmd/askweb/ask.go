package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/askweb"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.AnswerQuery(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
		return err
	}

	recordAnswer(deps, answer)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	printAnswer(deps.Stdout, answer)
	return nil
}

// recordAnswer saves the answer to history. Failing to record never fails
// the command.
func recordAnswer(deps *Dependencies, answer *askweb.Answer) {
	if deps.History == nil {
		return
	}
	if err := deps.History.CreateRecord(deps.Ctx, askweb.NewQueryRecord(answer)); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: failed to save history: %s\n", askweb.ErrorMessage(err))
	}
}

// printAnswer writes the answer followed by its provenance.
func printAnswer(w io.Writer, answer *askweb.Answer) {
	fmt.Fprintln(w, answer.Text)
	fmt.Fprintln(w)

	if answer.RetrievalErr != nil {
		fmt.Fprintf(w, "Retrieval failed, answered without page content: %s (%s)\n",
			askweb.ErrorMessage(answer.RetrievalErr), askweb.ErrorCode(answer.RetrievalErr))
	}
	if len(answer.Sources) == 0 {
		fmt.Fprintf(w, "No usable sources (0 of %d).\n", answer.Considered)
	} else {
		fmt.Fprintf(w, "Sources (%d of %d used):\n", len(answer.Sources), answer.Considered)
		for i, src := range answer.Sources {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, src)
		}
	}

	if len(answer.Failures) == 0 && len(answer.Empty) == 0 {
		return
	}
	fmt.Fprintln(w, "Skipped:")
	for _, f := range answer.Failures {
		fmt.Fprintf(w, "  %s: %s (%s)\n", f.URL, askweb.ErrorMessage(f.Err), askweb.ErrorCode(f.Err))
	}
	for _, url := range answer.Empty {
		fmt.Fprintf(w, "  %s: no readable content\n", url)
	}
}
