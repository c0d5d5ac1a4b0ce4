package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/askweb"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Clear {
		if err := deps.History.DeleteRecords(deps.Ctx); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "History cleared.")
		return nil
	}

	if c.ID != "" {
		return c.show(deps)
	}

	filter := askweb.HistoryFilter{Limit: c.Limit}
	if c.Match != "" {
		filter.Question = &c.Match
	}

	records, err := deps.History.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No questions recorded yet. Use 'askweb ask' to ask one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s (%d of %d sources)\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Question, len(r.Sources), r.Considered)
	}
	return nil
}

func (c *HistoryCmd) show(deps *Dependencies) error {
	r, err := deps.History.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Question: %s\n", r.Question)
	fmt.Fprintf(deps.Stdout, "Asked:    %s\n\n", r.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintln(deps.Stdout, r.Answer)
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "Sources (%d of %d used):\n", len(r.Sources), r.Considered)
	for i, src := range r.Sources {
		fmt.Fprintf(deps.Stdout, "  [%d] %s\n", i+1, src)
	}
	return nil
}
