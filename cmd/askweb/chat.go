package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/askweb"
)

// Run executes the chat command. Each line read from stdin is answered
// independently; an empty line is ignored and "exit" or EOF ends the session.
func (c *ChatCmd) Run(deps *Dependencies) error {
	scanner := bufio.NewScanner(deps.Stdin)
	fmt.Fprintln(deps.Stdout, `Ask a question, or type "exit" to quit.`)

	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		switch question {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		answer, err := deps.Asker.AnswerQuery(deps.Ctx, question)
		if err != nil {
			if deps.Ctx.Err() != nil {
				return deps.Ctx.Err()
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
			continue
		}

		recordAnswer(deps, answer)
		printAnswer(deps.Stdout, answer)
		fmt.Fprintln(deps.Stdout)
	}
}
