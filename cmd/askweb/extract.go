package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/askweb"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
		return err
	}

	if c.Markdown {
		md, err := deps.Converter.Convert(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	doc, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", askweb.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	if doc.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", doc.Title)
	}
	if len(doc.Headings) > 0 {
		fmt.Fprintln(deps.Stdout, "Headings:")
		for _, h := range doc.Headings {
			fmt.Fprintf(deps.Stdout, "  - %s\n", h)
		}
		fmt.Fprintln(deps.Stdout)
	}
	if doc.IsEmpty() {
		fmt.Fprintln(deps.Stderr, "No readable content found.")
		return nil
	}
	for _, p := range doc.Paragraphs {
		fmt.Fprintf(deps.Stdout, "%s\n\n", p)
	}
	return nil
}
