// Package htmltomarkdown renders web pages as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/askweb"
)

// Ensure Converter implements askweb.Converter at compile time.
var _ askweb.Converter = (*Converter)(nil)

// noiseSelector matches page chrome that never belongs in the output.
const noiseSelector = "script, style, noscript, nav, header, footer, aside, form, iframe, svg"

// mainSelector matches elements that usually hold a page's main content.
const mainSelector = "main, article, [role=main]"

// Converter strips page chrome and converts what remains to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert renders the page's main content as Markdown. The first main or
// article element is used when present, otherwise the whole body.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", askweb.Errorf(askweb.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", askweb.Errorf(askweb.EEXTRACT, "failed to parse HTML: %v", err)
	}
	doc.Find(noiseSelector).Remove()

	content := doc.Find(mainSelector).First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return "", askweb.Errorf(askweb.EEXTRACT, "failed to render HTML: %v", err)
	}

	result, err := c.conv.ConvertString(fragment)
	if err != nil {
		return "", askweb.Errorf(askweb.EEXTRACT, "failed to convert to markdown: %v", err)
	}

	return strings.TrimSpace(result), nil
}
