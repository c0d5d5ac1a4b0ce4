package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/askweb"
	"github.com/fwojciec/askweb/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements askweb.Extractor at compile time.
var _ askweb.Extractor = (*goquery.Extractor)(nil)

const longText = "Jet fuel is a type of aviation fuel designed for use in gas-turbine engines."

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, headings and main paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>  Jet   Fuel
 Explained </title></head>
<body>
<header><h1>Site Banner Heading</h1></header>
<nav><h2>Menu</h2><p>Home About Contact and a lot of other navigation links here.</p></nav>
<main>
<h1>Jet Fuel</h1>
<h2>  </h2>
<p>` + longText + `</p>
<p>Too short.</p>
<h3>Composition</h3>
<p>It is   mostly
 kerosene, refined to strict standards for freezing point and flash point.</p>
</main>
<aside><p>Sidebar text that is long enough to be a paragraph if it were not noise.</p></aside>
<footer><p>Copyright notice that is long enough to be a paragraph if it were not noise.</p></footer>
</body>
</html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Jet Fuel Explained", doc.Title)
		assert.Equal(t, []string{"Jet Fuel", "Composition"}, doc.Headings)
		assert.Equal(t, []string{
			longText,
			"It is mostly kerosene, refined to strict standards for freezing point and flash point.",
		}, doc.Paragraphs)
	})

	t.Run("returns empty document for noise-only HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script>var title = "<h1>Not a heading</h1>";</script>
<style>p { color: red; }</style>
<nav><h1>Navigation Heading</h1><p>` + longText + `</p></nav>
<header><h2>Header Heading</h2><p>` + longText + `</p></header>
<footer><h3>Footer Heading</h3><p>` + longText + `</p></footer>
<aside><p>` + longText + `</p></aside>
</body></html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Empty(t, doc.Title)
		assert.Empty(t, doc.Headings)
		assert.Empty(t, doc.Paragraphs)
		assert.True(t, doc.IsEmpty())
	})

	t.Run("removes ARIA navigation and complementary regions", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div role="navigation"><h2>Links</h2><p>` + longText + ` (nav)</p></div>
<div role="complementary"><p>` + longText + ` (related)</p></div>
<p>` + longText + `</p>
</body></html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Empty(t, doc.Headings)
		assert.Equal(t, []string{longText}, doc.Paragraphs)
	})

	t.Run("prefers main over article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><p>` + longText + ` (article)</p></article>
<main><p>` + longText + ` (main)</p></main>
</body></html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{longText + " (main)"}, doc.Paragraphs)
	})

	t.Run("uses article when there is no main", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="content"><p>` + longText + ` (content)</p></div>
<article><p>` + longText + ` (article)</p></article>
<p>` + longText + ` (outside)</p>
</body></html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{longText + " (article)"}, doc.Paragraphs)
	})

	t.Run("uses content container when there is no main or article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="wrapper content"><p>` + longText + ` (content)</p></div>
<p>` + longText + ` (outside)</p>
</body></html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{longText + " (content)"}, doc.Paragraphs)
	})

	t.Run("falls back to whole document", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div><p>` + longText + ` (one)</p></div>
<section><p>` + longText + ` (two)</p></section>
</body></html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{longText + " (one)", longText + " (two)"}, doc.Paragraphs)
	})

	t.Run("reads headings from the whole document", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Outside Main</h1>
<main><h2>Inside Main</h2><h4>Too Deep</h4></main>
<h3>After Main</h3>
</body></html>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"Outside Main", "Inside Main", "After Main"}, doc.Headings)
	})

	t.Run("excludes paragraph of exactly the minimum length", func(t *testing.T) {
		t.Parallel()

		exact := strings.Repeat("a", 50)
		longer := strings.Repeat("b", 51)
		html := "<p>" + exact + "</p><p>  " + longer + "  </p>"

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{longer}, doc.Paragraphs)
	})

	t.Run("respects configured minimum length", func(t *testing.T) {
		t.Parallel()

		html := "<p>Short but kept.</p><p>Tiny</p>"

		doc, err := goquery.NewExtractor(goquery.WithMinParagraphLength(5)).Extract(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"Short but kept."}, doc.Paragraphs)
	})

	t.Run("returns empty document for empty input", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewExtractor().Extract("")

		require.NoError(t, err)
		assert.True(t, doc.IsEmpty())
		assert.Empty(t, doc.Title)
	})

	t.Run("strips inline markup from text", func(t *testing.T) {
		t.Parallel()

		html := `<main><p>Kerosene-type <b>Jet A-1</b> is the <a href="/std">standard</a> fuel for most <em>commercial</em> aircraft.</p></main>`

		doc, err := goquery.NewExtractor().Extract(html)

		require.NoError(t, err)
		require.Len(t, doc.Paragraphs, 1)
		assert.Equal(t, "Kerosene-type Jet A-1 is the standard fuel for most commercial aircraft.", doc.Paragraphs[0])
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := `<title>T</title><h1>H</h1><p>` + longText + `</p>`
		ext := goquery.NewExtractor()

		first, err := ext.Extract(html)
		require.NoError(t, err)
		second, err := ext.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
