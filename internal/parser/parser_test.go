package parser_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/crawltorch-api/internal/parser"
)

const sampleHTML = `<!DOCTYPE html>
<html>
  <head>
	<title>Sample Page</title>
	<meta name="description" content="A sample page">
	<meta name="keywords" content="crawl,test">
	<meta name="author" content="first author">
	<meta name="author" content="second author">
	<meta property="og:title" content="Sample OG Title">
	<meta name="twitter:card" content="summary">
	<meta name="viewport" content="width=device-width">
  </head>
  <body>
	<h1>Main Heading</h1>
	<h2>Section One</h2>
	<h2>Section Two</h2>
	<h3>Subsection</h3>
	<a href="/internal" title="home link">Internal</a>
	<a href="/internal#frag">Internal Again</a>
	<a href="https://other.com/page">External</a>
	<a href="/files/report.pdf">Annual Report</a>
	<a href="/files/data.xlsx">Data Sheet</a>
	<a href=":::bad:::">Broken</a>
	<img src="/img/logo.png" alt="logo">
	<img src="https://cdn.other.com/banner.jpg" title="banner">
	<table>
	  <tr><th>Name</th><th>Age</th></tr>
	  <tr><td>Alice</td><td>30</td></tr>
	  <tr><td>Bob</td><td>25</td></tr>
	</table>
	<table></table>
  </body>
</html>`

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestParse(t *testing.T) {
	base := mustParse(t, "http://example.com/dir/")
	page := parser.Parse([]byte(sampleHTML), base)

	t.Run("Links Deduped And Resolved", func(t *testing.T) {
		hrefs := make(map[string]bool)
		for _, l := range page.Links {
			hrefs[l.Href] = l.IsExternal
		}
		assert.Len(t, page.Links, 4, "duplicate and malformed links are dropped")
		external, ok := hrefs["https://other.com/page"]
		assert.True(t, ok)
		assert.True(t, external)
		internal, ok := hrefs["http://example.com/internal"]
		assert.True(t, ok)
		assert.False(t, internal)
	})

	t.Run("Anchor Text And Title", func(t *testing.T) {
		var found bool
		for _, l := range page.Links {
			if l.Href == "http://example.com/internal" {
				found = true
				assert.Equal(t, "Internal", l.Text)
				assert.Equal(t, "home link", l.Title)
			}
		}
		assert.True(t, found)
	})

	t.Run("Document Links Grouped By Type", func(t *testing.T) {
		require.Contains(t, page.DocumentLinks, "pdf")
		require.Contains(t, page.DocumentLinks, "xlsx")
		assert.Equal(t, "http://example.com/files/report.pdf", page.DocumentLinks["pdf"][0].Href)
		assert.Equal(t, "Annual Report", page.DocumentLinks["pdf"][0].Text)
	})

	t.Run("Images", func(t *testing.T) {
		require.Len(t, page.Images, 2)
		assert.Equal(t, "http://example.com/img/logo.png", page.Images[0].Src)
		assert.Equal(t, "logo", page.Images[0].Alt)
		assert.Equal(t, "banner", page.Images[1].Title)
	})

	t.Run("Headings", func(t *testing.T) {
		require.Len(t, page.Headings, 4)
		assert.Equal(t, 1, page.Headings[0].Level)
		assert.Equal(t, "Main Heading", page.Headings[0].Text)
		assert.Equal(t, 3, page.Headings[3].Level)
	})

	t.Run("Tables", func(t *testing.T) {
		require.Len(t, page.Tables, 1, "a table with no rows is omitted")
		tbl := page.Tables[0]
		assert.Equal(t, []string{"Name", "Age"}, tbl.Headers)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, "Alice", tbl.Rows[0]["Name"])
		assert.Equal(t, "25", tbl.Rows[1]["Age"])
	})

	t.Run("Metadata Last Occurrence Wins", func(t *testing.T) {
		assert.Equal(t, "Sample Page", page.Metadata["title"])
		assert.Equal(t, "A sample page", page.Metadata["description"])
		assert.Equal(t, "second author", page.Metadata["author"])
		assert.Equal(t, "Sample OG Title", page.Metadata["og:title"])
		assert.Equal(t, "summary", page.Metadata["twitter:card"])
		assert.NotContains(t, page.Metadata, "viewport", "unlisted meta names are ignored")
	})
}

func TestParse_MalformedHTML(t *testing.T) {
	base := mustParse(t, "http://example.com/")

	t.Run("Garbage Input", func(t *testing.T) {
		page := parser.Parse([]byte("<<<<not html at all"), base)
		assert.Empty(t, page.Links)
		assert.Empty(t, page.Headings)
		assert.NotNil(t, page.Metadata, "containers are present even when empty")
	})

	t.Run("Unclosed Tags", func(t *testing.T) {
		page := parser.Parse([]byte(`<html><body><a href="/x">broken<h1>head`), base)
		require.Len(t, page.Links, 1)
		assert.Equal(t, "http://example.com/x", page.Links[0].Href)
	})

	t.Run("Empty Input", func(t *testing.T) {
		page := parser.Parse(nil, base)
		assert.Empty(t, page.Links)
		assert.Empty(t, page.Tables)
	})
}

func TestHierarchy(t *testing.T) {
	base := mustParse(t, "http://example.com/")
	page := parser.Parse([]byte(sampleHTML), base)
	h := parser.Hierarchy(page.Headings)
	assert.Equal(t, []string{"Main Heading"}, h["h1"])
	assert.Equal(t, []string{"Section One", "Section Two"}, h["h2"])
	assert.Equal(t, []string{"Subsection"}, h["h3"])
}

func TestText(t *testing.T) {
	text := parser.Text([]byte(`<html><body><h1>Title</h1><p>Some body copy.</p></body></html>`))
	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "Some body copy.")
	assert.NotContains(t, text, "<p>", "markup does not leak into readable text")
}
