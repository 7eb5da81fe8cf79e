package parser

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

// documentExtensions are the path extensions treated as document links.
var documentExtensions = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {},
	"ppt": {}, "pptx": {}, "txt": {},
}

// DocumentType returns the document type for a URL path, or "" when the
// extension is not a known document type.
func DocumentType(u *url.URL) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	if _, ok := documentExtensions[ext]; ok {
		return ext
	}
	return ""
}

// Parse extracts structure from an HTML document, best-effort. Malformed
// markup degrades to partial or empty containers; it never errors.
func Parse(body []byte, base *url.URL) *model.ParsedPage {
	page := &model.ParsedPage{
		Links:         []model.Link{},
		DocumentLinks: map[string][]model.DocumentLink{},
		Images:        []model.Image{},
		Headings:      []model.Heading{},
		Tables:        []model.Table{},
		Metadata:      map[string]string{},
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return page
	}

	parseLinks(doc, base, page)
	parseImages(doc, base, page)
	parseHeadings(doc, page)
	parseTables(doc, page)
	parseMetadata(doc, page)
	return page
}

func parseLinks(doc *goquery.Document, base *url.URL, page *model.ParsedPage) {
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		abs, err := urlutil.Resolve(base, href)
		if err != nil {
			return
		}
		key := urlutil.Key(abs)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}

		title, _ := a.Attr("title")
		lnk := model.Link{
			Href:       abs.String(),
			Text:       strings.TrimSpace(a.Text()),
			Title:      title,
			IsExternal: !urlutil.SameHost(base, abs),
		}
		page.Links = append(page.Links, lnk)

		if typ := DocumentType(abs); typ != "" {
			page.DocumentLinks[typ] = append(page.DocumentLinks[typ], model.DocumentLink{
				Href: lnk.Href,
				Text: lnk.Text,
				Type: typ,
			})
		}
	})
}

func parseImages(doc *goquery.Document, base *url.URL, page *model.ParsedPage) {
	doc.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		abs, err := urlutil.Resolve(base, src)
		if err != nil {
			return
		}
		alt, _ := img.Attr("alt")
		title, _ := img.Attr("title")
		page.Images = append(page.Images, model.Image{
			Src:   abs.String(),
			Alt:   alt,
			Title: title,
		})
	})
}

func parseHeadings(doc *goquery.Document, page *model.ParsedPage) {
	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if n == nil || n.Type != html.ElementNode || len(n.Data) != 2 {
			return
		}
		page.Headings = append(page.Headings, model.Heading{
			Level: int(n.Data[1] - '0'),
			Text:  strings.TrimSpace(s.Text()),
		})
	})
}

func parseTables(doc *goquery.Document, page *model.ParsedPage) {
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		rows := tbl.Find("tr")
		if rows.Length() == 0 {
			return
		}

		var headers []string
		rows.First().Find("th,td").Each(func(_ int, c *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(c.Text()))
		})

		table := model.Table{Headers: headers, Rows: []map[string]string{}}
		rows.Slice(1, rows.Length()).Each(func(_ int, r *goquery.Selection) {
			row := make(map[string]string, len(headers))
			r.Find("th,td").Each(func(i int, c *goquery.Selection) {
				if i < len(headers) {
					row[headers[i]] = strings.TrimSpace(c.Text())
				}
			})
			if len(row) > 0 {
				table.Rows = append(table.Rows, row)
			}
		})
		page.Tables = append(page.Tables, table)
	})
}

func parseMetadata(doc *goquery.Document, page *model.ParsedPage) {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		page.Metadata["title"] = title
	}

	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		content, ok := m.Attr("content")
		if !ok {
			return
		}
		if name, ok := m.Attr("name"); ok {
			switch {
			case name == "description" || name == "keywords" || name == "author":
				page.Metadata[name] = content
			case strings.HasPrefix(name, "twitter:"):
				page.Metadata[name] = content
			}
			return
		}
		if prop, ok := m.Attr("property"); ok && strings.HasPrefix(prop, "og:") {
			page.Metadata[prop] = content
		}
	})
}

// Hierarchy groups heading texts by level name ("h1".."h6").
func Hierarchy(headings []model.Heading) map[string][]string {
	out := make(map[string][]string)
	for _, h := range headings {
		key := "h" + string(rune('0'+h.Level))
		out[key] = append(out[key], h.Text)
	}
	return out
}

// Text renders an HTML document to readable text. Markup that the markdown
// converter rejects falls back to the bare text content.
func Text(body []byte) string {
	md, err := htmltomarkdown.ConvertString(string(body))
	if err == nil {
		return strings.TrimSpace(md)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}
