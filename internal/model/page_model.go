package model

import "time"

// Link is a hyperlink discovered on a page, resolved to absolute form.
// StatusCode is only set when a caller asked for link checking.
type Link struct {
	Href       string `json:"href"`
	Text       string `json:"text,omitempty"`
	Title      string `json:"title,omitempty"`
	IsExternal bool   `json:"is_external"`
	StatusCode int    `json:"status_code,omitempty"`
}

// DocumentLink is a link whose target is a downloadable document.
type DocumentLink struct {
	Href string `json:"href"`
	Text string `json:"text,omitempty"`
	Type string `json:"type"`
}

// Image is an img element with its source resolved to absolute form.
type Image struct {
	Src   string `json:"src"`
	Alt   string `json:"alt,omitempty"`
	Title string `json:"title,omitempty"`
}

// Heading is an h1-h6 element.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Table holds a parsed HTML table: the first row as headers, the remaining
// rows as header->cell mappings in header order.
type Table struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// ParsedPage is the best-effort extraction from one HTML document. Every
// container is always present; missing structure yields an empty container,
// never a nil or an error.
type ParsedPage struct {
	Links         []Link                    `json:"links"`
	DocumentLinks map[string][]DocumentLink `json:"document_links"`
	Images        []Image                   `json:"images"`
	Headings      []Heading                 `json:"headings"`
	Tables        []Table                   `json:"tables"`
	Metadata      map[string]string         `json:"metadata"`
}

// RedirectInfo summarizes the redirect hops observed while fetching a page.
type RedirectInfo struct {
	RedirectCount int           `json:"redirect_count"`
	Chain         []RedirectHop `json:"chain,omitempty"`
	Pattern       string        `json:"pattern"`
	LoopDetected  bool          `json:"loop_detected,omitempty"`
}

// PageResult records one attempted page fetch inside a crawl. Failures are
// captured here rather than aborting the session.
type PageResult struct {
	RequestedURL      string            `json:"requested_url"`
	FinalURL          string            `json:"final_url,omitempty"`
	StatusCode        int               `json:"status_code"`
	Depth             int               `json:"depth"`
	ParentURL         string            `json:"parent_url,omitempty"`
	Title             string            `json:"title,omitempty"`
	Text              string            `json:"text,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Links             []Link            `json:"links"`
	InternalLinkCount int               `json:"internal_link_count"`
	ExternalLinkCount int               `json:"external_link_count"`
	Redirect          *RedirectInfo     `json:"redirect,omitempty"`
	Error             string            `json:"error,omitempty"`
	FetchedAt         time.Time         `json:"fetched_at"`
	DurationMS        int64             `json:"duration_ms"`
}

// SearchMatch is one occurrence of a search term with surrounding context.
type SearchMatch struct {
	Position int    `json:"position"`
	Context  string `json:"context"`
}
