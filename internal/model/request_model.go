package model

// Bounds applied to search_text_in_page.
const (
	MaxSearchMatches    = 50
	DefaultContextChars = 100
	MaxContextChars     = 500
)

// PageRequest defines a single-page crawl.
type PageRequest struct {
	URL             string `json:"url" binding:"required"`
	ExtractLinks    *bool  `json:"extract_links"`
	ExtractMetadata *bool  `json:"extract_metadata"`
	FollowRedirects *bool  `json:"follow_redirects"`
	TrackRedirects  bool   `json:"track_redirects"`
}

// Clamp applies defaults for omitted booleans.
func (r *PageRequest) Clamp() {
	if r.ExtractLinks == nil {
		r.ExtractLinks = boolPtr(true)
	}
	if r.ExtractMetadata == nil {
		r.ExtractMetadata = boolPtr(true)
	}
	if r.FollowRedirects == nil {
		r.FollowRedirects = boolPtr(true)
	}
}

// LinksRequest asks for every link on a page. CheckStatus additionally
// probes each link for its HTTP status.
type LinksRequest struct {
	URL          string `json:"url" binding:"required"`
	AbsoluteURLs *bool  `json:"absolute_urls"`
	FilterDomain string `json:"filter_domain"`
	CheckStatus  bool   `json:"check_status"`
}

// DocumentsRequest asks for document links, optionally restricted by type.
type DocumentsRequest struct {
	URL           string   `json:"url" binding:"required"`
	DocumentTypes []string `json:"document_types"`
	AbsoluteURLs  *bool    `json:"absolute_urls"`
}

// PageTargetRequest is the shared shape of the single-URL extraction calls
// (images, headings, tables, metadata).
type PageTargetRequest struct {
	URL string `json:"url" binding:"required"`
}

// SearchRequest asks for occurrences of a term in a page's readable text.
type SearchRequest struct {
	URL           string `json:"url" binding:"required"`
	SearchTerm    string `json:"search_term" binding:"required"`
	CaseSensitive bool   `json:"case_sensitive"`
	ContextChars  int    `json:"context_chars"`
}

// Clamp bounds the context window.
func (r *SearchRequest) Clamp() {
	if r.ContextChars <= 0 {
		r.ContextChars = DefaultContextChars
	}
	if r.ContextChars > MaxContextChars {
		r.ContextChars = MaxContextChars
	}
}

// SitemapRequest asks for a site's sitemap, at an explicit location if given.
type SitemapRequest struct {
	URL        string `json:"url" binding:"required"`
	SitemapURL string `json:"sitemap_url"`
}

// CheckRequest probes a URL for accessibility.
type CheckRequest struct {
	URL             string `json:"url" binding:"required"`
	FollowRedirects *bool  `json:"follow_redirects"`
	MaxRedirects    int    `json:"max_redirects"`
}

// TraceRequest follows a URL's redirect chain.
type TraceRequest struct {
	URL          string `json:"url" binding:"required"`
	MaxRedirects int    `json:"max_redirects"`
}

// ChainRequest is TraceRequest plus per-hop response headers.
type ChainRequest struct {
	URL            string `json:"url" binding:"required"`
	IncludeHeaders bool   `json:"include_headers"`
	MaxRedirects   int    `json:"max_redirects"`
}

// LinkList is the response shape of extract_all_links.
type LinkList struct {
	URL           string `json:"url"`
	Links         []Link `json:"links"`
	Count         int    `json:"count"`
	InternalCount int    `json:"internal_count"`
	ExternalCount int    `json:"external_count"`
}

// DocumentList groups document links by type.
type DocumentList struct {
	URL       string                    `json:"url"`
	Documents map[string][]DocumentLink `json:"documents"`
	Count     int                       `json:"count"`
}

// ImageList is the response shape of extract_images.
type ImageList struct {
	URL    string  `json:"url"`
	Images []Image `json:"images"`
	Count  int     `json:"count"`
}

// HeadingList carries the flat heading list plus a per-level grouping.
type HeadingList struct {
	URL       string              `json:"url"`
	Headings  []Heading           `json:"headings"`
	Hierarchy map[string][]string `json:"hierarchy"`
	Count     int                 `json:"count"`
}

// TableList is the response shape of extract_tables.
type TableList struct {
	URL    string  `json:"url"`
	Tables []Table `json:"tables"`
	Count  int     `json:"count"`
}

// MetadataResult is the response shape of get_page_metadata.
type MetadataResult struct {
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}

// SearchResult is the response shape of search_text_in_page.
type SearchResult struct {
	URL        string        `json:"url"`
	SearchTerm string        `json:"search_term"`
	Matches    []SearchMatch `json:"matches"`
	Count      int           `json:"count"`
	Truncated  bool          `json:"truncated,omitempty"`
}
