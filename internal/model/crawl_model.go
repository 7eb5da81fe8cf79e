package model

import "time"

// Session status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusAborted   = "aborted"
)

// Crawl bounds. Requests outside these ranges are clamped, not rejected.
const (
	MinDepth     = 1
	MaxDepth     = 3
	DefaultDepth = 2

	MinPages     = 1
	MaxPages     = 100
	DefaultPages = 10
)

// CrawlRequest defines a multi-page crawl. Boolean pointers distinguish
// "omitted" from "explicitly false" so defaults can be applied.
type CrawlRequest struct {
	URL                  string `json:"url" binding:"required"`
	MaxDepth             int    `json:"max_depth"`
	MaxPages             int    `json:"max_pages"`
	SameDomainOnly       *bool  `json:"same_domain_only"`
	IncludeExternalLinks bool   `json:"include_external_links"`
	ExtractMetadata      bool   `json:"extract_metadata"`
	FollowRedirects      *bool  `json:"follow_redirects"`
	TrackRedirects       bool   `json:"track_redirects"`
}

// Clamp applies defaults and forces depth/page bounds into their documented
// ranges. Always called before a request reaches the orchestrator.
func (r *CrawlRequest) Clamp() {
	if r.MaxDepth == 0 {
		r.MaxDepth = DefaultDepth
	}
	if r.MaxDepth < MinDepth {
		r.MaxDepth = MinDepth
	}
	if r.MaxDepth > MaxDepth {
		r.MaxDepth = MaxDepth
	}
	if r.MaxPages == 0 {
		r.MaxPages = DefaultPages
	}
	if r.MaxPages < MinPages {
		r.MaxPages = MinPages
	}
	if r.MaxPages > MaxPages {
		r.MaxPages = MaxPages
	}
	if r.SameDomainOnly == nil {
		r.SameDomainOnly = boolPtr(true)
	}
	if r.FollowRedirects == nil {
		r.FollowRedirects = boolPtr(true)
	}
}

func boolPtr(b bool) *bool { return &b }

// CrawlTotals aggregates counters across every attempted page.
type CrawlTotals struct {
	PagesCrawled  int `json:"pages_crawled"`
	InternalLinks int `json:"internal_links"`
	ExternalLinks int `json:"external_links"`
	FailedPages   int `json:"failed_pages"`
}

// RedirectSummary counts redirect patterns observed across a crawl.
type RedirectSummary struct {
	Counts map[string]int `json:"counts"`
	Loops  []string       `json:"loops,omitempty"`
}

// CrawlResult is the aggregate outcome of one crawl session. It is built
// incrementally by the orchestrator and owned by the caller afterwards.
type CrawlResult struct {
	SessionID       string           `json:"session_id"`
	StartURL        string           `json:"start_url"`
	Status          string           `json:"status"`
	Pages           []PageResult     `json:"pages"`
	ExternalLinks   []Link           `json:"external_links,omitempty"`
	Totals          CrawlTotals      `json:"totals"`
	RedirectSummary *RedirectSummary `json:"redirect_summary,omitempty"`
	StartedAt       time.Time        `json:"started_at"`
	DurationMS      int64            `json:"duration_ms"`
}
