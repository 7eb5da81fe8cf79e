package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/parser"
	"github.com/fuzumoe/crawltorch-api/internal/redirect"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

// frontierEntry is one not-yet-fetched URL awaiting processing.
type frontierEntry struct {
	url    *url.URL
	depth  int
	parent string
}

// Session owns all mutable state of one crawl: the FIFO frontier, the
// visited set, and the accumulating result. It is never shared across
// crawls, so a crawl cannot contaminate another.
type Session struct {
	ID string

	req   *model.CrawlRequest
	fetch *fetcher.Fetcher
	trace *redirect.Tracer

	start    *url.URL
	frontier []frontierEntry
	visited  map[string]struct{}
	extSeen  map[string]struct{}
	result   *model.CrawlResult
}

// NewSession validates the start URL and prepares a session. The request is
// clamped to the documented depth/page bounds here, before any use.
func NewSession(req *model.CrawlRequest, f *fetcher.Fetcher, t *redirect.Tracer) (*Session, error) {
	req.Clamp()
	start, err := urlutil.Normalize(req.URL)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:      uuid.NewString(),
		req:     req,
		fetch:   f,
		trace:   t,
		start:   start,
		visited: make(map[string]struct{}),
		extSeen: make(map[string]struct{}),
	}, nil
}

// Run performs the bounded breadth-first traversal. The frontier is strictly
// FIFO, so every page at depth d is processed before any page at depth d+1.
// Cancellation is checked between dequeues and yields partial results in the
// aborted state; a crawl is never silently lost.
func (s *Session) Run(ctx context.Context) *model.CrawlResult {
	s.result = &model.CrawlResult{
		SessionID:     s.ID,
		StartURL:      s.req.URL,
		Status:        model.StatusRunning,
		Pages:         []model.PageResult{},
		ExternalLinks: []model.Link{},
		StartedAt:     time.Now().UTC(),
	}
	if s.req.TrackRedirects {
		s.result.RedirectSummary = &model.RedirectSummary{Counts: map[string]int{}}
	}

	s.frontier = append(s.frontier, frontierEntry{url: s.start, depth: 0})
	s.visited[urlutil.Key(s.start)] = struct{}{}

	for len(s.frontier) > 0 {
		select {
		case <-ctx.Done():
			s.result.Status = model.StatusAborted
			return s.finish()
		default:
		}
		if len(s.result.Pages) >= s.req.MaxPages {
			s.result.Status = model.StatusAborted
			return s.finish()
		}

		entry := s.frontier[0]
		s.frontier = s.frontier[1:]

		page, parsed := s.fetchPage(ctx, entry)
		s.record(page)

		if parsed != nil && entry.depth < s.req.MaxDepth {
			s.expand(entry, parsed)
		}
	}

	s.result.Status = model.StatusCompleted
	return s.finish()
}

// fetchPage fetches one frontier entry. Failures come back as an error page
// with a nil parse, never as an abort of the whole crawl.
func (s *Session) fetchPage(ctx context.Context, e frontierEntry) (model.PageResult, *model.ParsedPage) {
	page := model.PageResult{
		RequestedURL: e.url.String(),
		Depth:        e.depth,
		ParentURL:    e.parent,
		Links:        []model.Link{},
		FetchedAt:    time.Now().UTC(),
	}
	start := time.Now()

	var res *fetcher.Result
	if s.req.TrackRedirects && *s.req.FollowRedirects {
		tr, final, err := s.trace.Trace(ctx, e.url.String(), 0, false)
		if err != nil {
			return s.failPage(page, err, start), nil
		}
		page.Redirect = &model.RedirectInfo{
			RedirectCount: tr.RedirectCount,
			Chain:         tr.Chain,
			Pattern:       tr.Pattern,
			LoopDetected:  tr.LoopDetected,
		}
		page.FinalURL = tr.FinalURL
		if final == nil {
			page.Error = tr.Error
			if tr.LoopDetected {
				page.Error = model.PatternLoop
			}
			page.DurationMS = time.Since(start).Milliseconds()
			return page, nil
		}
		res = final
	} else {
		var err error
		res, err = s.fetch.Fetch(ctx, e.url.String(), *s.req.FollowRedirects)
		if err != nil {
			return s.failPage(page, err, start), nil
		}
		page.FinalURL = res.FinalURL
	}

	page.StatusCode = res.StatusCode
	page.DurationMS = time.Since(start).Milliseconds()

	if final, err := urlutil.Normalize(page.FinalURL); err == nil {
		s.visited[urlutil.Key(final)] = struct{}{}
	}

	if res.StatusCode >= http.StatusBadRequest {
		page.Error = http.StatusText(res.StatusCode)
		return page, nil
	}

	base := e.url
	if final, err := urlutil.Normalize(page.FinalURL); err == nil {
		base = final
	}
	parsed := parser.Parse(res.Body, base)

	page.Title = parsed.Metadata["title"]
	page.Text = parser.Text(res.Body)
	if s.req.ExtractMetadata {
		page.Metadata = parsed.Metadata
	}
	page.Links = parsed.Links
	for _, l := range parsed.Links {
		if s.isExternal(l.Href) {
			page.ExternalLinkCount++
		} else {
			page.InternalLinkCount++
		}
	}
	return page, parsed
}

func (s *Session) failPage(page model.PageResult, err error, start time.Time) model.PageResult {
	page.DurationMS = time.Since(start).Milliseconds()
	if errors.Is(err, fetcher.ErrRateLimited) {
		page.StatusCode = http.StatusTooManyRequests
		page.Error = "Rate limit exceeded"
		return page
	}
	page.Error = err.Error()
	return page
}

// expand walks the page's discovered links in document order. Same-domain
// containment compares against the start URL's host, so a page that
// redirected off-site cannot pull outside pages into the crawl.
func (s *Session) expand(e frontierEntry, parsed *model.ParsedPage) {
	for _, l := range parsed.Links {
		link, err := urlutil.Normalize(l.Href)
		if err != nil {
			continue
		}
		if *s.req.SameDomainOnly && !urlutil.SameHost(s.start, link) {
			key := urlutil.Key(link)
			if _, ok := s.extSeen[key]; ok {
				continue
			}
			s.extSeen[key] = struct{}{}
			if s.req.IncludeExternalLinks {
				s.result.ExternalLinks = append(s.result.ExternalLinks, model.Link{
					Href:       link.String(),
					Text:       l.Text,
					Title:      l.Title,
					IsExternal: true,
				})
			}
			continue
		}

		key := urlutil.Key(link)
		if _, ok := s.visited[key]; ok {
			continue
		}
		s.visited[key] = struct{}{}
		s.frontier = append(s.frontier, frontierEntry{
			url:    link,
			depth:  e.depth + 1,
			parent: e.url.String(),
		})
	}
}

// record appends a page result and folds it into the running totals.
func (s *Session) record(page model.PageResult) {
	s.result.Pages = append(s.result.Pages, page)
	s.result.Totals.InternalLinks += page.InternalLinkCount
	s.result.Totals.ExternalLinks += page.ExternalLinkCount
	if page.Error != "" {
		s.result.Totals.FailedPages++
	} else {
		s.result.Totals.PagesCrawled++
	}
	if s.result.RedirectSummary != nil && page.Redirect != nil {
		s.result.RedirectSummary.Counts[page.Redirect.Pattern]++
		if page.Redirect.LoopDetected {
			s.result.RedirectSummary.Loops = append(s.result.RedirectSummary.Loops, page.RequestedURL)
		}
	}
}

func (s *Session) finish() *model.CrawlResult {
	s.result.DurationMS = time.Since(s.result.StartedAt).Milliseconds()
	return s.result
}

// isExternal compares a link's host against the start host.
func (s *Session) isExternal(href string) bool {
	u, err := urlutil.Normalize(href)
	if err != nil {
		return false
	}
	return !urlutil.SameHost(s.start, u)
}
