package fetcher

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/fuzumoe/crawltorch-api/internal/model"
)

// LinkChecker probes the status of many independent links concurrently.
// Crawl sessions never use it; it only fans out across the standalone
// extraction calls, where the targets are unrelated URLs.
type LinkChecker struct {
	fetcher *Fetcher
	conc    int
}

// NewLinkChecker creates a checker issuing at most conc probes at a time.
func NewLinkChecker(f *Fetcher, conc int) *LinkChecker {
	if conc <= 0 {
		conc = 12
	}
	return &LinkChecker{fetcher: f, conc: conc}
}

// Run fills in the status code of every link in place and returns the slice.
func (lc *LinkChecker) Run(ctx context.Context, links []model.Link) []model.Link {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(lc.conc)
	for i := range links {
		i := i
		g.Go(func() error {
			links[i].StatusCode = lc.head(ctx, links[i].Href)
			return nil
		})
	}
	_ = g.Wait()
	return links
}

// head performs a HEAD request, falling back to GET when the server rejects
// the method. Rate-limiter rejection is reported as a 429 status.
func (lc *LinkChecker) head(ctx context.Context, raw string) int {
	if !lc.fetcher.limiter.Admit() {
		return http.StatusTooManyRequests
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, raw, nil)
	if err != nil {
		return 0
	}
	if lc.fetcher.userAgent != "" {
		req.Header.Set("User-Agent", lc.fetcher.userAgent)
	}
	resp, err := lc.fetcher.client.Do(req)
	if err != nil {
		return 0
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		req.Method = http.MethodGet
		resp2, err := lc.fetcher.client.Do(req)
		if err != nil {
			return 0
		}
		resp2.Body.Close()
		return resp2.StatusCode
	}
	return resp.StatusCode
}
