package service

import (
	"context"

	"github.com/fuzumoe/crawltorch-api/internal/crawler"
	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/redirect"
)

// CrawlService runs crawl sessions for the crawl endpoints.
type CrawlService interface {
	CrawlWebsite(ctx context.Context, req *model.CrawlRequest) (*model.CrawlResult, error)
	CrawlPage(ctx context.Context, req *model.PageRequest) (*model.PageResult, error)
}

type crawlService struct {
	fetch *fetcher.Fetcher
	trace *redirect.Tracer
	pool  crawler.Pool
}

// NewCrawlService constructs a CrawlService.
func NewCrawlService(f *fetcher.Fetcher, t *redirect.Tracer, p crawler.Pool) CrawlService {
	return &crawlService{fetch: f, trace: t, pool: p}
}

// CrawlWebsite runs a bounded BFS crawl through the session pool so that
// concurrent crawls stay capped process-wide.
func (s *crawlService) CrawlWebsite(ctx context.Context, req *model.CrawlRequest) (*model.CrawlResult, error) {
	session, err := crawler.NewSession(req, s.fetch, s.trace)
	if err != nil {
		return nil, err
	}
	return s.pool.Run(ctx, session)
}

// CrawlPage fetches a single page as a one-entry crawl: same fetch, parse,
// and redirect semantics, no frontier expansion.
func (s *crawlService) CrawlPage(ctx context.Context, req *model.PageRequest) (*model.PageResult, error) {
	req.Clamp()
	crawlReq := &model.CrawlRequest{
		URL:             req.URL,
		MaxDepth:        model.MinDepth,
		MaxPages:        model.MinPages,
		ExtractMetadata: *req.ExtractMetadata,
		FollowRedirects: req.FollowRedirects,
		TrackRedirects:  req.TrackRedirects,
	}
	session, err := crawler.NewSession(crawlReq, s.fetch, s.trace)
	if err != nil {
		return nil, err
	}
	res := session.Run(ctx)
	if len(res.Pages) == 0 {
		return nil, ctx.Err()
	}
	page := res.Pages[0]
	if !*req.ExtractLinks {
		page.Links = []model.Link{}
	}
	return &page, nil
}
