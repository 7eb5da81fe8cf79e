package service

import (
	"context"

	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/sitemeta"
)

// SiteService backs the robots.txt and sitemap endpoints.
type SiteService interface {
	Robots(ctx context.Context, rawURL string) (*model.RobotsInfo, error)
	Sitemap(ctx context.Context, req *model.SitemapRequest) (*model.SitemapResult, error)
}

type siteService struct {
	reader *sitemeta.Reader
}

// NewSiteService constructs a SiteService.
func NewSiteService(r *sitemeta.Reader) SiteService {
	return &siteService{reader: r}
}

func (s *siteService) Robots(ctx context.Context, rawURL string) (*model.RobotsInfo, error) {
	return s.reader.Robots(ctx, rawURL)
}

func (s *siteService) Sitemap(ctx context.Context, req *model.SitemapRequest) (*model.SitemapResult, error) {
	return s.reader.Sitemap(ctx, req.URL, req.SitemapURL)
}
