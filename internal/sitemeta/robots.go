package sitemeta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/temoto/robotstxt"

	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

// Reader fetches and parses robots.txt and sitemap files. All of its
// requests go through the shared fetcher, so they are rate-limited and
// redirect-aware like any other crawl traffic.
type Reader struct {
	fetcher *fetcher.Fetcher
}

// NewReader builds a site metadata reader over the given fetcher.
func NewReader(f *fetcher.Fetcher) *Reader {
	return &Reader{fetcher: f}
}

// Robots fetches and parses a site's robots.txt. A missing or 404 file means
// "no restrictions stated" and yields an empty RobotsInfo, not an error.
func (r *Reader) Robots(ctx context.Context, rawURL string) (*model.RobotsInfo, error) {
	base, err := urlutil.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	robotsURL := base.Scheme + "://" + base.Host + "/robots.txt"

	info := &model.RobotsInfo{
		URL:        robotsURL,
		UserAgents: []string{},
		Disallowed: []string{},
		Allowed:    []string{},
		Sitemaps:   []string{},
	}

	res, err := r.fetcher.Fetch(ctx, robotsURL, true)
	if err != nil {
		if errors.Is(err, fetcher.ErrUnreachable) {
			return info, nil
		}
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return info, nil
	}

	info.Exists = true
	scanDirectives(res.Body, info)

	// The robotstxt parser is authoritative for crawl-delay resolution.
	if data, err := robotstxt.FromBytes(res.Body); err == nil {
		if g := data.FindGroup("*"); g != nil && g.CrawlDelay > 0 {
			info.CrawlDelay = g.CrawlDelay.Seconds()
		}
	}
	return info, nil
}

// scanDirectives collects the directive lists the robotstxt library does not
// expose for enumeration.
func scanDirectives(body []byte, info *model.RobotsInfo) {
	seenAgents := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "user-agent":
			if _, ok := seenAgents[value]; !ok && value != "" {
				seenAgents[value] = struct{}{}
				info.UserAgents = append(info.UserAgents, value)
			}
		case "disallow":
			if value != "" {
				info.Disallowed = append(info.Disallowed, value)
			}
		case "allow":
			if value != "" {
				info.Allowed = append(info.Allowed, value)
			}
		case "sitemap":
			if value != "" {
				info.Sitemaps = append(info.Sitemaps, value)
			}
		}
	}
}
