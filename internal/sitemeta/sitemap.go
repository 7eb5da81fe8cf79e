package sitemeta

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

// maxSitemapURLs caps how many URLs one sitemap read collects.
const maxSitemapURLs = 500

// maxChildSitemaps caps how many child sitemaps of an index are followed.
const maxChildSitemaps = 5

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapLoc `xml:"url"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// Sitemap fetches a site's sitemap. With sitemapURL empty, /sitemap.xml on
// the base host is used. A sitemap index is followed one level deep.
func (r *Reader) Sitemap(ctx context.Context, rawURL, sitemapURL string) (*model.SitemapResult, error) {
	base, err := urlutil.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	target := sitemapURL
	if target == "" {
		target = base.Scheme + "://" + base.Host + "/sitemap.xml"
	} else if _, err := urlutil.Normalize(target); err != nil {
		return nil, err
	}

	result := &model.SitemapResult{SitemapURL: target, URLs: []string{}}

	urls, children, err := r.readSitemap(ctx, target)
	if err != nil {
		return nil, err
	}
	result.URLs = appendCapped(result.URLs, urls, &result.Truncated)

	if len(children) > maxChildSitemaps {
		children = children[:maxChildSitemaps]
		result.Truncated = true
	}
	for _, child := range children {
		if len(result.URLs) >= maxSitemapURLs {
			break
		}
		urls, _, err := r.readSitemap(ctx, child)
		if err != nil {
			// A broken child sitemap does not invalidate the rest.
			continue
		}
		result.URLs = appendCapped(result.URLs, urls, &result.Truncated)
	}

	result.URLCount = len(result.URLs)
	return result, nil
}

// readSitemap fetches one sitemap document and returns its page URLs and any
// child sitemap locations.
func (r *Reader) readSitemap(ctx context.Context, target string) (urls, children []string, err error) {
	res, err := r.fetcher.Fetch(ctx, target, true)
	if err != nil {
		return nil, nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("sitemap %s: unexpected status %d", target, res.StatusCode)
	}

	var set sitemapURLSet
	if xml.Unmarshal(res.Body, &set) == nil && len(set.URLs) > 0 {
		for _, u := range set.URLs {
			if loc := strings.TrimSpace(u.Loc); loc != "" {
				urls = append(urls, loc)
			}
		}
		return urls, nil, nil
	}

	var idx sitemapIndex
	if xml.Unmarshal(res.Body, &idx) == nil {
		for _, s := range idx.Sitemaps {
			if loc := strings.TrimSpace(s.Loc); loc != "" {
				children = append(children, loc)
			}
		}
	}
	return nil, children, nil
}

func appendCapped(dst, src []string, truncated *bool) []string {
	for _, s := range src {
		if len(dst) >= maxSitemapURLs {
			*truncated = true
			break
		}
		dst = append(dst, s)
	}
	return dst
}
