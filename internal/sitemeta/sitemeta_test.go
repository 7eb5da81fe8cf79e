package sitemeta_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/ratelimit"
	"github.com/fuzumoe/crawltorch-api/internal/sitemeta"
)

const robotsBody = `# sample robots file
User-agent: *
Disallow: /private/
Disallow: /tmp/
Allow: /public/
Crawl-delay: 2

User-agent: SpecialBot
Disallow: /special/

Sitemap: https://example.com/sitemap.xml
`

func newReader() *sitemeta.Reader {
	f := fetcher.New(ratelimit.New(1000, 10*time.Second), 5*time.Second, "CrawlTorch-Test/1.0", 0)
	return sitemeta.NewReader(f)
}

func TestReader_Robots(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(robotsBody))
	}))
	defer ts.Close()

	r := newReader()
	info, err := r.Robots(context.Background(), ts.URL+"/some/page")
	require.NoError(t, err)

	assert.True(t, info.Exists)
	assert.Equal(t, []string{"*", "SpecialBot"}, info.UserAgents)
	assert.Equal(t, []string{"/private/", "/tmp/", "/special/"}, info.Disallowed)
	assert.Equal(t, []string{"/public/"}, info.Allowed)
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, info.Sitemaps)
	assert.Equal(t, 2.0, info.CrawlDelay)
}

func TestReader_RobotsMissing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	r := newReader()
	info, err := r.Robots(context.Background(), ts.URL)
	require.NoError(t, err, "a missing robots.txt is not an error")
	assert.False(t, info.Exists)
	assert.Empty(t, info.Disallowed)
	assert.Empty(t, info.Sitemaps)
}

func TestReader_RobotsUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := ts.URL
	ts.Close()

	r := newReader()
	info, err := r.Robots(context.Background(), addr)
	require.NoError(t, err)
	assert.False(t, info.Exists)
}

func TestReader_Sitemap(t *testing.T) {
	var ts *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>http://example.com/</loc></url>
  <url><loc>http://example.com/about</loc></url>
  <url><loc> http://example.com/contact </loc></url>
</urlset>`)
	})
	mux.HandleFunc("/sitemap-index.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%s/sitemap.xml</loc></sitemap>
  <sitemap><loc>%s/missing.xml</loc></sitemap>
</sitemapindex>`, ts.URL, ts.URL)
	})
	mux.HandleFunc("/missing.xml", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	ts = httptest.NewServer(mux)
	defer ts.Close()

	r := newReader()
	ctx := context.Background()

	t.Run("Default Location", func(t *testing.T) {
		res, err := r.Sitemap(ctx, ts.URL, "")
		require.NoError(t, err)
		assert.Equal(t, 3, res.URLCount)
		assert.Contains(t, res.URLs, "http://example.com/about")
		assert.Contains(t, res.URLs, "http://example.com/contact", "loc values are trimmed")
	})

	t.Run("Sitemap Index Followed One Level", func(t *testing.T) {
		res, err := r.Sitemap(ctx, ts.URL, ts.URL+"/sitemap-index.xml")
		require.NoError(t, err)
		assert.Equal(t, 3, res.URLCount, "broken child sitemaps are skipped")
	})

	t.Run("Invalid Base URL", func(t *testing.T) {
		_, err := r.Sitemap(ctx, "not-a-url", "")
		assert.Error(t, err)
	})
}
