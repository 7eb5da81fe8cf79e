package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL marks input that is malformed or missing an http(s) scheme.
// Callers skip the offending link rather than aborting the crawl.
var ErrInvalidURL = errors.New("invalid url")

// Normalize canonicalizes a URL for fetching and comparison: the host is
// lower-cased, default ports are stripped, and the fragment is removed. The
// path is left untouched so the fetched form stays what the author wrote.
func Normalize(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q must include an http:// or https:// scheme", ErrInvalidURL, raw)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}

	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" && u.Port() == "80") || (u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}
	u.Fragment = ""
	return u, nil
}

// Resolve resolves href (possibly relative) against base and normalizes it.
func Resolve(base *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return Normalize(base.ResolveReference(ref).String())
}

// Key returns the comparison form of a normalized URL: duplicate trailing
// slashes collapse to one, and an empty path counts as "/". Two URLs with
// equal keys would be fetched identically, so the visited set and link dedup
// both key on it.
func Key(u *url.URL) string {
	c := *u
	c.Path = collapseTrailingSlashes(c.Path)
	if c.Path == "" {
		c.Path = "/"
	}
	return c.String()
}

// SameHost reports whether two URLs share a hostname.
func SameHost(a, b *url.URL) bool {
	return a.Hostname() == b.Hostname()
}

func collapseTrailingSlashes(p string) string {
	for strings.HasSuffix(p, "//") {
		p = p[:len(p)-1]
	}
	return p
}
