package urlutil_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

func TestNormalize(t *testing.T) {
	t.Run("Canonical Form", func(t *testing.T) {
		u, err := urlutil.Normalize("HTTP://Example.COM:80/Path#section")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/Path", u.String(), "host lower-cased, default port stripped, fragment removed")
	})

	t.Run("Default HTTPS Port", func(t *testing.T) {
		u, err := urlutil.Normalize("https://example.com:443/")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/", u.String())
	})

	t.Run("Non-Default Port Kept", func(t *testing.T) {
		u, err := urlutil.Normalize("http://example.com:8080/x")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com:8080/x", u.String())
	})

	t.Run("Schemeless Rejected", func(t *testing.T) {
		_, err := urlutil.Normalize("example.com/page")
		assert.ErrorIs(t, err, urlutil.ErrInvalidURL)
	})

	t.Run("Unsupported Scheme Rejected", func(t *testing.T) {
		_, err := urlutil.Normalize("ftp://example.com/file")
		assert.ErrorIs(t, err, urlutil.ErrInvalidURL)
	})

	t.Run("Empty Rejected", func(t *testing.T) {
		_, err := urlutil.Normalize("  ")
		assert.ErrorIs(t, err, urlutil.ErrInvalidURL)
	})
}

func TestResolve(t *testing.T) {
	base, err := urlutil.Normalize("http://example.com/dir/page.html")
	require.NoError(t, err)

	t.Run("Relative Path", func(t *testing.T) {
		u, err := urlutil.Resolve(base, "../other")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/other", u.String())
	})

	t.Run("Absolute Href", func(t *testing.T) {
		u, err := urlutil.Resolve(base, "https://other.com/x")
		require.NoError(t, err)
		assert.Equal(t, "https://other.com/x", u.String())
	})

	t.Run("Fragment Only", func(t *testing.T) {
		u, err := urlutil.Resolve(base, "#top")
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/dir/page.html", u.String(), "fragment stripped after resolution")
	})
}

func TestKey(t *testing.T) {
	t.Run("Trailing Slashes Collapse", func(t *testing.T) {
		a, err := urlutil.Normalize("http://example.com/a//")
		require.NoError(t, err)
		b, err := urlutil.Normalize("http://example.com/a/")
		require.NoError(t, err)
		assert.Equal(t, urlutil.Key(a), urlutil.Key(b))
	})

	t.Run("Empty Path Is Root", func(t *testing.T) {
		a, err := urlutil.Normalize("http://example.com")
		require.NoError(t, err)
		b, err := urlutil.Normalize("http://example.com/")
		require.NoError(t, err)
		assert.Equal(t, urlutil.Key(a), urlutil.Key(b))
	})

	t.Run("Distinct Paths Stay Distinct", func(t *testing.T) {
		a, err := urlutil.Normalize("http://example.com/a")
		require.NoError(t, err)
		b, err := urlutil.Normalize("http://example.com/b")
		require.NoError(t, err)
		assert.NotEqual(t, urlutil.Key(a), urlutil.Key(b))
	})
}

func TestSameHost(t *testing.T) {
	parse := func(raw string) *url.URL {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		return u
	}
	assert.True(t, urlutil.SameHost(parse("http://example.com/a"), parse("https://example.com/b")))
	assert.False(t, urlutil.SameHost(parse("http://example.com"), parse("http://www.example.com")))
}
