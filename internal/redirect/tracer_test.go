package redirect_test

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
	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/ratelimit"
	"github.com/fuzumoe/crawltorch-api/internal/redirect"
)

func newTracer() *redirect.Tracer {
	f := fetcher.New(ratelimit.New(1000, 10*time.Second), 5*time.Second, "CrawlTorch-Test/1.0", 0)
	return redirect.New(f, 10)
}

func redirectServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("done"))
	})
	mux.HandleFunc("/one-hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/two-hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/one-hop", http.StatusFound)
	})
	mux.HandleFunc("/three-hop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/two-hop", http.StatusFound)
	})
	mux.HandleFunc("/loop-a", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop-b", http.StatusFound)
	})
	mux.HandleFunc("/loop-b", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop-a", http.StatusFound)
	})
	mux.HandleFunc("/endless/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	})
	return httptest.NewServer(mux)
}

func TestTracer_Trace(t *testing.T) {
	ts := redirectServer(t)
	defer ts.Close()
	tr := newTracer()
	ctx := context.Background()

	t.Run("No Redirect", func(t *testing.T) {
		res, final, err := tr.Trace(ctx, ts.URL+"/final", 10, false)
		require.NoError(t, err)
		require.NotNil(t, final)
		assert.Equal(t, 0, res.RedirectCount)
		assert.Equal(t, model.PatternNone, res.Pattern)
		assert.Equal(t, http.StatusOK, res.FinalStatus)
		assert.Equal(t, "done", string(final.Body))
	})

	t.Run("Single Hop", func(t *testing.T) {
		res, final, err := tr.Trace(ctx, ts.URL+"/one-hop", 10, false)
		require.NoError(t, err)
		require.NotNil(t, final)
		require.Len(t, res.Chain, 1)
		assert.Equal(t, model.PatternSimple, res.Pattern)
		assert.True(t, res.Chain[0].IsPermanent, "301 is a permanent hop")
		assert.Equal(t, ts.URL+"/final", res.FinalURL)
	})

	t.Run("Two Hops Classify As Multiple", func(t *testing.T) {
		res, _, err := tr.Trace(ctx, ts.URL+"/two-hop", 10, false)
		require.NoError(t, err)
		assert.Equal(t, 2, res.RedirectCount)
		assert.Equal(t, model.PatternMultiple, res.Pattern)
	})

	t.Run("Three Hops Classify As Chain", func(t *testing.T) {
		res, _, err := tr.Trace(ctx, ts.URL+"/three-hop", 10, false)
		require.NoError(t, err)
		assert.Equal(t, 3, res.RedirectCount)
		assert.Equal(t, model.PatternChain, res.Pattern)
	})

	t.Run("Loop Detected And Truncated", func(t *testing.T) {
		res, final, err := tr.Trace(ctx, ts.URL+"/loop-a", 10, false)
		require.NoError(t, err)
		assert.Nil(t, final)
		assert.True(t, res.LoopDetected)
		assert.Equal(t, model.PatternLoop, res.Pattern)
		assert.Equal(t, 2, res.RedirectCount, "chain truncated at the repeated URL")
		assert.Equal(t, ts.URL+"/loop-a", res.FinalURL)
	})

	t.Run("Too Many Redirects", func(t *testing.T) {
		res, final, err := tr.Trace(ctx, ts.URL+"/endless/", 3, false)
		require.NoError(t, err)
		assert.Nil(t, final)
		assert.Equal(t, model.TraceErrTooManyRedirects, res.Error)
		assert.Equal(t, 3, res.RedirectCount, "chain length stays within the bound")
	})

	t.Run("Deterministic For Fixed Responses", func(t *testing.T) {
		first, _, err := tr.Trace(ctx, ts.URL+"/two-hop", 10, false)
		require.NoError(t, err)
		second, _, err := tr.Trace(ctx, ts.URL+"/two-hop", 10, false)
		require.NoError(t, err)
		assert.Equal(t, first.Chain, second.Chain)
		assert.Equal(t, first.Pattern, second.Pattern)
	})

	t.Run("Headers Captured On Request", func(t *testing.T) {
		res, _, err := tr.Trace(ctx, ts.URL+"/one-hop", 10, true)
		require.NoError(t, err)
		require.Len(t, res.Chain, 1)
		assert.Equal(t, "/final", res.Chain[0].Headers["Location"])
	})
}

func hop(from, to string, status int) model.RedirectHop {
	return model.RedirectHop{From: from, To: to, Status: status}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		chain   []model.RedirectHop
		loop    bool
		pattern string
	}{
		{"Empty", nil, false, model.PatternNone},
		{
			"Scheme Upgrade",
			[]model.RedirectHop{hop("http://example.com/", "https://example.com/", 301)},
			false, model.PatternHTTPToHTTPS,
		},
		{
			"Add WWW",
			[]model.RedirectHop{hop("https://example.com/", "https://www.example.com/", 301)},
			false, model.PatternAddWWW,
		},
		{
			"Remove WWW",
			[]model.RedirectHop{hop("https://www.example.com/", "https://example.com/", 301)},
			false, model.PatternRemoveWWW,
		},
		{
			"Cross Host Single Hop",
			[]model.RedirectHop{hop("http://a.com/", "http://b.com/", 302)},
			false, model.PatternSimple,
		},
		{
			"Scheme And Host Change Is Not An Upgrade",
			[]model.RedirectHop{hop("http://example.com/", "https://other.com/", 301)},
			false, model.PatternSimple,
		},
		{
			"Loop Wins Over Counts",
			[]model.RedirectHop{
				hop("http://a.com/", "http://b.com/", 302),
				hop("http://b.com/", "http://c.com/", 302),
				hop("http://c.com/", "http://a.com/", 302),
			},
			true, model.PatternLoop,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.pattern, redirect.Classify(tc.chain, tc.loop))
		})
	}
}

func TestTracer_ExampleScenario(t *testing.T) {
	// http->https then https->www in two hops: no single special case matches
	// the whole chain, so the pattern falls to "multiple"; a third hop would
	// flip it to "chain".
	chain := []model.RedirectHop{
		hop("http://example.com/", "https://example.com/", 301),
		hop("https://example.com/", "https://www.example.com/", 301),
	}
	assert.Equal(t, model.PatternMultiple, redirect.Classify(chain, false))

	chain = append(chain, hop("https://www.example.com/", "https://www.example.com/home", 302))
	assert.Equal(t, model.PatternChain, redirect.Classify(chain, false))
}

func TestTracer_InvalidInput(t *testing.T) {
	tr := newTracer()
	_, _, err := tr.Trace(context.Background(), "no-scheme.example", 10, false)
	require.Error(t, err)
	assert.Contains(t, fmt.Sprintf("%v", err), "scheme")
}
