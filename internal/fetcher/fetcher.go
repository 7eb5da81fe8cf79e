package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fuzumoe/crawltorch-api/internal/ratelimit"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

var (
	// ErrRateLimited means the shared limiter rejected the request before any
	// network I/O happened.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnreachable means the target did not answer (timeout, DNS failure,
	// refused connection). No partial body is ever returned with it.
	ErrUnreachable = errors.New("target unreachable")
)

// Result is one HTTP response. FinalURL differs from the requested URL only
// when redirects were followed.
type Result struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	FinalURL   string
	Elapsed    time.Duration
}

// Fetcher issues single HTTP requests through the shared rate limiter. The
// manual mode stops at the first response so each redirect hop can be
// observed by the tracer.
type Fetcher struct {
	client    *http.Client
	manual    *http.Client
	limiter   *ratelimit.Limiter
	userAgent string
	maxBody   int64
}

// New builds a fetcher. maxBody caps how much of a response body is read.
func New(limiter *ratelimit.Limiter, timeout time.Duration, userAgent string, maxBody int64) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxBody <= 0 {
		maxBody = 2 << 20
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		manual: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter:   limiter,
		userAgent: userAgent,
		maxBody:   maxBody,
	}
}

// Fetch performs one GET. With followRedirects false a 3xx response is
// returned as-is and the caller inspects Location. The limiter is consulted
// before anything touches the network.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, followRedirects bool) (*Result, error) {
	u, err := urlutil.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	if !f.limiter.Admit() {
		return nil, ErrRateLimited
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", urlutil.ErrInvalidURL, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	client := f.client
	if !followRedirects {
		client = f.manual
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
		Elapsed:    time.Since(start),
	}, nil
}

// Limiter exposes the shared limiter for status reporting.
func (f *Fetcher) Limiter() *ratelimit.Limiter { return f.limiter }
