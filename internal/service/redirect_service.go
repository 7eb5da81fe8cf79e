package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/redirect"
)

// RedirectService backs the redirect diagnostics endpoints.
type RedirectService interface {
	Check(ctx context.Context, req *model.CheckRequest) (*model.CheckResult, error)
	Trace(ctx context.Context, req *model.TraceRequest) (*model.TraceResult, error)
	Chain(ctx context.Context, req *model.ChainRequest) (*model.TraceResult, error)
}

type redirectService struct {
	fetch *fetcher.Fetcher
	trace *redirect.Tracer
}

// NewRedirectService constructs a RedirectService.
func NewRedirectService(f *fetcher.Fetcher, t *redirect.Tracer) RedirectService {
	return &redirectService{fetch: f, trace: t}
}

// Check probes a URL. With redirects followed, accessibility means the chain
// resolved to a non-error response; without, any answered status counts.
func (s *redirectService) Check(ctx context.Context, req *model.CheckRequest) (*model.CheckResult, error) {
	follow := req.FollowRedirects == nil || *req.FollowRedirects

	if !follow {
		res, err := s.fetch.Fetch(ctx, req.URL, false)
		if err != nil {
			return s.failedCheck(req.URL, err)
		}
		return &model.CheckResult{
			URL:        req.URL,
			Accessible: res.StatusCode < http.StatusBadRequest,
			StatusCode: res.StatusCode,
			FinalURL:   res.FinalURL,
			ElapsedMS:  res.Elapsed.Milliseconds(),
		}, nil
	}

	tr, final, err := s.trace.Trace(ctx, req.URL, req.MaxRedirects, false)
	if err != nil {
		return nil, err
	}
	out := &model.CheckResult{
		URL:           req.URL,
		StatusCode:    tr.FinalStatus,
		FinalURL:      tr.FinalURL,
		RedirectCount: tr.RedirectCount,
		ElapsedMS:     tr.ElapsedMS,
		Error:         tr.Error,
	}
	if tr.LoopDetected {
		out.Error = model.PatternLoop
	}
	out.Accessible = final != nil && final.StatusCode < http.StatusBadRequest
	return out, nil
}

func (s *redirectService) failedCheck(rawURL string, err error) (*model.CheckResult, error) {
	if errors.Is(err, fetcher.ErrUnreachable) {
		return &model.CheckResult{URL: rawURL, Error: model.TraceErrUnreachable}, nil
	}
	return nil, err
}

// Trace follows a URL's redirect chain and classifies the pattern.
func (s *redirectService) Trace(ctx context.Context, req *model.TraceRequest) (*model.TraceResult, error) {
	tr, _, err := s.trace.Trace(ctx, req.URL, req.MaxRedirects, false)
	return tr, err
}

// Chain is Trace with per-hop response headers included.
func (s *redirectService) Chain(ctx context.Context, req *model.ChainRequest) (*model.TraceResult, error) {
	tr, _, err := s.trace.Trace(ctx, req.URL, req.MaxRedirects, req.IncludeHeaders)
	return tr, err
}
