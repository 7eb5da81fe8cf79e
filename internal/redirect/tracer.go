package redirect

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

// Tracer follows redirect chains one observable hop at a time.
type Tracer struct {
	fetcher    *fetcher.Fetcher
	defaultMax int
}

// New builds a tracer. defaultMax bounds chains when a caller passes 0.
func New(f *fetcher.Fetcher, defaultMax int) *Tracer {
	if defaultMax <= 0 {
		defaultMax = 10
	}
	return &Tracer{fetcher: f, defaultMax: defaultMax}
}

// Trace fetches rawURL with manual redirect handling, resolving each Location
// against the current URL until a non-redirect response, a loop, or the hop
// bound. The final non-redirect response is returned alongside the result so
// a crawl can reuse its body; it is nil when the chain never completed.
//
// Transport failures mid-chain are recorded on the result, not returned:
// only invalid input and rate-limit rejection surface as errors.
func (t *Tracer) Trace(ctx context.Context, rawURL string, maxRedirects int, includeHeaders bool) (*model.TraceResult, *fetcher.Result, error) {
	if maxRedirects <= 0 {
		maxRedirects = t.defaultMax
	}

	cur, err := urlutil.Normalize(rawURL)
	if err != nil {
		return nil, nil, err
	}

	res := &model.TraceResult{
		RequestedURL: rawURL,
		Chain:        []model.RedirectHop{},
	}
	seen := map[string]struct{}{urlutil.Key(cur): {}}
	start := time.Now()

	var final *fetcher.Result
	for {
		fr, err := t.fetcher.Fetch(ctx, cur.String(), false)
		if err != nil {
			if errors.Is(err, fetcher.ErrRateLimited) || errors.Is(err, urlutil.ErrInvalidURL) {
				return nil, nil, err
			}
			res.Error = model.TraceErrUnreachable
			res.FinalURL = cur.String()
			break
		}

		loc := fr.Headers.Get("Location")
		if !isRedirect(fr.StatusCode) || loc == "" {
			final = fr
			res.FinalStatus = fr.StatusCode
			res.FinalURL = cur.String()
			break
		}

		next, err := urlutil.Resolve(cur, loc)
		if err != nil {
			// Unresolvable Location header: the 3xx response is as far as
			// this chain goes.
			final = fr
			res.FinalStatus = fr.StatusCode
			res.FinalURL = cur.String()
			break
		}

		if len(res.Chain) >= maxRedirects {
			res.Error = model.TraceErrTooManyRedirects
			res.FinalURL = cur.String()
			break
		}

		hop := model.RedirectHop{
			From:        cur.String(),
			To:          next.String(),
			Status:      fr.StatusCode,
			IsPermanent: fr.StatusCode == http.StatusMovedPermanently || fr.StatusCode == http.StatusPermanentRedirect,
		}
		if includeHeaders {
			hop.Headers = flattenHeaders(fr.Headers)
		}
		res.Chain = append(res.Chain, hop)

		if _, ok := seen[urlutil.Key(next)]; ok {
			res.LoopDetected = true
			res.FinalURL = next.String()
			break
		}
		seen[urlutil.Key(next)] = struct{}{}
		cur = next
	}

	res.RedirectCount = len(res.Chain)
	res.Pattern = Classify(res.Chain, res.LoopDetected)
	res.ElapsedMS = time.Since(start).Milliseconds()
	return res, final, nil
}

// Classify names the intent of a completed chain. Priority order matters:
// the single-hop canonicalization shapes win over the generic counts.
func Classify(chain []model.RedirectHop, loopDetected bool) string {
	switch {
	case len(chain) == 0:
		return model.PatternNone
	case len(chain) == 1 && isSchemeUpgrade(chain[0]):
		return model.PatternHTTPToHTTPS
	case len(chain) == 1 && isWWWChange(chain[0], true):
		return model.PatternAddWWW
	case len(chain) == 1 && isWWWChange(chain[0], false):
		return model.PatternRemoveWWW
	case loopDetected:
		return model.PatternLoop
	case len(chain) >= 3:
		return model.PatternChain
	case len(chain) == 2:
		return model.PatternMultiple
	default:
		return model.PatternSimple
	}
}

func isRedirect(status int) bool {
	return status >= 300 && status <= 399
}

// isSchemeUpgrade reports an http->https hop with nothing else changed.
func isSchemeUpgrade(h model.RedirectHop) bool {
	from, to, ok := parseHop(h)
	if !ok {
		return false
	}
	return from.Scheme == "http" && to.Scheme == "https" &&
		from.Hostname() == to.Hostname() &&
		samePathQuery(from, to)
}

// isWWWChange reports a hop whose hosts differ only by a www. prefix.
func isWWWChange(h model.RedirectHop, added bool) bool {
	from, to, ok := parseHop(h)
	if !ok {
		return false
	}
	if from.Scheme != to.Scheme || !samePathQuery(from, to) {
		return false
	}
	if added {
		return to.Hostname() == "www."+from.Hostname()
	}
	return from.Hostname() == "www."+to.Hostname()
}

func parseHop(h model.RedirectHop) (from, to *url.URL, ok bool) {
	from, errF := url.Parse(h.From)
	to, errT := url.Parse(h.To)
	return from, to, errF == nil && errT == nil
}

func samePathQuery(a, b *url.URL) bool {
	pa := strings.TrimSuffix(a.Path, "/")
	pb := strings.TrimSuffix(b.Path, "/")
	return pa == pb && a.RawQuery == b.RawQuery
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
