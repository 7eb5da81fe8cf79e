package service

import (
	"context"
	"net/url"

	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/parser"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

// ExtractService backs the single-page extraction endpoints. Each call is
// one rate-limited fetch followed by best-effort parsing.
type ExtractService interface {
	Links(ctx context.Context, req *model.LinksRequest) (*model.LinkList, error)
	Documents(ctx context.Context, req *model.DocumentsRequest) (*model.DocumentList, error)
	Images(ctx context.Context, req *model.PageTargetRequest) (*model.ImageList, error)
	Headings(ctx context.Context, req *model.PageTargetRequest) (*model.HeadingList, error)
	Tables(ctx context.Context, req *model.PageTargetRequest) (*model.TableList, error)
	Metadata(ctx context.Context, req *model.PageTargetRequest) (*model.MetadataResult, error)
	Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResult, error)
}

type extractService struct {
	fetch   *fetcher.Fetcher
	checker *fetcher.LinkChecker
}

// NewExtractService constructs an ExtractService.
func NewExtractService(f *fetcher.Fetcher, c *fetcher.LinkChecker) ExtractService {
	return &extractService{fetch: f, checker: c}
}

// fetchParsed fetches a page (following redirects) and parses it against its
// final URL.
func (s *extractService) fetchParsed(ctx context.Context, rawURL string) (*model.ParsedPage, *url.URL, []byte, error) {
	res, err := s.fetch.Fetch(ctx, rawURL, true)
	if err != nil {
		return nil, nil, nil, err
	}
	base, err := urlutil.Normalize(res.FinalURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return parser.Parse(res.Body, base), base, res.Body, nil
}

func (s *extractService) Links(ctx context.Context, req *model.LinksRequest) (*model.LinkList, error) {
	parsed, base, _, err := s.fetchParsed(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	out := &model.LinkList{URL: req.URL, Links: []model.Link{}}
	for _, l := range parsed.Links {
		u, err := urlutil.Normalize(l.Href)
		if err != nil {
			continue
		}
		if req.FilterDomain != "" && u.Hostname() != req.FilterDomain {
			continue
		}
		if req.AbsoluteURLs != nil && !*req.AbsoluteURLs && urlutil.SameHost(base, u) {
			l.Href = u.RequestURI()
		}
		out.Links = append(out.Links, l)
		if l.IsExternal {
			out.ExternalCount++
		} else {
			out.InternalCount++
		}
	}
	if req.CheckStatus {
		out.Links = s.checker.Run(ctx, out.Links)
	}
	out.Count = len(out.Links)
	return out, nil
}

func (s *extractService) Documents(ctx context.Context, req *model.DocumentsRequest) (*model.DocumentList, error) {
	parsed, base, _, err := s.fetchParsed(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(req.DocumentTypes))
	for _, t := range req.DocumentTypes {
		wanted[t] = struct{}{}
	}
	relative := req.AbsoluteURLs != nil && !*req.AbsoluteURLs

	out := &model.DocumentList{URL: req.URL, Documents: map[string][]model.DocumentLink{}}
	for typ, docs := range parsed.DocumentLinks {
		if len(wanted) > 0 {
			if _, ok := wanted[typ]; !ok {
				continue
			}
		}
		if relative {
			rel := make([]model.DocumentLink, len(docs))
			copy(rel, docs)
			for i := range rel {
				if u, err := urlutil.Normalize(rel[i].Href); err == nil && urlutil.SameHost(base, u) {
					rel[i].Href = u.RequestURI()
				}
			}
			docs = rel
		}
		out.Documents[typ] = docs
		out.Count += len(docs)
	}
	return out, nil
}

func (s *extractService) Images(ctx context.Context, req *model.PageTargetRequest) (*model.ImageList, error) {
	parsed, _, _, err := s.fetchParsed(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return &model.ImageList{URL: req.URL, Images: parsed.Images, Count: len(parsed.Images)}, nil
}

func (s *extractService) Headings(ctx context.Context, req *model.PageTargetRequest) (*model.HeadingList, error) {
	parsed, _, _, err := s.fetchParsed(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return &model.HeadingList{
		URL:       req.URL,
		Headings:  parsed.Headings,
		Hierarchy: parser.Hierarchy(parsed.Headings),
		Count:     len(parsed.Headings),
	}, nil
}

func (s *extractService) Tables(ctx context.Context, req *model.PageTargetRequest) (*model.TableList, error) {
	parsed, _, _, err := s.fetchParsed(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return &model.TableList{URL: req.URL, Tables: parsed.Tables, Count: len(parsed.Tables)}, nil
}

func (s *extractService) Metadata(ctx context.Context, req *model.PageTargetRequest) (*model.MetadataResult, error) {
	parsed, _, _, err := s.fetchParsed(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	return &model.MetadataResult{URL: req.URL, Metadata: parsed.Metadata}, nil
}

func (s *extractService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResult, error) {
	req.Clamp()
	_, _, body, err := s.fetchParsed(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	text := parser.Text(body)
	matches, truncated := parser.Search(text, req.SearchTerm, req.CaseSensitive, req.ContextChars)
	return &model.SearchResult{
		URL:        req.URL,
		SearchTerm: req.SearchTerm,
		Matches:    matches,
		Count:      len(matches),
		Truncated:  truncated,
	}, nil
}
