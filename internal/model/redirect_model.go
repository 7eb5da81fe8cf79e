package model

// Redirect pattern values, in classification priority order.
const (
	PatternNone        = "none"
	PatternHTTPToHTTPS = "http_to_https"
	PatternAddWWW      = "add_www"
	PatternRemoveWWW   = "remove_www"
	PatternLoop        = "loop_detected"
	PatternChain       = "chain"
	PatternMultiple    = "multiple"
	PatternSimple      = "simple"
)

// Trace error values recorded on a TraceResult.
const (
	TraceErrTooManyRedirects = "too_many_redirects"
	TraceErrUnreachable      = "unreachable"
)

// RedirectHop is a single step in a redirect chain.
type RedirectHop struct {
	From        string            `json:"from"`
	To          string            `json:"to"`
	Status      int               `json:"status"`
	IsPermanent bool              `json:"is_permanent"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// TraceResult is the outcome of following a URL's redirect chain hop by hop.
type TraceResult struct {
	RequestedURL  string        `json:"requested_url"`
	FinalURL      string        `json:"final_url"`
	FinalStatus   int           `json:"final_status,omitempty"`
	RedirectCount int           `json:"redirect_count"`
	Chain         []RedirectHop `json:"chain"`
	Pattern       string        `json:"pattern"`
	LoopDetected  bool          `json:"loop_detected,omitempty"`
	ElapsedMS     int64         `json:"elapsed_ms"`
	Error         string        `json:"error,omitempty"`
}

// CheckResult reports whether a URL answers successfully.
type CheckResult struct {
	URL           string `json:"url"`
	Accessible    bool   `json:"accessible"`
	StatusCode    int    `json:"status_code,omitempty"`
	FinalURL      string `json:"final_url,omitempty"`
	RedirectCount int    `json:"redirect_count"`
	ElapsedMS     int64  `json:"elapsed_ms"`
	Error         string `json:"error,omitempty"`
}
