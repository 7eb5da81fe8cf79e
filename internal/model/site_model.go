package model

// RobotsInfo is the parsed content of a site's robots.txt. A missing file
// yields the zero value, which means "no restrictions stated".
type RobotsInfo struct {
	URL        string   `json:"url"`
	Exists     bool     `json:"exists"`
	UserAgents []string `json:"user_agents"`
	Disallowed []string `json:"disallowed"`
	Allowed    []string `json:"allowed"`
	Sitemaps   []string `json:"sitemaps"`
	CrawlDelay float64  `json:"crawl_delay,omitempty"`
}

// SitemapResult lists the URLs collected from a sitemap (or sitemap index).
type SitemapResult struct {
	SitemapURL string   `json:"sitemap_url"`
	URLs       []string `json:"urls"`
	URLCount   int      `json:"url_count"`
	Truncated  bool     `json:"truncated,omitempty"`
}
