package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/service"
)

// CrawlHandler exposes the multi-page and single-page crawl endpoints.
type CrawlHandler struct {
	crawlService service.CrawlService
}

// NewCrawlHandler creates a new CrawlHandler.
func NewCrawlHandler(svc service.CrawlService) *CrawlHandler {
	return &CrawlHandler{crawlService: svc}
}

// @Summary Crawl a website breadth-first
// @Tags    crawl
// @Accept  json
// @Produce json
// @Param   input body model.CrawlRequest true "crawl parameters"
// @Success 200 {object} model.CrawlResult
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/crawl/website [post]
func (h *CrawlHandler) Website(c *gin.Context) {
	var in model.CrawlRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.crawlService.CrawlWebsite(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Crawl a single page
// @Tags    crawl
// @Accept  json
// @Produce json
// @Param   input body model.PageRequest true "page parameters"
// @Success 200 {object} model.PageResult
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/crawl/page [post]
func (h *CrawlHandler) Page(c *gin.Context) {
	var in model.PageRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.crawlService.CrawlPage(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterRoutes mounts the crawl endpoints on the given router group.
func (h *CrawlHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/crawl/website", h.Website)
	rg.POST("/crawl/page", h.Page)
}
