package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/service"
)

// SiteHandler exposes the site metadata endpoints.
type SiteHandler struct {
	siteService service.SiteService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(svc service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: svc}
}

// @Summary Fetch and parse a site's robots.txt
// @Tags    site
// @Accept  json
// @Produce json
// @Param   input body model.PageTargetRequest true "site URL"
// @Success 200 {object} model.RobotsInfo
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/site/robots [post]
func (h *SiteHandler) Robots(c *gin.Context) {
	var in model.PageTargetRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.siteService.Robots(c.Request.Context(), in.URL)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Fetch a site's sitemap URLs
// @Tags    site
// @Accept  json
// @Produce json
// @Param   input body model.SitemapRequest true "site URL and optional sitemap location"
// @Success 200 {object} model.SitemapResult
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/site/sitemap [post]
func (h *SiteHandler) Sitemap(c *gin.Context) {
	var in model.SitemapRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.siteService.Sitemap(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterRoutes mounts the site metadata endpoints on the given router group.
func (h *SiteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/site/robots", h.Robots)
	rg.POST("/site/sitemap", h.Sitemap)
}
