package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/service"
)

// RedirectHandler exposes the redirect diagnostics endpoints.
type RedirectHandler struct {
	redirectService service.RedirectService
}

// NewRedirectHandler creates a new RedirectHandler.
func NewRedirectHandler(svc service.RedirectService) *RedirectHandler {
	return &RedirectHandler{redirectService: svc}
}

// @Summary Check whether a URL is accessible
// @Tags    url
// @Accept  json
// @Produce json
// @Param   input body model.CheckRequest true "target URL"
// @Success 200 {object} model.CheckResult
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/url/check [post]
func (h *RedirectHandler) Check(c *gin.Context) {
	var in model.CheckRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.redirectService.Check(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Trace a URL's redirect chain and classify the pattern
// @Tags    url
// @Accept  json
// @Produce json
// @Param   input body model.TraceRequest true "target URL"
// @Success 200 {object} model.TraceResult
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/url/trace [post]
func (h *RedirectHandler) Trace(c *gin.Context) {
	var in model.TraceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.redirectService.Trace(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Redirect chain with optional per-hop response headers
// @Tags    url
// @Accept  json
// @Produce json
// @Param   input body model.ChainRequest true "target URL"
// @Success 200 {object} model.TraceResult
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/url/chain [post]
func (h *RedirectHandler) Chain(c *gin.Context) {
	var in model.ChainRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.redirectService.Chain(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterRoutes mounts the redirect diagnostics endpoints on the given router group.
func (h *RedirectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/url/check", h.Check)
	rg.POST("/url/trace", h.Trace)
	rg.POST("/url/chain", h.Chain)
}
