package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/crawltorch-api/internal/model"
	"github.com/fuzumoe/crawltorch-api/internal/service"
)

// ExtractHandler exposes the single-page extraction endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(svc service.ExtractService) *ExtractHandler {
	return &ExtractHandler{extractService: svc}
}

// @Summary Extract all links from a page
// @Tags    extract
// @Accept  json
// @Produce json
// @Param   input body model.LinksRequest true "target page"
// @Success 200 {object} model.LinkList
// @Failure 400 {object} map[string]string "error"
// @Failure 429 {object} map[string]any "rate limit exceeded"
// @Router  /api/v1/extract/links [post]
func (h *ExtractHandler) Links(c *gin.Context) {
	var in model.LinksRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.extractService.Links(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Extract document links grouped by type
// @Tags    extract
// @Accept  json
// @Produce json
// @Param   input body model.DocumentsRequest true "target page"
// @Success 200 {object} model.DocumentList
// @Failure 400 {object} map[string]string "error"
// @Router  /api/v1/extract/documents [post]
func (h *ExtractHandler) Documents(c *gin.Context) {
	var in model.DocumentsRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.extractService.Documents(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Extract images from a page
// @Tags    extract
// @Accept  json
// @Produce json
// @Param   input body model.PageTargetRequest true "target page"
// @Success 200 {object} model.ImageList
// @Failure 400 {object} map[string]string "error"
// @Router  /api/v1/extract/images [post]
func (h *ExtractHandler) Images(c *gin.Context) {
	var in model.PageTargetRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.extractService.Images(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Extract headings from a page
// @Tags    extract
// @Accept  json
// @Produce json
// @Param   input body model.PageTargetRequest true "target page"
// @Success 200 {object} model.HeadingList
// @Failure 400 {object} map[string]string "error"
// @Router  /api/v1/extract/headings [post]
func (h *ExtractHandler) Headings(c *gin.Context) {
	var in model.PageTargetRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.extractService.Headings(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Extract tables from a page
// @Tags    extract
// @Accept  json
// @Produce json
// @Param   input body model.PageTargetRequest true "target page"
// @Success 200 {object} model.TableList
// @Failure 400 {object} map[string]string "error"
// @Router  /api/v1/extract/tables [post]
func (h *ExtractHandler) Tables(c *gin.Context) {
	var in model.PageTargetRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.extractService.Tables(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Page metadata (title, meta, OpenGraph, Twitter)
// @Tags    page
// @Accept  json
// @Produce json
// @Param   input body model.PageTargetRequest true "target page"
// @Success 200 {object} model.MetadataResult
// @Failure 400 {object} map[string]string "error"
// @Router  /api/v1/page/metadata [post]
func (h *ExtractHandler) Metadata(c *gin.Context) {
	var in model.PageTargetRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.extractService.Metadata(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Search for a term in a page's readable text
// @Tags    page
// @Accept  json
// @Produce json
// @Param   input body model.SearchRequest true "search parameters"
// @Success 200 {object} model.SearchResult
// @Failure 400 {object} map[string]string "error"
// @Router  /api/v1/page/search [post]
func (h *ExtractHandler) Search(c *gin.Context) {
	var in model.SearchRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	res, err := h.extractService.Search(c.Request.Context(), &in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RegisterRoutes mounts the extraction endpoints on the given router group.
func (h *ExtractHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract/links", h.Links)
	rg.POST("/extract/documents", h.Documents)
	rg.POST("/extract/images", h.Images)
	rg.POST("/extract/headings", h.Headings)
	rg.POST("/extract/tables", h.Tables)
	rg.POST("/page/metadata", h.Metadata)
	rg.POST("/page/search", h.Search)
}
