package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/crawltorch-api/internal/service"
)

// HealthHandler provides the limiter status endpoint.
type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(hs service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: hs}
}

// @Summary Shared rate limiter status
// @Tags    health
// @Produce json
// @Success 200 {object} service.RateStatus
// @Router  /api/v1/limits [get]
func (h *HealthHandler) Limits(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.Limits())
}

// RegisterRoutes mounts the health endpoints on the given router group.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/limits", h.Limits)
}
