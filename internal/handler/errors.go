package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/crawltorch-api/internal/crawler"
	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/urlutil"
)

// respondErr maps engine errors to HTTP responses. Rate-limit rejection uses
// one uniform body everywhere so batch callers can detect it and back off.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fetcher.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":  "Rate limit exceeded",
			"status": http.StatusTooManyRequests,
		})
	case errors.Is(err, urlutil.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, crawler.ErrBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, fetcher.ErrUnreachable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
