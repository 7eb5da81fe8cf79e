package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/fuzumoe/crawltorch-api/docs"
)

// RouteRegistrar defines anything that can wire its routes into a Gin group.
type RouteRegistrar interface {
	// RegisterRoutes should add one or more routes on the provided router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegisterRoutes wires up the welcome, health, swagger, and API v1 routes.
func RegisterRoutes(r *gin.Engine, regs []RouteRegistrar) {
	// Global middleware
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the CrawlTorch API!"})
	})
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	api := r.Group("/api/v1")
	for _, reg := range regs {
		reg.RegisterRoutes(api)
	}
}
