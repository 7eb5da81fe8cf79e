package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fuzumoe/crawltorch-api/configs"
	"github.com/fuzumoe/crawltorch-api/internal/crawler"
	"github.com/fuzumoe/crawltorch-api/internal/fetcher"
	"github.com/fuzumoe/crawltorch-api/internal/handler"
	"github.com/fuzumoe/crawltorch-api/internal/ratelimit"
	"github.com/fuzumoe/crawltorch-api/internal/redirect"
	"github.com/fuzumoe/crawltorch-api/internal/server"
	"github.com/fuzumoe/crawltorch-api/internal/service"
	"github.com/fuzumoe/crawltorch-api/internal/sitemeta"
)

// hookable functions for dependency injection
var (
	LoadConfig = configs.Load
)

// Run loads config, wires the crawl engine, and serves until interrupted.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}
	gin.SetMode(cfg.ServerMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Engine: one shared limiter feeding one shared fetcher.
	limiter := ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	fetch := fetcher.New(limiter, cfg.FetchTimeout, cfg.UserAgent, cfg.MaxBodyBytes)
	checker := fetcher.NewLinkChecker(fetch, 12)
	tracer := redirect.New(fetch, cfg.MaxRedirects)
	reader := sitemeta.NewReader(fetch)

	pool := crawler.NewPool(cfg.MaxConcurrentCrawls, cfg.CrawlQueueSize)
	go pool.Start(ctx)

	// Services and handlers.
	regs := []server.RouteRegistrar{
		handler.NewCrawlHandler(service.NewCrawlService(fetch, tracer, pool)),
		handler.NewExtractHandler(service.NewExtractService(fetch, checker)),
		handler.NewRedirectHandler(service.NewRedirectService(fetch, tracer)),
		handler.NewSiteHandler(service.NewSiteService(reader)),
		handler.NewHealthHandler(service.NewHealthService(limiter)),
	}

	r := gin.New()
	server.RegisterRoutes(r, regs)

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
