// Package main is the entry point for the Vitrine viewer service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vitrinelabs/vitrine/internal/assets"
	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/config"
	"github.com/vitrinelabs/vitrine/internal/logger"
	"github.com/vitrinelabs/vitrine/internal/server"
	"github.com/vitrinelabs/vitrine/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Vitrine Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is fetched exactly once; a failure becomes the app's
	// blocking error state rather than a retry loop.
	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.FetchTimeout)
	items, err := catalog.FetchProducts(fetchCtx, cfg.Catalog.BaseURL)
	cancel()
	if err != nil {
		logger.Warn("catalog fetch failed", zap.Error(err))
	}
	cat := catalog.New(items, err)

	fetcher := assets.NewHTTPFetcher(cfg.Catalog.ModelTimeout, int64(cfg.Catalog.MaxModelMB)<<20)
	manager := assets.NewManager(fetcher)

	app := viewer.New(cat, manager, nil, viewer.Options{
		TargetSize: cfg.Viewer.TargetSize,
		MinScale:   cfg.Viewer.MinScale,
		MaxScale:   cfg.Viewer.MaxScale,
	})
	hub := server.NewHub(app.Inbox())
	app.SetPublisher(hub)

	go app.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Routes(hub),
	}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("viewer closed normally")
}
