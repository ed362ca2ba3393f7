// Package main is the entry point for catalogd, the product document store.
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

	"github.com/vitrinelabs/vitrine/internal/logger"
	"github.com/vitrinelabs/vitrine/internal/products"
)

func main() {
	cfg, err := products.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Vitrine Catalogd ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := products.OpenStore(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open store", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	if cfg.SeedFile != "" {
		inserted, err := products.SeedFromFile(ctx, store, cfg.SeedFile)
		if err != nil {
			logger.Error("seeding failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("seeded store", zap.Int("inserted", inserted), zap.String("file", cfg.SeedFile))
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: products.NewService(store, cfg.ModelsDir).Routes(),
	}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
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
	logger.Info("catalogd closed normally")
}
