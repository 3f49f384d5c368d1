// Command cleanup removes weather cache entries older than the configured
// retention. It is intended to be invoked by an external scheduler, not as
// an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ycsite/siteops/internal/app"
	"github.com/ycsite/siteops/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	// Pruning must never seed demonstration data into a fresh store.
	cfg.Store.Seed = false

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close() //nolint:errcheck

	deleted, err := a.Weather.PruneCache(ctx)
	if err != nil {
		logger.Error("prune weather cache failed", slog.String("error", err.Error()))
		a.Close() //nolint:errcheck
		os.Exit(1)
	}

	logger.Info("prune weather cache completed",
		slog.Int64("deleted", deleted),
		slog.Duration("retention", cfg.Weather.Retention),
	)
}
