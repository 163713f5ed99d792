package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/scorecard/internal/adapters/http/api"
	app "github.com/okian/scorecard/internal/app"
	"github.com/okian/scorecard/internal/config"
	"github.com/okian/scorecard/internal/domain/layout"
	"github.com/okian/scorecard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout        = 10 * time.Second
	writeTimeout       = 30 * time.Second
	idleTimeout        = 60 * time.Second
	readHeaderTimeout  = 5 * time.Second
	shutdownTimeout    = 30 * time.Second
	cacheStatsInterval = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithAssetBaseURL(cfg.AssetBaseURL),
		app.WithAssetVersion(cfg.AssetVersion),
		app.WithCacheDir(cfg.CacheDir),
		app.WithRenderConcurrency(cfg.RenderConcurrency),
		app.WithRenderTimeout(cfg.RenderTimeout),
		app.WithAdmissionWait(cfg.AdmissionWait),
		app.WithGeometry(layout.Geometry{
			Width:              cfg.ImageWidth,
			HeaderHeight:       cfg.HeaderHeight,
			TeamHeaderHeight:   cfg.TeamHeaderHeight,
			ColumnHeaderHeight: cfg.ColumnHeaderHeight,
			RowHeight:          cfg.RowHeight,
			TeamSpacing:        cfg.TeamSpacing,
			BottomPadding:      cfg.BottomPadding,
			MainSlots:          cfg.MainItemSlots,
		}),
		app.WithSweepInterval(cfg.CacheSweepInterval),
		app.WithCacheMaxAge(cfg.CacheMaxAge),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Keep the cache size gauges fresh for scrapes.
	go startCacheStatsUpdater(ctx, svc)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startCacheStatsUpdater refreshes cache gauges on a fixed interval; Stats
// updates the Prometheus gauges as a side effect.
func startCacheStatsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(cacheStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = svc.CacheStats(ctx)
		}
	}
}
