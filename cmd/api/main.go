package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sourcegraph/conc"

	"github.com/L3Technosmith/pkmnFoundations/internal/app"
	"github.com/L3Technosmith/pkmnFoundations/internal/config"
	"github.com/L3Technosmith/pkmnFoundations/internal/observability"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	telemetry, err := observability.Start(cfg, logger)
	if err != nil {
		logger.Error("start telemetry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := app.NewServices(ctx, cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		os.Exit(1)
	}
	srv, err := app.NewHTTPServer(cfg, svc, logger)
	if err != nil {
		logger.Error("build http server", "error", err)
		os.Exit(1)
	}

	scheduler, err := startStatsJob(ctx, cfg, svc.Stats, logger)
	if err != nil {
		logger.Error("start stats job", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "storage_driver", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	})
	wg.Go(func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Warn("stop scheduler", "error", err)
		}
	})
	wg.Wait()

	// stores close after every request has drained
	if err := svc.Close(); err != nil {
		logger.Warn("close storage", "error", err)
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Warn("stop telemetry", "error", err)
	}

	logger.Info("http server stopped")
}

// startStatsJob logs store stats every STATS_INTERVAL. A slow collection delays the next run rather than overlapping it.
func startStatsJob(ctx context.Context, cfg config.Config, stats *usecase.StatsService, logger *logging.Logger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.StatsInterval),
		gocron.NewTask(func() {
			stats.Report(ctx)
		}),
		gocron.WithName("stats"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}

	scheduler.Start()
	logger.Info("stats job scheduled", "interval", cfg.StatsInterval.String())
	return scheduler, nil
}
