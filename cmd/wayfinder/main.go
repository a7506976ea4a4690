package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"wayfinder.openmobility.org/internal/app"
	"wayfinder.openmobility.org/internal/config"
	"wayfinder.openmobility.org/internal/report"
)

const version = "1.0.0"

func main() {
	var (
		port = flag.Int("port", 4000, "API server port")
		env  = flag.String("env", "development", "Environment (development|staging|production)")

		dataDir = flag.String("data-dir", "", "Path to a local dataset directory")
		dataURL = flag.String("data-url", "", "Base URL of a remote dataset host")
		gtfsURL = flag.String("gtfs-url", "", "Optional GTFS static bundle URL replacing the transit stop collection")

		refreshInterval = flag.Duration("refresh-interval", time.Hour, "Remote dataset refresh interval")
	)
	flag.Parse()

	if err := config.ValidateDataFlags(dataDir, dataURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}
	if err := config.ValidateEnv(*env); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	report.SetupSentry()
	defer report.FlushSentry()
	report.ConfigureScope(*env, version)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := config.NewConfig(*port, *env)
	cfg.DataDir = *dataDir
	cfg.DataURL = *dataURL
	cfg.GTFSURL = *gtfsURL
	cfg.RefreshInterval = *refreshInterval
	cfg.SetDataAuth(os.Getenv("DATA_AUTH_USER"), os.Getenv("DATA_AUTH_PASS"))

	application := app.New(cfg, logger, app.NewPooledClient(), version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DataDir != "" {
		if err := application.DatasetService.LoadFromDir(cfg.DataDir); err != nil {
			logger.Error("Failed to load dataset", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
	} else {
		if err := application.DatasetService.LoadFromURL(ctx, cfg.DataURL); err != nil {
			logger.Error("Failed to load dataset", "url", cfg.DataURL, "error", err)
			os.Exit(1)
		}
		go application.DatasetService.RefreshPeriodically(ctx, cfg.DataURL, cfg.RefreshInterval)
	}

	if cfg.GTFSURL != "" {
		if err := application.DatasetService.ImportGTFSStatic(ctx, cfg.GTFSURL); err != nil {
			// The JSON stop collection still serves; run degraded.
			logger.Error("Failed to import GTFS bundle", "url", cfg.GTFSURL, "error", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		logger.Info("server stopped")
		return
	}
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}
