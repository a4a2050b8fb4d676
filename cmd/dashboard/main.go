package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocjay1/wire-dashboard/internal/charts"
	"github.com/rocjay1/wire-dashboard/internal/config"
	"github.com/rocjay1/wire-dashboard/internal/csvparse"
	"github.com/rocjay1/wire-dashboard/internal/handler"
	"github.com/rocjay1/wire-dashboard/internal/pipeline"
	"github.com/rocjay1/wire-dashboard/internal/server"
	"github.com/rocjay1/wire-dashboard/internal/source"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	if err := run(); err != nil {
		slog.Error("dashboard stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	slog.Info("configuration loaded",
		"port", cfg.HTTPPort,
		"source", fmt.Sprint(src),
		"transaction_files", cfg.Data.TransactionFiles,
		"limit_file", cfg.Data.LimitFile,
	)

	loader := pipeline.NewLoader(src,
		pipeline.Inputs{TransactionFiles: cfg.Data.TransactionFiles, LimitFile: cfg.Data.LimitFile},
		csvparse.Options{Delimiter: cfg.DelimiterRune(), DateLayouts: cfg.Data.DateLayouts},
	)

	deps := &handler.Dependencies{
		Reports: loader,
		Charts:  charts.NewRenderer(),
	}

	srv := server.NewServer(cfg.HTTPPort)
	deps.Routes(srv.Router)

	// Warm the cache so input problems show up in the startup logs.
	if _, err := loader.Load(context.Background()); err != nil {
		slog.Warn("initial data load failed, the dashboard will show the error", "error", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr())
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-shutdown:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func newSource(cfg *config.Config) (source.Source, error) {
	if !cfg.UseBlob() {
		return source.NewFileSource(cfg.Data.Dir), nil
	}
	blob, err := source.NewBlobSource(cfg.Blob.ServiceURL, cfg.Blob.Container)
	if err != nil {
		return nil, fmt.Errorf("failed to init blob source: %w", err)
	}
	return blob, nil
}
