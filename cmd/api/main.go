package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env never overrides the process environment.
	if err := loadDotEnv(); err != nil {
		return err
	}

	flags := pflag.NewFlagSet("api", pflag.ExitOnError)
	config.RegisterFlags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}
	cfgPath, _ := flags.GetString(config.ConfigFlag)

	cfg, err := config.Load(cfgPath, flags)
	if err != nil {
		return err
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		return err
	}
	defer observability.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := calculator.NewStore(cfg.SessionTTL, cfg.MaxSessions)

	// Tracing, metrics, log export
	telemetryShutdown, err := initTelemetry(ctx, cfg, store)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetryShutdown(shutdownCtx); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewRouter(store),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		observability.Logger.Info("server started", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return store.Run(gctx, cfg.SessionSweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		observability.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
