package main

import (
	"context"
	"errors"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

type shutdownFunc func(context.Context) error

// initTelemetry starts the OTel providers enabled in cfg and registers the
// calculator's instruments. The returned function flushes and stops them.
func initTelemetry(ctx context.Context, cfg *config.Config, store *calculator.Store) (shutdownFunc, error) {
	var shutdowns []shutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.OTelTracing {
		s, err := observability.InitTracing(ctx, cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.OTelMetrics {
		s, err := observability.InitMetrics(ctx, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.OTelLogs {
		s, err := observability.InitLogging(ctx, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, s)
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	if err := calculator.RegisterSessionGauge(observability.Registry, store); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
