package calculator

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments. They start as no-ops and are replaced by InitMetrics.
var (
	keysCounter     metric.Int64Counter       = noop.Int64Counter{}
	opsCounter      metric.Int64Counter       = noop.Int64Counter{}
	opsHistogram    metric.Float64Histogram   = noop.Float64Histogram{}
	errorCounter    metric.Int64Counter       = noop.Int64Counter{}
	resultGauge     metric.Float64Gauge       = noop.Float64Gauge{}
	sessionsCounter metric.Int64UpDownCounter = noop.Int64UpDownCounter{}
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	return initInstruments(otel.Meter("calculator"))
}

func initInstruments(meter metric.Meter) error {
	var err error

	keysCounter, err = meter.Int64Counter("calculator.keys.total",
		metric.WithDescription("Total number of keypad presses applied to calculators"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return fmt.Errorf("creating keys counter: %w", err)
	}

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of binary operations evaluated"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator requests in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors, including Error displays"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	sessionsCounter, err = meter.Int64UpDownCounter("calculator.sessions.active",
		metric.WithDescription("Number of live calculator sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating sessions counter: %w", err)
	}

	return nil
}

// RegisterSessionGauge exposes the store size on a Prometheus registry.
func RegisterSessionGauge(reg prometheus.Registerer, store *Store) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "calculator_sessions",
		Help: "Number of live calculator sessions.",
	}, func() float64 {
		return float64(store.Len())
	})
	if err := reg.Register(gauge); err != nil {
		return fmt.Errorf("registering session gauge: %w", err)
	}
	return nil
}

func operationAttrs(name string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("operation", name))
}

func recordKey(ctx context.Context, k Key) {
	keysCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("key", k.String())))
}

func recordEvictions(ctx context.Context, n int) {
	sessionsCounter.Add(ctx, -int64(n))
}
