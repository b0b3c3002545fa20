package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// maxBodyBytes bounds every calculator request body.
const maxBodyBytes = 64 << 10

// decodeBody reads a size-limited JSON body into v. The returned status is
// 413 when the body is too large and 400 for any other decode failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) (int, error) {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return http.StatusOK, nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, err
	}
	return http.StatusBadRequest, err
}

// ---------------------------------------------------------------------------
// Handlers: binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func Add(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpAdd)
}

// Subtract handles POST /calculator/subtract
func Subtract(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpSubtract)
}

// Multiply handles POST /calculator/multiply
func Multiply(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpMultiply)
}

// Divide handles POST /calculator/divide. Division by zero is a 400.
func Divide(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpDivide)
}

// handleBinaryOp evaluates a single operator with the engine's arithmetic and
// renders the result the way the calculator display would.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op Operator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := op.Name()

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if status, err := decodeBody(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, status, w)
		return
	}

	if math.IsNaN(req.A) || math.IsInf(req.A, 0) || math.IsNaN(req.B) || math.IsInf(req.B, 0) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", fmt.Errorf("a=%g b=%g", req.A, req.B), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", req.A),
		attribute.Float64("calculator.operand.b", req.B),
	)

	start := time.Now()
	result, err := op.Apply(req.A, req.B)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	attrs := operationAttrs(opName)
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.A),
		zap.Float64("b", req.B),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
		Display:   FormatNumber(result),
	})
}

// ---------------------------------------------------------------------------
// Handler: stateless key replay
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate. It presses the given keys on a
// fresh calculator, one child span per key, and returns the display after
// every key. An Error display is a normal result, not a failed request.
func Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req KeysRequest
	if status, err := decodeBody(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, status, w)
		return
	}

	keys, err := req.ParseRequest()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys_count", len(keys)))

	start := time.Now()
	var s State
	steps := make([]Step, 0, len(keys))
	for i, k := range keys {
		s = pressTraced(ctx, i, k, s)
		steps = append(steps, Step{Key: k.String(), Display: s.Display()})
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	opsHistogram.Record(ctx, elapsed, operationAttrs("evaluate"))
	finishKeys(ctx, span, logger, "evaluate", s.Display())

	logger.Info("key sequence evaluated",
		zap.Int("keys", len(keys)),
		zap.String("display", s.Display()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Display: s.Display(),
		Steps:   steps,
	})
}

// pressTraced applies one key inside its own child span and records metrics.
func pressTraced(ctx context.Context, i int, k Key, s State) State {
	_, span := tracer.Start(ctx, fmt.Sprintf("calculator.key.%d", i),
		trace.WithAttributes(
			attribute.Int("calculator.key.index", i),
			attribute.String("calculator.key", k.String()),
			attribute.String("calculator.display.before", s.Display()),
		),
	)
	defer span.End()

	next := s.Press(k)
	recordKey(ctx, k)

	op, evaluated := s.evaluates(k)
	if evaluated {
		opsCounter.Add(ctx, 1, operationAttrs(op.Name()))
	}

	if next.Failed() && !s.Failed() {
		label := k.Kind.String()
		if evaluated {
			label = op.Name()
		}
		span.RecordError(ErrInvalidResult)
		span.SetStatus(codes.Error, ErrInvalidResult.Error())
		errorCounter.Add(ctx, 1, operationAttrs(label))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attribute.String("calculator.display.after", next.Display()))
	return next
}

// finishKeys annotates the parent span with the final display.
func finishKeys(ctx context.Context, span trace.Span, logger *zap.Logger, opName, display string) {
	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", display),
	))
	span.SetAttributes(attribute.String("calculator.display", display))
	span.SetStatus(codes.Ok, "")

	if v, err := ParseNumber(display); err == nil {
		resultGauge.Record(ctx, v, operationAttrs(opName))
	} else {
		logger.Warn("calculator shows error", zap.String("operation", opName))
	}
}
