package calculator

import (
	"context"
	"errors"
	"net/http"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// SessionHandlers serves the stateful calculator endpoints backed by a Store.
type SessionHandlers struct {
	store *Store
}

func NewSessionHandlers(store *Store) *SessionHandlers {
	return &SessionHandlers{store: store}
}

// Create handles POST /calculator/sessions
func (h *SessionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	sess, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.create", err.Error(), err, http.StatusServiceUnavailable, w)
		return
	}
	sessionsCounter.Add(ctx, 1)

	span.SetAttributes(attribute.String("calculator.session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, newSessionResponse(sess.ID, sess.Engine.Snapshot()))
}

// Get handles GET /calculator/sessions/{id}
func (h *SessionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "calculator.session.get")
	defer span.End()

	sess, ok := h.lookup(ctx, span, w, r, "session.get")
	if !ok {
		return
	}
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(sess.ID, sess.Engine.Snapshot()))
}

// Keys handles POST /calculator/sessions/{id}/keys. All keys are validated
// before the first one is pressed, and the whole batch is applied under one
// hold of the engine lock so concurrent batches never interleave.
func (h *SessionHandlers) Keys(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "calculator.session.keys")
	defer span.End()

	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	sess, ok := h.lookup(ctx, span, w, r, "session.keys")
	if !ok {
		return
	}

	var req KeysRequest
	if status, err := decodeBody(w, r, &req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.keys", "invalid request body", err, status, w)
		return
	}

	keys, err := req.ParseRequest()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "session.keys", err.Error(), err, http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.Int("calculator.keys_count", len(keys)))

	var snap Snapshot
	sess.Engine.Update(func(s State) State {
		for i, k := range keys {
			s = pressTraced(ctx, i, k, s)
		}
		snap = s.Snapshot()
		return s
	})
	finishKeys(ctx, span, logger, "session.keys", snap.Display)

	logger.Info("session keys applied",
		zap.String("session_id", sess.ID),
		zap.Int("keys", len(keys)),
		zap.String("display", snap.Display),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, newSessionResponse(sess.ID, snap))
}

// Delete handles DELETE /calculator/sessions/{id}
func (h *SessionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.startSpan(r, "calculator.session.delete")
	defer span.End()

	id := chi.URLParam(r, "id")
	if err := h.store.Delete(id); err != nil {
		h.recordLookupError(ctx, span, w, "session.delete", err)
		return
	}
	sessionsCounter.Add(ctx, -1)
	span.SetStatus(codes.Ok, "")

	observability.LoggerWithTrace(ctx).Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandlers) startSpan(r *http.Request, name string) (context.Context, trace.Span) {
	return tracer.Start(r.Context(), name,
		trace.WithAttributes(
			attribute.String("calculator.session.id", chi.URLParam(r, "id")),
			attribute.String("request.id", observability.RequestIDFromContext(r.Context())),
		),
	)
}

func (h *SessionHandlers) lookup(ctx context.Context, span trace.Span, w http.ResponseWriter, r *http.Request, opName string) (*Session, bool) {
	sess, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.recordLookupError(ctx, span, w, opName, err)
		return nil, false
	}
	return sess, true
}

func (h *SessionHandlers) recordLookupError(ctx context.Context, span trace.Span, w http.ResponseWriter, opName string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrSessionNotFound) {
		status = http.StatusNotFound
	}
	observability.RecordError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, opName, err.Error(), err, status, w)
}
