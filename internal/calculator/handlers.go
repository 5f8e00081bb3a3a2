package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go-chi-accumulator/internal/accumulator"
	"go-chi-accumulator/internal/handlers"
	"go-chi-accumulator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the accumulator endpoints backed by a Store.
type Handler struct {
	store *accumulator.Store
}

// NewHandler creates a Handler over store.
func NewHandler(store *accumulator.Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Handlers — accumulator lifecycle
// ---------------------------------------------------------------------------

// Create handles POST /accumulators. The body is optional.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.create")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		observability.RecordError(ctx, span, logger, errorCounter, "create", "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if !isFinite(req.Initial) {
		observability.RecordError(ctx, span, logger, errorCounter, "create", "invalid numeric input", fmt.Errorf("initial=%g", req.Initial), http.StatusBadRequest, w)
		return
	}

	id, acc := h.store.Create(req.Initial)
	liveAccumulators.Set(float64(h.store.Len()))

	span.SetAttributes(
		attribute.String("accumulator.id", id),
		attribute.Float64("accumulator.initial", req.Initial),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("accumulator created",
		zap.String("accumulator_id", id),
		zap.Float64("initial", req.Initial),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, stateOf(id, acc))
}

// Get handles GET /accumulators/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.get")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id, acc, ok := h.lookup(ctx, w, r, span, logger, "get")
	if !ok {
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, stateOf(id, acc))
}

// Delete handles DELETE /accumulators/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.delete")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("accumulator.id", id))

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "accumulator not found", err, http.StatusNotFound, w)
		return
	}
	liveAccumulators.Set(float64(h.store.Len()))

	span.SetStatus(codes.Ok, "")
	logger.Info("accumulator deleted",
		zap.String("accumulator_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /accumulators/{id}/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.history")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id, acc, ok := h.lookup(ctx, w, r, span, logger, "history")
	if !ok {
		return
	}

	snap := acc.Snapshot()
	span.SetAttributes(
		attribute.Int("accumulator.undo_depth", len(snap.Undo)),
		attribute.Int("accumulator.redo_depth", len(snap.Redo)),
	)
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{
		ID:    id,
		Value: Number(snap.Value),
		Undo:  viewCommands(snap.Undo),
		Redo:  viewCommands(snap.Redo),
	})
}

// ---------------------------------------------------------------------------
// Handlers — arithmetic operations
// ---------------------------------------------------------------------------

// Add handles POST /accumulators/{id}/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, accumulator.Add)
}

// Subtract handles POST /accumulators/{id}/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, accumulator.Subtract)
}

// Multiply handles POST /accumulators/{id}/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, accumulator.Multiply)
}

// Divide handles POST /accumulators/{id}/divide — a zero divisor is rejected
// and recorded on the span without touching the accumulator.
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleOperation(w, r, accumulator.Divide)
}

// handleOperation is the shared implementation for the four arithmetic
// endpoints: decode, build and execute the command, then record span
// attributes, metrics and a trace-correlated log line.
func (h *Handler) handleOperation(w http.ResponseWriter, r *http.Request, kind accumulator.Kind) {
	opName := kind.String()
	requestID := observability.RequestIDFromContext(r.Context())

	ctx, span := tracer.Start(r.Context(), fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id, acc, ok := h.lookup(ctx, w, r, span, logger, opName)
	if !ok {
		return
	}

	var req OperandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}
	if !isFinite(req.Value) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", fmt.Errorf("value=%g", req.Value), http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.Float64("calculator.operand", req.Value))

	cmd := accumulator.Command{Kind: kind, Operand: req.Value}

	start := time.Now()
	step, err := acc.ExecuteStep(cmd)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid operand", err, http.StatusBadRequest, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, step.After, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("input", step.Before),
		attribute.Float64("result", step.After),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", step.After))
	span.SetStatus(codes.Ok, "")

	logger.Info("accumulator operation completed",
		zap.String("accumulator_id", id),
		zap.String("operation", opName),
		zap.Float64("operand", req.Value),
		zap.Float64("input", step.Before),
		zap.Float64("result", step.After),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, OperationResponse{
		ID:        id,
		Operation: opName,
		Operand:   operandOf(step.Command),
		Applied:   true,
		Value:     Number(step.After),
		UndoDepth: step.UndoDepth,
		RedoDepth: step.RedoDepth,
	})
}

// ---------------------------------------------------------------------------
// Handlers — history navigation
// ---------------------------------------------------------------------------

// Undo handles POST /accumulators/{id}/undo. An empty undo stack is not an
// error; the response reports applied=false.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	h.handleHistoryMove(w, r, "undo", (*accumulator.Accumulator).UndoStep)
}

// Redo handles POST /accumulators/{id}/redo.
func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	h.handleHistoryMove(w, r, "redo", (*accumulator.Accumulator).RedoStep)
}

func (h *Handler) handleHistoryMove(w http.ResponseWriter, r *http.Request, action string, move func(*accumulator.Accumulator) (accumulator.Step, bool)) {
	ctx, span := tracer.Start(r.Context(), fmt.Sprintf("calculator.%s", action))
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id, acc, ok := h.lookup(ctx, w, r, span, logger, action)
	if !ok {
		return
	}

	step, applied := move(acc)

	historyCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("applied", applied),
	))
	if applied {
		resultGauge.Record(ctx, step.After, metric.WithAttributes(attribute.String("operation", action)))
	}

	span.SetAttributes(
		attribute.Bool("calculator.applied", applied),
		attribute.Float64("calculator.result", step.After),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("accumulator history moved",
		zap.String("accumulator_id", id),
		zap.String("action", action),
		zap.Bool("applied", applied),
		zap.Float64("input", step.Before),
		zap.Float64("result", step.After),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, OperationResponse{
		ID:        id,
		Operation: action,
		Applied:   applied,
		Value:     Number(step.After),
		UndoDepth: step.UndoDepth,
		RedoDepth: step.RedoDepth,
	})
}

// ---------------------------------------------------------------------------
// Handler — chained operations (demonstrates nested spans)
// ---------------------------------------------------------------------------

// Chain handles POST /accumulators/{id}/chain — every step is validated up
// front, so a bad step leaves the accumulator untouched. Each step is then
// executed as its own undoable command with a child span.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	requestID := observability.RequestIDFromContext(r.Context())

	ctx, span := tracer.Start(r.Context(), "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id, acc, ok := h.lookup(ctx, w, r, span, logger, "chain")
	if !ok {
		return
	}

	var req ChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if len(req.Steps) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "chain", "no steps provided", fmt.Errorf("steps array is empty"), http.StatusBadRequest, w)
		return
	}

	cmds := make([]accumulator.Command, 0, len(req.Steps))
	for i, step := range req.Steps {
		cmd, err := buildStep(step)
		if err != nil {
			err = fmt.Errorf("step %d: %w", i, err)
			observability.RecordError(ctx, span, logger, errorCounter, "chain", err.Error(), err, http.StatusBadRequest, w)
			return
		}
		cmds = append(cmds, cmd)
	}

	span.SetAttributes(
		attribute.String("accumulator.id", id),
		attribute.Int("chain.steps_count", len(cmds)),
	)

	logger.Info("starting chained calculation",
		zap.String("accumulator_id", id),
		zap.Int("steps", len(cmds)),
		zap.String("request_id", requestID),
	)

	var initial float64
	results := make([]ChainResult, 0, len(cmds))
	for i, cmd := range cmds {
		opName := cmd.Kind.String()

		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, opName),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", opName),
				attribute.Float64("chain.step.value", cmd.Operand),
			),
		)

		stepStart := time.Now()
		step, err := acc.ExecuteStep(cmd)
		stepElapsed := float64(time.Since(stepStart).Microseconds()) / 1000.0

		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			span.SetStatus(codes.Error, fmt.Sprintf("failed at step %d", i))
			observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
			return
		}
		if i == 0 {
			initial = step.Before
		}

		attrs := metric.WithAttributes(attribute.String("operation", opName))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, stepElapsed, attrs)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.Float64("input", step.Before),
			attribute.Float64("result", step.After),
		))
		stepSpan.SetAttributes(attribute.Float64("chain.step.result", step.After))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Info("chain step completed",
			zap.Int("step", i),
			zap.String("operation", opName),
			zap.Float64("value", cmd.Operand),
			zap.Float64("input", step.Before),
			zap.Float64("result", step.After),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     opName,
			Value:  cmd.Operand,
			Result: Number(step.After),
		})
	}

	final := float64(results[len(results)-1].Result)
	resultGauge.Record(ctx, final, metric.WithAttributes(attribute.String("operation", "chain")))

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.Float64("final_result", final),
		attribute.Int("total_steps", len(cmds)),
	))
	span.SetAttributes(
		attribute.Float64("chain.initial", initial),
		attribute.Float64("chain.result", final),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.String("accumulator_id", id),
		zap.Float64("initial", initial),
		zap.Float64("result", final),
		zap.Int("steps", len(cmds)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		ID:      id,
		Initial: Number(initial),
		Steps:   results,
		Result:  Number(final),
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// lookup resolves the {id} URL parameter, writing a 404 when it is unknown.
func (h *Handler) lookup(ctx context.Context, w http.ResponseWriter, r *http.Request, span trace.Span, logger *zap.Logger, opName string) (string, *accumulator.Accumulator, bool) {
	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("accumulator.id", id))

	acc, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "accumulator not found", err, http.StatusNotFound, w)
		return "", nil, false
	}
	return id, acc, true
}

func buildStep(step ChainStep) (accumulator.Command, error) {
	kind, err := accumulator.ParseKind(step.Op)
	if err != nil {
		return accumulator.Command{}, err
	}
	if !isFinite(step.Value) {
		return accumulator.Command{}, fmt.Errorf("invalid numeric input: value=%g", step.Value)
	}
	return accumulator.NewCommand(kind, step.Value)
}

func stateOf(id string, acc *accumulator.Accumulator) StateResponse {
	snap := acc.Snapshot()
	return StateResponse{
		ID:        id,
		Value:     Number(snap.Value),
		UndoDepth: len(snap.Undo),
		RedoDepth: len(snap.Redo),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
