package service

import (
	"context"
	"errors"
	"time"

	"paint-it-black-manufacturer/internal/logging"
	"paint-it-black-manufacturer/internal/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	tracerName = "paint-it-black-manufacturer/service"
	spanPrefix = "Workflow."

	outcomeSuccess = "success"
	outcomeError   = "error"
)

// operation carries the span, timer and log fields of one workflow invocation.
type operation struct {
	name    string
	span    trace.Span
	start   time.Time
	logger  *zap.Logger
	metrics *metrics.Metrics

	status  string
	orderID string
}

func startOperation(ctx context.Context, m *metrics.Metrics, name, spanName string, attrs ...attribute.KeyValue) (context.Context, *operation) {
	attrs = append(attrs, attribute.String("use_case", name))
	ctx, span := otel.Tracer(tracerName).Start(ctx, spanPrefix+spanName, trace.WithAttributes(attrs...))

	logger := logging.FromContext(ctx).With(zap.String("use_case", name))
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logger = logger.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	ctx = logging.WithContext(ctx, logger)

	return ctx, &operation{
		name:    name,
		span:    span,
		start:   time.Now(),
		logger:  logger,
		metrics: m,
		status:  "OK",
	}
}

// fail tags the operation with the status code of err and hands err back.
func (op *operation) fail(err error) error {
	op.status = statusOf(err)
	return err
}

// storeFail logs the raw store error and returns its caller-facing form.
// A caller that went away is not a store failure.
func (op *operation) storeFail(step string, err error) error {
	if isWorkflowError(err) || errors.Is(err, context.Canceled) {
		return op.fail(storeError(err))
	}
	op.logger.Error("store_failed", zap.String("step", step), zap.Error(err))
	return op.fail(storeError(err))
}

func (op *operation) setOrder(orderID string) {
	op.orderID = orderID
	op.span.SetAttributes(attribute.String("order.id", orderID))
}

func (op *operation) done(err error) {
	lat := time.Since(op.start).Seconds()

	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
		if op.status == "OK" {
			op.status = "FAILED"
		}
	}
	op.metrics.ObserveOperation(op.name, outcome, lat)

	fields := []zap.Field{
		zap.String("outcome", outcome),
		zap.String("status", op.status),
		zap.Float64("latency_seconds", lat),
	}
	if op.orderID != "" {
		fields = append(fields, zap.String("order_id", op.orderID))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, op.status)
	} else {
		op.span.SetStatus(codes.Ok, op.status)
	}
	op.span.End()

	op.logger.Info("use_case_done", fields...)
}

func statusOf(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyPaid):
		return "ALREADY_PAID"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_FAILED"
	case errors.Is(err, ErrInvalidReference):
		return "INVALID_REFERENCE"
	case errors.Is(err, ErrAuthorizationDenied):
		return "AUTHORIZATION_DENIED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrNotCancelable):
		return "NOT_CANCELABLE"
	case errors.Is(err, ErrPaymentProcessor):
		return "PROCESSOR_FAILED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrCanceled):
		return "CANCELED"
	case errors.Is(err, ErrTransactionFailure):
		return "TRANSACTION_FAILED"
	default:
		return "FAILED"
	}
}
