package requestcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/pickups/internal/pkg/logger"
)

// HeaderTraceID carries the trace id across services
const HeaderTraceID = "X-Trace-ID"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	traceIDKey   contextKey = "trace_id"
)

// RequestContext holds request-specific information
type RequestContext struct {
	RequestID   string
	TraceID     string
	ServiceName string
	StartTime   time.Time
}

// WithRequestContext adds the request and trace ids to ctx
func WithRequestContext(ctx context.Context, reqCtx *RequestContext) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, reqCtx.RequestID)
	return context.WithValue(ctx, traceIDKey, reqCtx.TraceID)
}

// FromEchoContext builds a request context, keeping ids supplied by the
// caller and generating the missing ones
func FromEchoContext(c echo.Context) *RequestContext {
	reqCtx := &RequestContext{
		RequestID: c.Request().Header.Get(echo.HeaderXRequestID),
		TraceID:   c.Request().Header.Get(HeaderTraceID),
		StartTime: time.Now(),
	}

	if reqCtx.RequestID == "" {
		reqCtx.RequestID = uuid.New().String()
	}
	if reqCtx.TraceID == "" {
		reqCtx.TraceID = reqCtx.RequestID
	}

	return reqCtx
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(requestIDKey).(string)
	return reqID
}

// GetTraceID extracts trace ID from context
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// LogFields returns the ids carried by ctx as log fields. Contexts that did
// not come from an HTTP request (startup, NATS) yield none.
func LogFields(ctx context.Context) []logger.Field {
	var fields []logger.Field
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, logger.String("request_id", id))
	}
	if id := GetTraceID(ctx); id != "" {
		fields = append(fields, logger.String("trace_id", id))
	}
	return fields
}
