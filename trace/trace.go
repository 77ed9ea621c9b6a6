package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type ctxKey string

const ctxKeyTrace ctxKey = "trace_info"

// Info carries tracing state for one inbound HTTP request.
// RequestID is unique per request; spanSeq increments once per outbound call
// made while serving it.
type Info struct {
	RequestID string
	spanSeq   int64
}

// GenerateID returns a fresh request identifier.
func GenerateID() string {
	return uuid.NewString()
}

// WithRequestAndSpan stores a request ID and initial span value (usually 0)
// in the context.
func WithRequestAndSpan(ctx context.Context, requestID string, initialSpan int64) context.Context {
	info := &Info{RequestID: requestID, spanSeq: initialSpan}
	return context.WithValue(ctx, ctxKeyTrace, info)
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKeyTrace).(*Info)
	return v
}

// RequestIDFromContext returns the request ID, or "" when outside a traced
// request.
func RequestIDFromContext(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return ""
	}
	return info.RequestID
}

// CurrentSpanID returns the current span sequence without incrementing it.
func CurrentSpanID(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return "0"
	}
	val := atomic.LoadInt64(&info.spanSeq)
	if val <= 0 {
		return "0"
	}
	return strconv.FormatInt(val, 10)
}

// NextSpanID increments the span sequence and returns (requestID, spanID).
// Used by the outbound HTTP client so successive calls within one request
// are numbered 1,2,3,...
func NextSpanID(ctx context.Context) (string, string) {
	info := infoFromContext(ctx)
	if info == nil {
		// fallback for use outside the middleware
		return GenerateID(), "1"
	}
	next := atomic.AddInt64(&info.spanSeq, 1)
	return info.RequestID, strconv.FormatInt(next, 10)
}
