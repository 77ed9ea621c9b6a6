package trace

import (
	"context"
	"testing"
)

func TestSpanSequenceIncrementsPerOutboundCall(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-1", 0)

	if got := CurrentSpanID(ctx); got != "0" {
		t.Fatalf("expected initial span 0, got %s", got)
	}

	reqID, span := NextSpanID(ctx)
	if reqID != "req-1" || span != "1" {
		t.Fatalf("expected (req-1, 1), got (%s, %s)", reqID, span)
	}
	_, span = NextSpanID(ctx)
	if span != "2" {
		t.Fatalf("expected span 2, got %s", span)
	}
	if got := CurrentSpanID(ctx); got != "2" {
		t.Fatalf("expected current span 2, got %s", got)
	}
}

func TestNextSpanIDOutsideMiddleware(t *testing.T) {
	reqID, span := NextSpanID(context.Background())
	if reqID == "" {
		t.Fatal("expected a generated request id")
	}
	if span != "1" {
		t.Fatalf("expected span 1, got %s", span)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	if GenerateID() == GenerateID() {
		t.Fatal("expected unique ids")
	}
}
