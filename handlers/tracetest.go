// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/tracing"
)

const (
	// MaxTraceSpans bounds the spans one diagnostic request may emit
	MaxTraceSpans = 1000

	// TestSpanName names every span emitted by TraceTest
	TestSpanName = "test span"

	junkBytes = 33
)

type TraceHandler struct {
	tracer trace.Tracer
}

// NewTraceHandler uses tp, or the global provider when tp is nil
func NewTraceHandler(tp trace.TracerProvider) *TraceHandler {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TraceHandler{tracer: tp.Tracer(tracing.InstrumentationName)}
}

// TraceTest handles GET /trace-test?spans=N&junk=B
// Emits N sequential spans under the request's span and reports the trace
// and span IDs that logs for this request are correlated with.
func (h *TraceHandler) TraceTest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	spans := 1
	if raw := query.Get("spans"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxTraceSpans {
			http.Error(w, fmt.Sprintf("spans must be an integer between 1 and %d", MaxTraceSpans), http.StatusBadRequest)
			return
		}
		spans = n
	}

	junk := false
	if raw := query.Get("junk"); raw != "" {
		v, ok := cliparse.ParseBool(raw)
		if !ok {
			http.Error(w, "junk must be a boolean", http.StatusBadRequest)
			return
		}
		junk = v
	}

	ctx := r.Context()
	if !trace.SpanContextFromContext(ctx).IsValid() {
		// Not behind the HTTP tracing middleware; anchor the spans ourselves
		var root trace.Span
		ctx, root = h.tracer.Start(ctx, "trace test")
		defer root.End()
	}

	for i := 1; i <= spans; i++ {
		if err := h.emitSpan(ctx, i, junk); err != nil {
			serverError(w, r, "failed to emit test span", err)
			return
		}
	}

	sc := trace.SpanContextFromContext(ctx)
	slog.InfoContext(ctx, "trace test spans emitted",
		"spans", spans,
		"junk", junk,
		"trace_id", sc.TraceID().String(),
		"span_id", sc.SpanID().String(),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK, generated at least %d spans.\nTrace ID: %s\nSpan ID: %s\n",
		spans, sc.TraceID().String(), sc.SpanID().String())
}

func (h *TraceHandler) emitSpan(ctx context.Context, index int, junk bool) error {
	_, span := h.tracer.Start(ctx, TestSpanName, trace.WithAttributes(
		attribute.String("resource.name", fmt.Sprintf("number %d", index)),
		attribute.Int("index", index),
	))
	defer span.End()

	if junk {
		blob, err := randomJunk()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "random junk")
			return err
		}
		span.SetAttributes(attribute.String("random junk", blob))
	}
	return nil
}

// randomJunk returns base64 of random bytes, used to bulk up span payloads
func randomJunk() (string, error) {
	b := make([]byte, junkBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
