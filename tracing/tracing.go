// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tracing configures the OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/danielhkuo/polls/cliparse"
)

// InstrumentationName names the tracer used by the handlers.
const InstrumentationName = "github.com/danielhkuo/polls"

// Setup builds a tracer provider for cfg and installs it, together with the
// W3C trace-context propagator, as the global default. The caller must call
// Shutdown on the returned provider to flush pending spans.
//
// With the "none" exporter spans are still created and sampled so their IDs
// show up in logs and responses; they are simply not exported.
func Setup(cfg cliparse.Config) (*sdktrace.TracerProvider, error) {
	return setup(cfg, os.Stdout)
}

func setup(cfg cliparse.Config, out io.Writer) (*sdktrace.TracerProvider, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	}

	switch cfg.TraceExporter {
	case cliparse.ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	case cliparse.ExporterNone, "":
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q", cfg.TraceExporter)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// Shutdown flushes and stops tp, ignoring a nil provider.
func Shutdown(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}
