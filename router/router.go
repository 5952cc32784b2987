// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/danielhkuo/polls/cliparse"
	_ "github.com/danielhkuo/polls/docs"
	"github.com/danielhkuo/polls/handlers"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/views"
)

// NewRouter builds the full handler tree. Every request runs inside a server
// span from tp; a nil tp means the global provider.
func NewRouter(db *gorm.DB, cfg cliparse.Config, tp trace.TracerProvider) (http.Handler, error) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, cfg, renderer)
	votingHandler := handlers.NewVotingHandler(db, cfg, renderer)
	resultsHandler := handlers.NewResultsHandler(db, cfg, renderer)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	traceHandler := handlers.NewTraceHandler(tp)

	// Health check
	handle(mux, "GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Root goes to the poll listing
	handle(mux, "GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls/", http.StatusFound)
	})

	// Public pages
	handle(mux, "GET /polls/{$}", middleware.WithLogging(pollHandler.Index))
	handle(mux, "GET /polls/{id}/{$}", middleware.WithLogging(pollHandler.Detail))
	handle(mux, "GET /polls/{id}/results/{$}", middleware.WithLogging(resultsHandler.Results))
	handle(mux, "POST /polls/{id}/vote/{$}", middleware.WithLogging(votingHandler.Vote))

	// Diagnostics
	handle(mux, "GET /trace-test", middleware.WithLogging(traceHandler.TraceTest))

	// Admin API (requires X-Admin-Key). CORS answers preflight requests itself.
	api := http.NewServeMux()
	handle(api, "POST /api/questions", middleware.WithLogging(adminHandler.CreateQuestion))
	handle(api, "POST /api/questions/{id}/choices", middleware.WithLogging(adminHandler.AddChoice))
	handle(api, "GET /api/questions/{id}", middleware.WithLogging(adminHandler.GetQuestion))
	mux.Handle("/api/", middleware.CORS(api))

	swagger := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
	handle(mux, "GET /swagger/", swagger)

	return otelhttp.NewHandler(mux, "polls",
		otelhttp.WithTracerProvider(tp),
		otelhttp.WithSpanNameFormatter(spanName),
	), nil
}

// handle registers h and renames the request's server span after the route
// pattern, so span names don't grow with every question id.
func handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	route := pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		route = path
	}
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		span.SetName(pattern)
		span.SetAttributes(attribute.String("http.route", route))
		h(w, r)
	})
}

// spanName names spans for requests that match no route
func spanName(_ string, r *http.Request) string {
	return "HTTP " + r.Method
}
