// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the polls server.

Polls is a small question-and-answer voting site: visitors see the latest
published questions, vote for one choice, and view running totals. Every
request is traced with OpenTelemetry and its log lines carry the trace and
span IDs.

# Starting the Server

With no configuration the server uses a local SQLite file on port 8000:

	go run .

PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first if present.

# Configuration

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): DSN (default for sqlite: file:polls.db)
  - ADMIN_KEY (-admin-key): Enables the admin API
  - SERVICE_NAME (-service-name): Reported on spans (default: polls)
  - TRACE_EXPORTER (-trace-exporter): none or stdout (default: none)
  - LOG_FORMAT: text or json
  - RESULTS_REQUIRE_PUBLISHED: Hide unpublished questions from results and voting

# Architecture

  - handlers: HTTP request handlers (pages, voting, admin, trace test)
  - router: Route definitions using Go 1.22+ routing
  - views: Embedded HTML templates
  - middleware: Logging, CORS, JSON helpers
  - models: GORM models and API types
  - auth: Admin key validation
  - db: Connection and migration
  - tracing: Tracer provider setup
  - cliparse: Configuration parsing

Sample data can be loaded with cmd/seed.
*/
package main
