package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/db"
	"github.com/danielhkuo/polls/router"
	"github.com/danielhkuo/polls/tracing"
)

func main() {
	var err error

	// Pick up a local .env in development; real env vars win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Spans may go to stdout, so logs stay on stderr
	slog.SetDefault(slog.New(newLogHandler(cfg.LogFormat)))

	tp, err := tracing.Setup(cfg)
	if err != nil {
		slog.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			slog.Error("tracer shutdown failed", "error", err)
		}
	}()

	// Connect to the database
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer db.Close(dbConn)

	// Create schema (tables)
	if err := db.Migrate(dbConn); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Create router
	handler, err := router.NewRouter(dbConn, cfg, tp)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		stopServer(ctx, &server)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "service", cfg.ServiceName, "trace_exporter", cfg.TraceExporter)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// stopServer drains in-flight requests until ctx expires
func stopServer(ctx context.Context, server *http.Server) error {
	err := server.Shutdown(ctx)
	if err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	return err
}

func newLogHandler(format string) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(os.Stderr, nil)
	}
	return slog.NewTextHandler(os.Stderr, nil)
}
