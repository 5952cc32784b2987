// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every line carries request_id, taken from X-Request-ID or
generated as a UUID and echoed back on the response. When an OpenTelemetry
span is active the lines also carry trace_id and span_id:

	slog.Info("vote recorded", middleware.CorrelationAttrs(ctx)...)

# CORS Middleware

The admin API is wrapped with CORS so browser tools can call it:

	mux.Handle("POST /api/questions", middleware.CORS(handler))

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
