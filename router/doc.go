// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls site.

# Route Registration

NewRouter returns the complete handler, already wrapped in OpenTelemetry
server instrumentation:

	h, err := router.NewRouter(db, cfg, tp)

# Endpoints

Health:

	GET /health

Public pages:

	GET  /                      - Redirect to /polls/
	GET  /polls/                - Latest published questions
	GET  /polls/{id}/           - Voting form
	GET  /polls/{id}/results/   - Vote counts
	POST /polls/{id}/vote/      - Cast a vote

Diagnostics:

	GET /trace-test?spans=N&junk=true

Admin API (requires X-Admin-Key, CORS enabled):

	POST /api/questions              - Create question
	POST /api/questions/{id}/choices - Add choice
	GET  /api/questions/{id}         - Question with raw counts
	GET  /swagger/                   - API browser

Trailing slashes on the public pages are significant; other paths are 404.
*/
package router
