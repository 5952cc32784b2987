// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p               Server port (default: 8000)
	-d               Database URL (default: file:polls.db for sqlite)
	-t               Database type: sqlite or postgres (default: sqlite)
	--admin-key      Admin API key
	--service-name   Service name reported on spans (default: polls)
	--trace-exporter none or stdout (default: none)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY      → --admin-key
	SERVICE_NAME   → --service-name
	TRACE_EXPORTER → --trace-exporter

Environment only:

	LOG_FORMAT                 text or json
	RESULTS_REQUIRE_PUBLISHED  hide unpublished questions from results and voting

CLI flags take precedence over environment variables. main loads a .env
file, if present, before parsing.

# Validation

ParseFlags returns an error for an invalid port, an unknown database type
or exporter, or a postgres database without a URL. An empty ADMIN_KEY is
allowed and disables the admin API.
*/
package cliparse
