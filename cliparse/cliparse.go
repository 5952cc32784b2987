package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"

	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKey     string

	ServiceName   string
	TraceExporter string
	LogFormat     string

	// ResultsRequirePublished applies the listing/detail visibility rule to
	// the results and vote paths as well.
	ResultsRequirePublished bool
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("polls", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin API key (prefer env)")

	// Observability
	fs.StringVar(&cfg.ServiceName, "service-name", "", "Service name reported on spans")
	fs.StringVar(&cfg.TraceExporter, "trace-exporter", "", "Span exporter (none or stdout)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, errors.New("port must be between 1 and 65535")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:polls.db"
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = os.Getenv("SERVICE_NAME")
		if cfg.ServiceName == "" {
			cfg.ServiceName = "polls"
		}
	}

	if cfg.TraceExporter == "" {
		cfg.TraceExporter = os.Getenv("TRACE_EXPORTER")
		if cfg.TraceExporter == "" {
			cfg.TraceExporter = ExporterNone
		}
	}
	if cfg.TraceExporter != ExporterNone && cfg.TraceExporter != ExporterStdout {
		return Config{}, errors.New("trace exporter must be none or stdout")
	}

	cfg.LogFormat = strings.ToLower(os.Getenv("LOG_FORMAT"))
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	cfg.ResultsRequirePublished = EnvBool("RESULTS_REQUIRE_PUBLISHED", false)

	return cfg, nil
}

// EnvBool reads a boolean environment variable, returning fallback when it
// is unset or unrecognized.
func EnvBool(name string, fallback bool) bool {
	value, ok := ParseBool(os.Getenv(name))
	if !ok {
		return fallback
	}
	return value
}

// ParseBool accepts the usual spellings of true and false. ok is false for
// empty or unrecognized input.
func ParseBool(raw string) (value bool, ok bool) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
