// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY", "SERVICE_NAME",
		"TRACE_EXPORTER", "LOG_FORMAT", "RESULTS_REQUIRE_PUBLISHED",
	} {
		t.Setenv(name, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "file:polls.db" {
		t.Errorf("expected default sqlite file, got %q", cfg.DatabaseURL)
	}
	if cfg.ServiceName != "polls" {
		t.Errorf("expected service name 'polls', got %q", cfg.ServiceName)
	}
	if cfg.TraceExporter != ExporterNone {
		t.Errorf("expected exporter 'none', got %q", cfg.TraceExporter)
	}
	if cfg.ResultsRequirePublished {
		t.Error("results should not require publication by default")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("ADMIN_KEY", "secret")
	t.Setenv("TRACE_EXPORTER", "stdout")
	t.Setenv("RESULTS_REQUIRE_PUBLISHED", "yes")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("expected env database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.AdminKey != "secret" {
		t.Errorf("expected admin key from env, got %q", cfg.AdminKey)
	}
	if cfg.TraceExporter != ExporterStdout {
		t.Errorf("expected stdout exporter, got %q", cfg.TraceExporter)
	}
	if !cfg.ResultsRequirePublished {
		t.Error("expected RESULTS_REQUIRE_PUBLISHED to be honored")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-key", "k1", "-service-name", "svc"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.AdminKey != "k1" {
		t.Errorf("expected admin key 'k1', got %q", cfg.AdminKey)
	}
	if cfg.ServiceName != "svc" {
		t.Errorf("expected service name 'svc', got %q", cfg.ServiceName)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"bad port env", nil, map[string]string{"PORT": "abc"}},
		{"port out of range", []string{"-p", "70000"}, nil},
		{"unknown database type", []string{"-t", "mysql"}, nil},
		{"postgres without url", []string{"-t", "postgres"}, nil},
		{"unknown exporter", []string{"-trace-exporter", "jaeger"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		raw    string
		value  bool
		wantOK bool
	}{
		{"1", true, true},
		{"TRUE", true, true},
		{" on ", true, true},
		{"no", false, true},
		{"0", false, true},
		{"", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		value, ok := ParseBool(tt.raw)
		if value != tt.value || ok != tt.wantOK {
			t.Errorf("ParseBool(%q) = (%v, %v), want (%v, %v)", tt.raw, value, ok, tt.value, tt.wantOK)
		}
	}
}
