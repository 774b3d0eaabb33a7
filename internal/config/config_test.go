package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitual/internal/constants"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Database != constants.DefaultConfigPath {
		t.Errorf("Database = %q, want %q", cfg.Database, constants.DefaultConfigPath)
	}
	if cfg.MonthEnd != constants.MonthEndClamp {
		t.Errorf("MonthEnd = %q, want clamp", cfg.MonthEnd)
	}
	if cfg.Server.Addr != constants.DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, constants.DefaultServerAddr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() of missing file = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
database = "/tmp/habits.db"
timezone = "UTC"
month_end = "skip"
log_level = "info"

[server]
addr = "0.0.0.0:9000"
metrics = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database != "/tmp/habits.db" {
		t.Errorf("Database = %q", cfg.Database)
	}
	if cfg.MonthEnd != constants.MonthEndSkip {
		t.Errorf("MonthEnd = %q, want skip", cfg.MonthEnd)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" || cfg.Server.Metrics {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, `timezone = "UTC"`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != constants.DefaultServerAddr || cfg.MonthEnd != constants.MonthEndClamp {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad month_end", `month_end = "round"`, "MonthEnd"},
		{"bad timezone", `timezone = "Nowhere/Land"`, "Timezone"},
		{"bad log level", `log_level = "chatty"`, "LogLevel"},
		{"bad addr", "[server]\naddr = \"not an address\"", "Addr"},
		{"unknown key", `colour = "red"`, "unknown config keys"},
		{"syntax", `database = `, "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Timezone = "UTC"
	cfg.MonthEnd = constants.MonthEndSkip

	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := map[string]bool{
		"postgres://localhost/habitual":   true,
		"postgresql://user@host/habitual": true,
		"~/.config/habitual/habitual.db":  false,
		"/var/lib/habitual.db":            false,
	}
	for dsn, want := range tests {
		if got := IsPostgresDSN(dsn); got != want {
			t.Errorf("IsPostgresDSN(%q) = %v, want %v", dsn, got, want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.config/habitual")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if got != filepath.Join(home, ".config/habitual") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got, _ := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath() changed absolute path: %q", got)
	}
}
