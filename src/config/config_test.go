package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// -----------------------------------------------------------------------------

const validYAML = `
name: finance-dashboard
host: 127.0.0.1
port: 8080
log_level: INFO
server_enabled: true
tickers:
  - AAPL
  - MSFT
benchmark: SPY
range:
  start: "2024-01-01"
  end: "2024-06-30"
alignment: outer
export:
  precision: 6
  output_dir: ./out
storage:
  db_type: sqlite
  db_path: ./cache.db
  cache_ttl_days: 7
network:
  enabled: true
  timeout: 10
  retries: 3
  concurrent_requests: 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigValid(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.Name != "finance-dashboard" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if len(cfg.Tickers) != 2 || cfg.Tickers[0] != "AAPL" {
		t.Errorf("Tickers = %v", cfg.Tickers)
	}
	if cfg.Benchmark != "SPY" {
		t.Errorf("Benchmark = %q", cfg.Benchmark)
	}
	if cfg.Storage.CacheTTLDays != 7 {
		t.Errorf("CacheTTLDays = %d", cfg.Storage.CacheTTLDays)
	}

	r, err := cfg.DateRange()
	if err != nil {
		t.Fatalf("DateRange: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !r.Start.Equal(want) {
		t.Errorf("range start = %v, want %v", r.Start, want)
	}
}

// -----------------------------------------------------------------------------

func TestNewConfigRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "no tickers",
			mutate:  func(s string) string { return strings.Replace(s, "  - AAPL\n  - MSFT\n", "", 1) },
			wantErr: "at least one ticker",
		},
		{
			name:    "inverted range",
			mutate:  func(s string) string { return strings.Replace(s, `end: "2024-06-30"`, `end: "2023-06-30"`, 1) },
			wantErr: "precedes start",
		},
		{
			name:    "bad alignment",
			mutate:  func(s string) string { return strings.Replace(s, "alignment: outer", "alignment: sideways", 1) },
			wantErr: "alignment",
		},
		{
			name:    "sqlite without path",
			mutate:  func(s string) string { return strings.Replace(s, "db_path: ./cache.db", "db_path: \"\"", 1) },
			wantErr: "database path",
		},
		{
			name:    "bad port",
			mutate:  func(s string) string { return strings.Replace(s, "port: 8080", "port: 80", 1) },
			wantErr: "port",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(writeConfig(t, tc.mutate(validYAML)))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantErr)
			}
		})
	}
}

// -----------------------------------------------------------------------------

func TestNewConfigMissingFile(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
