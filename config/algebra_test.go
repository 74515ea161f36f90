package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Solver.Backend != "z3" {
		t.Errorf("expected backend z3, got %s", cfg.Solver.Backend)
	}
	if cfg.Solver.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Solver.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.Backend = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty backend")
	}

	cfg = DefaultConfig()
	cfg.Solver.Timeout = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "algebra.yaml")

	content := `solver:
  backend: gini
  timeout: 2s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Solver.Backend != "gini" {
		t.Errorf("expected backend gini, got %s", cfg.Solver.Backend)
	}
	if cfg.Solver.Timeout != 2*time.Second {
		t.Errorf("expected timeout 2s, got %v", cfg.Solver.Timeout)
	}
	if cfg.Solver.Binary != "" {
		t.Errorf("expected empty binary, got %s", cfg.Solver.Binary)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "algebra.yaml")

	content := `solver:
  binary: /usr/local/bin/z3
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Solver.Backend != "z3" {
		t.Errorf("unset fields should keep defaults, got backend %s", cfg.Solver.Backend)
	}
	if cfg.Solver.Binary != "/usr/local/bin/z3" {
		t.Errorf("expected binary from file, got %s", cfg.Solver.Binary)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/algebra.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "algebra.yaml")
	if err := os.WriteFile(configPath, []byte("solver: ["), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFromFile(configPath); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
