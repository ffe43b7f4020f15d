package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Fatalf("default config invalid: %v", ValidationErrors(errs))
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "arcstd", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	content := "doc_path: /data/ud\nparse:\n  batch_size: 8\n  predictor: baseline\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ARCSTD_PARSE_SHARDS", "4")
	t.Setenv("ARCSTD_PARSE_BATCH_SIZE", "16")

	v, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DocPath != "/data/ud" {
		t.Errorf("doc_path: got %q", cfg.DocPath)
	}
	if cfg.Parse.BatchSize != 16 {
		t.Errorf("env must override file: got batch size %d", cfg.Parse.BatchSize)
	}
	if cfg.Parse.Shards != 4 {
		t.Errorf("shards: got %d", cfg.Parse.Shards)
	}
	if cfg.Parse.Predictor != "baseline" {
		t.Errorf("predictor: got %q", cfg.Parse.Predictor)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level: got %q", cfg.Logging.Level)
	}
}

func TestExplicitFileMustExist(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Parse.BatchSize = 0
	cfg.Parse.Shards = -1
	cfg.Parse.Predictor = "neural"
	cfg.Parse.NoiseRate = 1.5
	cfg.Logging.Level = "trace"

	errs := cfg.Validate()
	if len(errs) != 5 {
		t.Fatalf("got %d errors, want 5: %v", len(errs), errs)
	}

	var verrs ValidationErrors
	v, _ := New(writeConfig(t, "parse:\n  batch_size: 0\n"))
	_, err := Load(v)
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if !strings.Contains(err.Error(), "parse.batch_size") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
