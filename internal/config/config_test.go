package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(missing) = %+v, want %+v", cfg, Default())
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(\"\") = %+v, want %+v", cfg, Default())
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "timeout: 5s\nglobals: globals.yaml\ntrace: true\ndisableHostlib: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.Globals != "globals.yaml" {
		t.Errorf("Globals = %q, want %q", cfg.Globals, "globals.yaml")
	}
	if !cfg.Trace || !cfg.DisableHostlib {
		t.Errorf("Trace/DisableHostlib not parsed: %+v", cfg)
	}
}

func TestLoadGlobals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "globals.yaml")
	content := "apiKey: secret\nretries: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	globals, err := LoadGlobals(path)
	if err != nil {
		t.Fatalf("LoadGlobals: %v", err)
	}
	if globals["apiKey"] != "secret" {
		t.Errorf("apiKey = %v, want %q", globals["apiKey"], "secret")
	}
	if globals["retries"] != 3 {
		t.Errorf("retries = %v, want 3", globals["retries"])
	}
}

func TestLoadGlobalsEmptyPath(t *testing.T) {
	globals, err := LoadGlobals("")
	if err != nil || globals != nil {
		t.Fatalf("LoadGlobals(\"\") = (%v, %v), want (nil, nil)", globals, err)
	}
}
