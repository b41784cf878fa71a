package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "CLIENT_ORIGIN", "JWT_SECRET", "CONFIG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("config = %+v, want %+v", cfg, Defaults())
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "port: \"9000\"\nlog_level: debug\nclient_origin: https://play.example\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("port = %s, want 9100", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %s, want debug", cfg.LogLevel)
	}
	if cfg.ClientOrigin != "https://play.example" {
		t.Fatalf("origin = %s, want https://play.example", cfg.ClientOrigin)
	}
	if cfg.JWTSecret != Defaults().JWTSecret {
		t.Fatalf("secret = %s, want default", cfg.JWTSecret)
	}
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected read error")
	}
}
