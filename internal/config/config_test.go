package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"CAREERPATH_ADDR", "CAREERPATH_CORS_ORIGINS", "CAREERPATH_REDIS_ADDR",
		"CAREERPATH_CACHE_TTL", "CAREERPATH_LOG_LEVEL", "CAREERPATH_DEV",
		"CAREERPATH_DB", "CAREERPATH_STRUCTURED", "CAREERPATH_SERVER_URL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.Server.CORSOrigins)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("TTL = %v, want 10m", cfg.Cache.TTL)
	}
	if cfg.Cache.RedisAddr != "" || cfg.DBPath != "" {
		t.Error("cache and audit log must be off by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CAREERPATH_ADDR", "127.0.0.1:9000")
	t.Setenv("CAREERPATH_CORS_ORIGINS", "http://localhost:3000, https://example.com")
	t.Setenv("CAREERPATH_REDIS_ADDR", "localhost:6379")
	t.Setenv("CAREERPATH_CACHE_TTL", "90s")
	t.Setenv("CAREERPATH_DEV", "true")
	t.Setenv("CAREERPATH_STRUCTURED", "1")
	t.Setenv("CAREERPATH_DB", "/tmp/cp.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://example.com" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("TTL = %v, want 90s", cfg.Cache.TTL)
	}
	if !cfg.Log.Development || !cfg.Structured {
		t.Error("expected development and structured to be set")
	}
	if cfg.DBPath != "/tmp/cp.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("CAREERPATH_CACHE_TTL", "soon")
	t.Setenv("CAREERPATH_DEV", "maybe")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for malformed values")
	}
	for _, key := range []string{"CAREERPATH_CACHE_TTL", "CAREERPATH_DEV"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not name %s", err, key)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CAREERPATH_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("CAREERPATH_TEST_DOTENV", "")
	os.Unsetenv("CAREERPATH_TEST_DOTENV")

	LoadDotEnv()
	if got := os.Getenv("CAREERPATH_TEST_DOTENV"); got != "from-file" {
		t.Errorf("CAREERPATH_TEST_DOTENV = %q, want from-file", got)
	}
}
