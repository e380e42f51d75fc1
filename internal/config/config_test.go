package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, noEnv); err == nil {
		t.Fatal("expected error without database URI")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load([]string{"-d", "postgres://localhost/stockmart"}, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":8080" {
		t.Fatalf("unexpected run address %s", cfg.RunAddress)
	}
	if cfg.RedisAddress != "" {
		t.Fatalf("redis must be disabled by default, got %q", cfg.RedisAddress)
	}
	if cfg.LockTimeout != 5*time.Second {
		t.Fatalf("unexpected lock timeout %s", cfg.LockTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
	if cfg.ProductCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache TTL %s", cfg.ProductCacheTTL)
	}
	if cfg.AuditWorkers != 2 || cfg.AuditBuffer != 256 {
		t.Fatalf("unexpected audit defaults: %d workers, %d buffer", cfg.AuditWorkers, cfg.AuditBuffer)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	cfg, err := load(nil, envMap(map[string]string{
		"RUN_ADDRESS":       ":9999",
		"DATABASE_URI":      "postgres://db/stockmart",
		"REDIS_ADDR":        "redis:6379",
		"JWT_SECRET":        "env-secret",
		"LOCK_TIMEOUT":      "2s",
		"PRODUCT_CACHE_TTL": "30s",
		"AUDIT_WORKERS":     "4",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9999" || cfg.DatabaseURI != "postgres://db/stockmart" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if cfg.RedisAddress != "redis:6379" || cfg.JWTSecret != "env-secret" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if cfg.LockTimeout != 2*time.Second || cfg.ProductCacheTTL != 30*time.Second || cfg.AuditWorkers != 4 {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := load(
		[]string{"-a", ":7070", "-d", "postgres://flag/db", "-lock-timeout", "750ms"},
		envMap(map[string]string{"RUN_ADDRESS": ":9999", "DATABASE_URI": "postgres://env/db"}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7070" || cfg.DatabaseURI != "postgres://flag/db" {
		t.Fatalf("flags must win over environment: %+v", cfg)
	}
	if cfg.LockTimeout != 750*time.Millisecond {
		t.Fatalf("unexpected lock timeout %s", cfg.LockTimeout)
	}
}

func TestLoadJWTSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := load(nil, envMap(map[string]string{
		"DATABASE_URI":    "postgres://db/stockmart",
		"JWT_SECRET_FILE": path,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("unexpected secret %q", cfg.JWTSecret)
	}
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	if _, err := load([]string{"-d", "dsn", "-lock-timeout", "soon"}, noEnv); err == nil {
		t.Fatal("expected error for invalid lock timeout")
	}
	if _, err := load([]string{"-d", "dsn", "-cache-ttl", "never"}, noEnv); err == nil {
		t.Fatal("expected error for invalid cache ttl")
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	cfg, err := load([]string{"-d", "dsn", "-audit-workers", "-3", "-audit-buffer", "0"}, noEnv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AuditWorkers != 2 || cfg.AuditBuffer != 256 {
		t.Fatalf("non-positive values must fall back to defaults: %+v", cfg)
	}
}
