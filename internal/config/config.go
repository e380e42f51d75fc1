package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisAddress    string
	JWTSecret       string
	LockTimeout     time.Duration
	ShutdownTimeout time.Duration
	ProductCacheTTL time.Duration
	AuditWorkers    int
	AuditBuffer     int
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultLockTimeout     = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultProductCacheTTL = 5 * time.Minute
	defaultAuditWorkers    = 2
	defaultAuditBuffer     = 256
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisAddress:    getString(lookup, "REDIS_ADDR", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		LockTimeout:     getDuration(lookup, "LOCK_TIMEOUT", defaultLockTimeout),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		ProductCacheTTL: getDuration(lookup, "PRODUCT_CACHE_TTL", defaultProductCacheTTL),
		AuditWorkers:    getInt(lookup, "AUDIT_WORKERS", defaultAuditWorkers),
		AuditBuffer:     getInt(lookup, "AUDIT_BUFFER", defaultAuditBuffer),
	}

	fs := flag.NewFlagSet("stockmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		lockTimeoutStr     = cfg.LockTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		cacheTTLStr        = cfg.ProductCacheTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "r", cfg.RedisAddress, "Redis address for the product cache (optional)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&lockTimeoutStr, "lock-timeout", lockTimeoutStr, "Row lock wait bound per transaction")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Product cache entry TTL")
	fs.IntVar(&cfg.AuditWorkers, "audit-workers", cfg.AuditWorkers, "Number of concurrent audit log writers")
	fs.IntVar(&cfg.AuditBuffer, "audit-buffer", cfg.AuditBuffer, "Audit event channel capacity")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.LockTimeout, err = time.ParseDuration(lockTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid lock timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ProductCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = defaultLockTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ProductCacheTTL <= 0 {
		cfg.ProductCacheTTL = defaultProductCacheTTL
	}

	if cfg.AuditWorkers <= 0 {
		cfg.AuditWorkers = defaultAuditWorkers
	}

	if cfg.AuditBuffer <= 0 {
		cfg.AuditBuffer = defaultAuditBuffer
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
