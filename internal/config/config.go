package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendRedis  = "redis"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline (ex: 2s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SourceFile     string        // navigation definitions yaml (optional, empty = the store is authoritative)
	ReloadInterval time.Duration // interval to reload the source (default: 24h)
	GCInterval     time.Duration // interval to run garbage collection (default: 24h)
	GCThreshold    time.Duration // how long soft-deleted records are kept (default: 720h)

	StoreBackend string // "redis" | "sql" | "memory"
	DatabaseDSN  string // sqlite path or postgres:// URL when StoreBackend is "sql"

	DatabaseConnectTimeout time.Duration // Total time to retry opening the database (ex: 30s)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	CORSOrigins     []string // allowed CORS origins ("*" = any)
	RateLimitBurst  int      // per-IP burst on the API
	RateLimitPerMin int      // per-IP sustained requests per minute, 0 disables
}

// Load reads the configuration from the environment. A .env file in the
// working directory is read first; variables already set take precedence.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NAVS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NAVS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("NAVS_REQUEST_TIMEOUT", 2*time.Second),

		// Logging
		LogLevel:  getenv("NAVS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NAVS_PRETTY_LOG", true),

		// Source
		SourceFile:     getenv("NAVS_SOURCE_FILE", ""),
		ReloadInterval: mustDuration("NAVS_RELOAD_INTERVAL", 24*time.Hour),
		GCInterval:     mustDuration("NAVS_GC_INTERVAL", 24*time.Hour),
		GCThreshold:    mustDuration("NAVS_GC_THRESHOLD", 30*24*time.Hour),

		// Store
		StoreBackend: mustOneOf("NAVS_STORE_BACKEND", BackendRedis, BackendRedis, BackendSQL, BackendMemory),
		DatabaseDSN:  getenv("NAVS_DATABASE_DSN", "navs.db"),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("NAVS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("NAVS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("NAVS_TRUST_PROXY", true),

		CORSOrigins:     splitAndTrim(getenv("NAVS_CORS_ORIGINS", "*")),
		RateLimitBurst:  getenvInt("NAVS_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("NAVS_RATE_LIMIT_PER_MIN", 120),
	}

	switch cfg.StoreBackend {
	case BackendRedis:
		loadRedis(cfg)
	case BackendSQL:
		cfg.DatabaseConnectTimeout = mustDuration("NAVS_DATABASE_CONNECT_TIMEOUT", 30*time.Second)
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		cfgCopy.DatabaseDSN = redactDSN(cfg.DatabaseDSN)
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("NAVS_REDIS_ADDR")
	cfg.RedisUser = getenv("NAVS_REDIS_USERNAME", "default")
	cfg.RedisPasswordRequired = mustBool("NAVS_REDIS_PASSWORD_REQUIRED", true)
	cfg.RedisPassword = getenv("NAVS_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("NAVS_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: NAVS_REDIS_PASSWORD is required when NAVS_REDIS_PASSWORD_REQUIRED=true")
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func mustOneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(getenv(key, def))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %s (expected one of %s)", key, v, strings.Join(allowed, ", ")))
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// redactDSN hides the password of a URL-style DSN.
// Example: "postgres://navs:secret@db/navs" -> "postgres://navs:***@db/navs"
func redactDSN(dsn string) string {
	scheme := strings.Index(dsn, "://")
	at := strings.LastIndex(dsn, "@")
	if scheme == -1 || at == -1 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	user, _, hasPassword := strings.Cut(creds, ":")
	if !hasPassword {
		return dsn
	}
	return dsn[:scheme+3] + user + ":***" + dsn[at:]
}
