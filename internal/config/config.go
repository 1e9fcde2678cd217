package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/apihub/internal/prefs"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per inbound request budget (ex: 15s)
	CORSOrigins     []string      // allowed browser origins, empty = same origin only
	TrustProxy      bool          // take client addresses from X-Forwarded-For & co in access logs

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreURL       string        // remote Listing Store root (ex: https://store.example.com)
	FetchTimeout   time.Duration // per outbound store request (default: 10s)
	ReloadInterval time.Duration // periodic catalog reload, 0 = manual only

	Theme           prefs.Theme   // default colour scheme for clients without an override
	DraftTTL        time.Duration // untouched drafts older than this are dropped (default: 24h)
	DraftGCInterval time.Duration // how often abandoned drafts are collected (default: 1h)
	ImportLimit     int64         // max size in bytes of an uploaded definition file

	// Redis, optional: an empty address keeps preferences in memory
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
	RedisPrefsTTL       time.Duration // lifetime of a stored theme override
}

// ClientConfig is the subset used by the one-shot CLI commands.
type ClientConfig struct {
	StoreURL     string
	FetchTimeout time.Duration
	LogLevel     string
}

// Load reads the server configuration from the environment, after loading
// a .env file when one is present. Missing required values panic.
func Load() *Config {
	loadDotEnv()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("APIHUB_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("APIHUB_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("APIHUB_REQUEST_TIMEOUT", 15*time.Second),
		CORSOrigins:     splitAndTrim(getenv("APIHUB_CORS_ORIGINS", "")),
		TrustProxy:      mustBool("APIHUB_TRUST_PROXY", false),

		// Logging
		LogLevel:  getenv("APIHUB_LOG_LEVEL", "info"),
		PrettyLog: mustBool("APIHUB_PRETTY_LOG", true),

		// Listing Store
		StoreURL:       requireEnv("APIHUB_STORE_URL"),
		FetchTimeout:   mustDuration("APIHUB_FETCH_TIMEOUT", 10*time.Second),
		ReloadInterval: mustDuration("APIHUB_RELOAD_INTERVAL", 0),

		// Session state
		Theme:           mustTheme("APIHUB_THEME", prefs.ThemeLight),
		DraftTTL:        mustDuration("APIHUB_DRAFT_TTL", 24*time.Hour),
		DraftGCInterval: mustDuration("APIHUB_DRAFT_GC_INTERVAL", time.Hour),
		ImportLimit:     int64(getenvInt("APIHUB_IMPORT_LIMIT", 5<<20)),

		// Redis settings
		RedisAddr:           getenv("APIHUB_REDIS_ADDR", ""),
		RedisUser:           getenv("APIHUB_REDIS_USERNAME", ""),
		RedisPassword:       getenv("APIHUB_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("APIHUB_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),
		RedisPrefsTTL:       mustDuration("REDIS_PREFS_TTL", 90*24*time.Hour),
	}

	if cfg.DraftGCInterval <= 0 {
		panic("❌ FATAL: APIHUB_DRAFT_GC_INTERVAL must be positive")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// LoadClient reads the settings needed to talk to the store. StoreURL may
// be empty; the caller decides whether a flag supplies it.
func LoadClient() *ClientConfig {
	loadDotEnv()

	return &ClientConfig{
		StoreURL:     getenv("APIHUB_STORE_URL", ""),
		FetchTimeout: mustDuration("APIHUB_FETCH_TIMEOUT", 10*time.Second),
		LogLevel:     getenv("APIHUB_LOG_LEVEL", "warn"),
	}
}

// RedisEnabled reports whether preferences go to redis.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// loadDotEnv never overrides variables already set in the process.
func loadDotEnv() {
	file := getenv("APIHUB_ENV_FILE", ".env")
	if _, err := os.Stat(file); err != nil {
		return
	}
	if err := godotenv.Load(file); err != nil {
		panic(fmt.Sprintf("❌ FATAL: cannot read %s: %v", file, err))
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

func mustTheme(key string, def prefs.Theme) prefs.Theme {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	t, err := prefs.ParseTheme(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %q (%v)", key, v, err))
	}
	return t
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
