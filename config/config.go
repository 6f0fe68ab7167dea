package config

import (
	"os"
	"strconv"
	"time"

	"hifisearch/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration
	RedisAddr         string
	RedisDB           int
	RedisStreamPrefix string
	RedisStreamCount  int
	RedisStreamMaxLen int64

	// Memcache configuration
	MemcacheAddr string
	PageCacheTTL time.Duration

	// Scrape session configuration
	MaxPages           int
	MinRequestInterval time.Duration
	NavTimeout         time.Duration
	StableWindow       int
	SessionTimeout     time.Duration

	// Browser configuration
	Headless bool

	// Environment
	Environment string
}

// Load reads the configuration from environment variables with defaults
func Load() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.ParseInt(getEnv("REDIS_STREAM_MAX_LENGTH", "500"), 10, 64)
	pageCacheTTL, _ := strconv.Atoi(getEnv("PAGE_CACHE_TTL_SECONDS", "300"))
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "5"))
	minInterval, _ := strconv.Atoi(getEnv("MIN_REQUEST_INTERVAL_MS", "1500"))
	navTimeout, _ := strconv.Atoi(getEnv("NAV_TIMEOUT_SECONDS", "30"))
	stableWindow, _ := strconv.Atoi(getEnv("STABLE_WINDOW", "2"))
	sessionTimeout, _ := strconv.Atoi(getEnv("SESSION_TIMEOUT_SECONDS", "120"))
	headless, _ := strconv.ParseBool(getEnv("HEADLESS", "true"))

	return &Config{
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:            redisDB,
		RedisStreamPrefix:  getEnv("REDIS_STREAM_PREFIX", "listings"),
		RedisStreamCount:   streamCount,
		RedisStreamMaxLen:  streamMaxLen,
		MemcacheAddr:       getEnv("MEMCACHE_ADDR", "localhost:11211"),
		PageCacheTTL:       time.Duration(pageCacheTTL) * time.Second,
		MaxPages:           maxPages,
		MinRequestInterval: time.Duration(minInterval) * time.Millisecond,
		NavTimeout:         time.Duration(navTimeout) * time.Second,
		StableWindow:       stableWindow,
		SessionTimeout:     time.Duration(sessionTimeout) * time.Second,
		Headless:           headless,
		Environment:        getEnv("HIFISEARCH_ENVIRONMENT", "development"),
	}
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	if c.MaxPages < 1 {
		return errors.NewConfiguration("MAX_PAGES must be at least 1", nil)
	}
	if c.MinRequestInterval < 0 {
		return errors.NewConfiguration("MIN_REQUEST_INTERVAL_MS must not be negative", nil)
	}
	if c.StableWindow < 1 {
		return errors.NewConfiguration("STABLE_WINDOW must be at least 1", nil)
	}
	if c.NavTimeout <= 0 {
		return errors.NewConfiguration("NAV_TIMEOUT_SECONDS must be positive", nil)
	}
	if c.RedisStreamCount < 1 {
		return errors.NewConfiguration("REDIS_STREAM_COUNT must be at least 1", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
