package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all gateway configuration. It is loaded once at startup and
// never mutated afterwards.
type Config struct {
	Port int

	// Upstream relay settings. The upstream URL and credential come from
	// configuration only; values supplied by callers are ignored.
	UpstreamURL     string
	UpstreamKey     string
	AllowedBackends []string
	MockUpstream    bool

	CacheTTL        time.Duration
	RateLimitWindow time.Duration
	RateLimitMax    int

	// Upper bound for the in-memory stores.
	CacheMaxEntries int

	Redis RedisConfig
	Odds  OddsConfig

	LogLevel string
}

// RedisConfig holds the optional Redis connection settings. An empty Addr
// selects the in-memory stores.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// OddsConfig holds settings for The Odds API client.
type OddsConfig struct {
	APIKey  string
	BaseURL string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		Port:            v.GetInt("PORT"),
		UpstreamURL:     v.GetString("SUPABASE_URL"),
		UpstreamKey:     v.GetString("SUPABASE_KEY"),
		MockUpstream:    v.GetBool("MOCK_UPSTREAM"),
		CacheTTL:        time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
		RateLimitWindow: time.Duration(v.GetInt("RATE_LIMIT_WINDOW")) * time.Second,
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		CacheMaxEntries: v.GetInt("CACHE_MAX_ENTRIES"),
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Odds: OddsConfig{
			APIKey:  v.GetString("ODDS_API_KEY"),
			BaseURL: v.GetString("ODDS_API_URL"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if raw := v.GetString("ALLOWED_BACKENDS"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.AllowedBackends = append(cfg.AllowedBackends, p)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 3000)
	v.SetDefault("CACHE_TTL", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", 60)
	v.SetDefault("RATE_LIMIT_MAX", 30)
	v.SetDefault("CACHE_MAX_ENTRIES", 10000)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ODDS_API_URL", "https://api.the-odds-api.com/v4")
	v.SetDefault("LOG_LEVEL", "info")
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be positive")
	}
	return nil
}

// BackendAllowed reports whether the given upstream URL passes the allowlist.
// An empty allowlist admits every upstream.
func (c *Config) BackendAllowed(upstream string) bool {
	if len(c.AllowedBackends) == 0 {
		return true
	}
	for _, prefix := range c.AllowedBackends {
		if strings.HasPrefix(upstream, prefix) {
			return true
		}
	}
	return false
}
