package main

import (
	"log"

	"github.com/sirupsen/logrus"

	"github.com/SpookyGroup/Spectre-Aegis/internal/cache"
	"github.com/SpookyGroup/Spectre-Aegis/internal/config"
	"github.com/SpookyGroup/Spectre-Aegis/internal/metrics"
	"github.com/SpookyGroup/Spectre-Aegis/internal/odds"
	"github.com/SpookyGroup/Spectre-Aegis/internal/ratelimit"
	"github.com/SpookyGroup/Spectre-Aegis/internal/relay"
	"github.com/SpookyGroup/Spectre-Aegis/internal/server"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	metrics.Initialize()

	store, limiter, err := buildStores(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize stores: %v", err)
	}
	defer store.Close()
	defer limiter.Close()

	forwarder := relay.NewForwarder(cfg, store, logger)
	oddsClient := odds.NewClient(cfg.Odds.BaseURL, cfg.Odds.APIKey, store, logger)

	srv := server.New(cfg, logger, forwarder, limiter, oddsClient)
	if err := srv.Run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildStores selects Redis-backed stores when REDIS_ADDR is set and falls
// back to the bounded in-memory ones.
func buildStores(cfg *config.Config) (cache.Store, ratelimit.Limiter, error) {
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryStore(cfg.CacheTTL, cfg.CacheMaxEntries),
			ratelimit.NewMemoryLimiter(cfg.RateLimitWindow, cfg.RateLimitMax),
			nil
	}

	store, err := cache.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	limiter, err := ratelimit.NewRedisLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		cfg.RateLimitWindow, cfg.RateLimitMax)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, limiter, nil
}
