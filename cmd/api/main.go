package main

import (
	"context"
	"log"
	"time"

	"tracking-proxy/internal/core/cache"
	"tracking-proxy/internal/core/config"
	"tracking-proxy/internal/core/logger"
	"tracking-proxy/internal/core/metrics"
	"tracking-proxy/internal/core/server"
	trackingadapter "tracking-proxy/internal/features/tracking/adapters"
	trackinghandler "tracking-proxy/internal/features/tracking/handler"
	trackingservice "tracking-proxy/internal/features/tracking/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const redisKeyPrefix = "tracking-proxy:"

// @title Tracking Proxy API
// @version 1.0
// @description Proxies package lookups to the upstream tracking provider, with caching and fuzzy matching of mistyped codes.
// @contact.name API Support
// @license.name MIT
// @host localhost:3000
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	store, err := newCache(cfg.Cache)
	if err != nil {
		l.Fatal("Cache initialization failed", zap.String("driver", cfg.Cache.Driver), zap.Error(err))
	}
	defer store.Close()

	// Initialize Tracking Provider
	fuzion := trackingadapter.NewFuzionAdapter(cfg.Provider, m)
	provider := trackingadapter.NewCachedProvider(fuzion, store, cfg.Cache.TTL(), m)

	// Initialize Tracking Service & Handler
	trackingSvc := trackingservice.NewTrackingService(
		provider,
		trackingservice.NewCandidateGenerator(cfg.Fuzzy.MaxCandidates),
		m,
	)
	trackingHdl := trackinghandler.NewTrackingHandler(trackingSvc)

	srv := server.New(cfg, registry)

	// Register Routes
	trackingHdl.Register(srv.App)

	l.Info("Tracking proxy configured",
		zap.String("provider_base", cfg.Provider.BaseURL),
		zap.Duration("provider_timeout", cfg.Provider.Timeout()),
		zap.Stringer("provider_proxy", cfg.Provider.Proxy.Settings()),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Duration("cache_ttl", cfg.Cache.TTL()),
		zap.Int("max_candidates", cfg.Fuzzy.MaxCandidates),
	)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

func newCache(cfg config.CacheConfig) (cache.Cache, error) {
	if cfg.Driver != config.CacheDriverRedis {
		return cache.NewMemoryAdapter(), nil
	}

	store, err := cache.NewRedisAdapter(cfg.RedisURL, redisKeyPrefix)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, err
	}
	logger.Get().Info("Redis connection verified")
	return store, nil
}
