package main

import (
	"context"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Inventory/internal/inventory"
	"Inventory/pkg/config"
	"Inventory/pkg/kit"
)

func main() {
	cfg, err := config.Read()
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	logger := kit.NewLogger(cfg.ServiceName, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	store := inventory.NewMemStoreSeeded(cfg.SeedData)
	categories, products := store.Counts()
	logger.Info("store ready",
		zap.Bool("seeded", cfg.SeedData),
		zap.Int("categories", categories),
		zap.Int("products", products),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &inventory.Server{Store: store, Log: logger}
	h := inventory.NewHandler(s, inventory.HTTPDeps{
		Log:               logger,
		Service:           cfg.ServiceName,
		Registry:          reg,
		MetricsEnabled:    cfg.MetricsEnabled,
		MetricsToken:      cfg.MetricsToken,
		WriteLimitPerMin:  cfg.WriteLimitPerMin,
		TrustForwardedFor: cfg.TrustForwardedFor,
	})

	if err := kit.RunHTTPServer(context.Background(), ":"+cfg.Port, h, logger); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
