package main

import (
	"context"
	"fmt"
	"log"

	"github.com/DEEPML1818/MarineTrack-app-sub000/config"
	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/searoute"
	"github.com/DEEPML1818/MarineTrack-app-sub000/seeder"
	"github.com/DEEPML1818/MarineTrack-app-sub000/services"
)

// openLedger opens the configured ledger and seeds zones from ZONES_FILE when set.
func openLedger(ctx context.Context, cfg *config.Config) (db.Ledger, error) {
	ledger, err := db.Open(cfg.LedgerDriver, cfg.LedgerSource())
	if err != nil {
		return nil, fmt.Errorf("opening %s ledger: %w", cfg.LedgerDriver, err)
	}
	log.Printf("Using %s ledger", cfg.LedgerDriver)

	if cfg.ZonesFile != "" {
		metrics, err := seeder.SeedZones(ctx, ledger, cfg.ZonesFile, seeder.DefaultBatchSize)
		if err != nil {
			ledger.Close()
			return nil, err
		}
		log.Printf("Seeded %d zones from %s", metrics.ValidZones, cfg.ZonesFile)
	}
	return ledger, nil
}

func newSeaPathResolver(cfg *config.Config) searoute.Resolver {
	client := searoute.NewClient(cfg.SeaRoute.URL, cfg.SeaRoute.Timeout, searoute.WithRetries(cfg.SeaRoute.Retries))
	cache := searoute.NewCache(cfg.SeaRoute.CacheSize)
	return searoute.NewCachingResolver(client, cache, cfg.SeaRoute.CacheTTL)
}

func newEngine(cfg *config.Config, ledger db.Ledger) *services.Engine {
	return services.NewEngine(newSeaPathResolver(cfg), ledger, cfg.EngineOptions())
}
