package seeder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

const DefaultBatchSize = 500

type SeederMetrics struct {
	TotalRecords       int64
	ValidZones         int64
	InvalidZones       int64
	DuplicateZones     int64
	ProcessingDuration time.Duration
	DatabaseDuration   time.Duration
	BatchSize          int
}

// zoneFile is the on-disk layout of the zone reference data.
type zoneFile struct {
	Zones []models.Zone `yaml:"zones"`
}

// SeedZones loads the zone file at path and upserts its valid zones in batches.
func SeedZones(ctx context.Context, store db.ZoneStore, path string, batchSize int) (*SeederMetrics, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	startTime := time.Now()
	metrics := &SeederMetrics{BatchSize: batchSize}

	zones, err := ProcessZonesFile(path, metrics)
	if err != nil {
		return metrics, fmt.Errorf("failed to process zones file: %w", err)
	}

	metrics.ProcessingDuration = time.Since(startTime)
	log.Printf("Zone file processed: Records=%d, Valid=%d, Invalid=%d, Duplicates=%d, Processing Time=%v",
		metrics.TotalRecords, metrics.ValidZones, metrics.InvalidZones, metrics.DuplicateZones, metrics.ProcessingDuration)

	dbStart := time.Now()
	total := len(zones)
	processed := 0
	for i := 0; i < total; i += batchSize {
		end := min(i+batchSize, total)
		batch := zones[i:end]
		if err := store.UpsertZones(ctx, batch); err != nil {
			return metrics, fmt.Errorf("failed to upsert zones %d-%d: %w", i, end, err)
		}

		processed += len(batch)
		log.Printf("Progress: %d/%d zones upserted (%.1f%%)",
			processed, total, float64(processed)/float64(total)*100)
	}

	metrics.DatabaseDuration = time.Since(dbStart)
	log.Printf("Zone seeding completed: %+v", metrics)
	return metrics, nil
}

func ProcessZonesFile(path string, metrics *SeederMetrics) ([]models.Zone, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zones file: %w", err)
	}
	defer file.Close()

	return ParseZones(bufio.NewReader(file), metrics)
}

// ParseZones decodes and validates zones. Invalid entries and repeated ids are
// counted and skipped; the first occurrence of an id wins.
func ParseZones(r io.Reader, metrics *SeederMetrics) ([]models.Zone, error) {
	var f zoneFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return []models.Zone{}, nil
		}
		return nil, fmt.Errorf("failed to decode zones: %w", err)
	}

	seen := make(map[string]bool, len(f.Zones))
	zones := make([]models.Zone, 0, len(f.Zones))
	for _, z := range f.Zones {
		atomic.AddInt64(&metrics.TotalRecords, 1)
		if err := z.Validate(); err != nil {
			atomic.AddInt64(&metrics.InvalidZones, 1)
			log.Printf("Skipping zone: %v", err)
			continue
		}
		if seen[z.ID] {
			atomic.AddInt64(&metrics.DuplicateZones, 1)
			log.Printf("Skipping duplicate zone id %s", z.ID)
			continue
		}
		seen[z.ID] = true
		atomic.AddInt64(&metrics.ValidZones, 1)
		zones = append(zones, z)
	}
	return zones, nil
}
