package seeder

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEEPML1818/MarineTrack-app-sub000/db"
	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

const sampleZones = `
zones:
  - id: sg-east-anchorage
    name: Eastern Anchorage
    type: safe
    description: Designated anchorage east of the harbour
    polygon:
      - {lat: 1.20, lng: 103.75}
      - {lat: 1.20, lng: 103.85}
      - {lat: 1.30, lng: 103.85}
      - {lat: 1.30, lng: 103.75}
  - id: live-firing
    name: Live Firing Area
    type: restricted
    polygon:
      - {lat: 0.90, lng: 103.90}
      - {lat: 0.90, lng: 104.10}
      - {lat: 1.10, lng: 104.10}
  - id: broken
    name: Two Points
    type: fishing
    polygon:
      - {lat: 1.0, lng: 104.0}
      - {lat: 1.1, lng: 104.1}
  - id: live-firing
    name: Duplicate
    type: restricted
    polygon:
      - {lat: 0.0, lng: 0.0}
      - {lat: 0.0, lng: 1.0}
      - {lat: 1.0, lng: 1.0}
  - id: bad-type
    name: Unknown
    type: lagoon
    polygon:
      - {lat: 0.0, lng: 0.0}
      - {lat: 0.0, lng: 1.0}
      - {lat: 1.0, lng: 1.0}
`

func TestParseZones(t *testing.T) {
	metrics := &SeederMetrics{}
	zones, err := ParseZones(strings.NewReader(sampleZones), metrics)
	require.NoError(t, err)

	require.Len(t, zones, 2)
	assert.Equal(t, "sg-east-anchorage", zones[0].ID)
	assert.Equal(t, models.ZoneSafe, zones[0].Type)
	assert.Len(t, zones[0].Polygon, 4)
	assert.InDelta(t, 103.85, zones[0].Polygon[1].Lng, 1e-9)
	assert.Equal(t, "Live Firing Area", zones[1].Name)

	assert.Equal(t, int64(5), metrics.TotalRecords)
	assert.Equal(t, int64(2), metrics.ValidZones)
	assert.Equal(t, int64(2), metrics.InvalidZones)
	assert.Equal(t, int64(1), metrics.DuplicateZones)
}

func TestParseZonesEmpty(t *testing.T) {
	zones, err := ParseZones(strings.NewReader(""), &SeederMetrics{})
	require.NoError(t, err)
	assert.Empty(t, zones)

	_, err = ParseZones(strings.NewReader("zones: [this is not"), &SeederMetrics{})
	assert.Error(t, err)
}

func TestSeedZones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleZones), 0644))

	store := db.NewMemoryLedger()
	metrics, err := SeedZones(context.Background(), store, path, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.BatchSize)

	zones, err := store.Zones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "sg-east-anchorage", zones[0].ID)

	// Seeding twice upserts rather than duplicating.
	_, err = SeedZones(context.Background(), store, path, 0)
	require.NoError(t, err)
	zones, err = store.Zones(context.Background())
	require.NoError(t, err)
	assert.Len(t, zones, 2)
}

func TestSeedZonesMissingFile(t *testing.T) {
	_, err := SeedZones(context.Background(), db.NewMemoryLedger(), filepath.Join(t.TempDir(), "nope.yaml"), 10)
	assert.Error(t, err)
}
