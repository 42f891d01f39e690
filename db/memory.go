package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// MemoryLedger keeps everything in process. It backs local runs and tests.
type MemoryLedger struct {
	mu      sync.RWMutex
	hazards map[string]models.Hazard
	traffic []models.TrafficReport
	zones   map[string]models.Zone
	order   []string
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		hazards: make(map[string]models.Hazard),
		zones:   make(map[string]models.Zone),
	}
}

func (m *MemoryLedger) ActiveHazards(_ context.Context, now time.Time) ([]models.Hazard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Hazard, 0, len(m.hazards))
	for _, h := range m.hazards {
		if h.IsActive(now) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReportedAt.Equal(out[j].ReportedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReportedAt.Before(out[j].ReportedAt)
	})
	return out, nil
}

func (m *MemoryLedger) GetHazard(_ context.Context, id string) (models.Hazard, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hazards[id]
	return h, ok, nil
}

func (m *MemoryLedger) InsertHazard(_ context.Context, h models.Hazard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hazards[h.ID] = h
	return nil
}

func (m *MemoryLedger) VoteHazard(_ context.Context, id string, dir models.VoteDirection) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.hazards[id]
	if !ok {
		return false, nil
	}
	switch dir {
	case models.VoteUp:
		h.Upvotes++
	case models.VoteDown:
		h.Downvotes++
	}
	m.hazards[id] = h
	return true, nil
}

func (m *MemoryLedger) RecentTraffic(_ context.Context, since time.Time) ([]models.TrafficReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.TrafficReport
	for _, r := range m.traffic {
		if r.ReportedAt.After(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryLedger) InsertTraffic(_ context.Context, r models.TrafficReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traffic = append(m.traffic, r)
	return nil
}

func (m *MemoryLedger) Zones(_ context.Context) ([]models.Zone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Zone, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.zones[id])
	}
	return out, nil
}

// UpsertZones replaces zones by id and keeps first-insertion order, which is
// the order zone classification walks them in.
func (m *MemoryLedger) UpsertZones(_ context.Context, zones []models.Zone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, z := range zones {
		if _, exists := m.zones[z.ID]; !exists {
			m.order = append(m.order, z.ID)
		}
		m.zones[z.ID] = z
	}
	return nil
}

func (m *MemoryLedger) Close() error { return nil }
