package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// Stats is a snapshot of the engine counters.
type Stats struct {
	Uptime           string `json:"uptime"`
	RoutesCalculated uint64 `json:"routes_calculated"`
	Unreachable      uint64 `json:"unreachable"`
	Degraded         uint64 `json:"degraded"`
	HazardsReported  uint64 `json:"hazards_reported"`
	TrafficReported  uint64 `json:"traffic_reported"`
	Votes            uint64 `json:"votes"`
	Errors           uint64 `json:"errors"`
}

func (e *Engine) Stats() Stats {
	return Stats{
		Uptime:           time.Since(e.startTime).Round(time.Second).String(),
		RoutesCalculated: atomic.LoadUint64(&e.stats.routesCalculated),
		Unreachable:      atomic.LoadUint64(&e.stats.unreachable),
		Degraded:         atomic.LoadUint64(&e.stats.degraded),
		HazardsReported:  atomic.LoadUint64(&e.stats.hazardsReported),
		TrafficReported:  atomic.LoadUint64(&e.stats.trafficReported),
		Votes:            atomic.LoadUint64(&e.stats.votes),
		Errors:           atomic.LoadUint64(&e.stats.errors),
	}
}

// logEvent provides structured logging for engine events
func (e *Engine) logEvent(eventType string, msg string, extra map[string]interface{}) {
	event := map[string]interface{}{
		"timestamp":  time.Now().Format(time.RFC3339),
		"event_type": eventType,
		"message":    msg,
		"stats":      e.Stats(),
	}

	for k, v := range extra {
		event[k] = v
	}

	jsonEvent, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling log event: %v", err)
		return
	}

	log.Printf("%s\n", string(jsonEvent))

	if e.opts.LogDir == "" {
		return
	}
	if err := os.MkdirAll(e.opts.LogDir, 0755); err != nil {
		log.Printf("Error creating log directory: %v", err)
		return
	}

	logFile := filepath.Join(e.opts.LogDir, fmt.Sprintf("engine_%s.log", time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Error opening log file: %v", err)
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "%s\n", string(jsonEvent))
}

// LogStatsPeriodically writes a statistics event every interval until ctx ends.
func (e *Engine) LogStatsPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			routes := atomic.LoadUint64(&e.stats.routesCalculated)
			degradedRate := 0.0
			if routes > 0 {
				degradedRate = float64(atomic.LoadUint64(&e.stats.degraded)) / float64(routes) * 100
			}
			e.logEvent("statistics", "Periodic statistics update", map[string]interface{}{
				"routes_per_minute": float64(routes) / time.Since(e.startTime).Minutes(),
				"degraded_rate":     degradedRate,
			})
		}
	}
}
