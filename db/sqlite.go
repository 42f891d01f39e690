package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"

	_ "modernc.org/sqlite"
)

// SQLiteLedger is the embedded single-file backend. Timestamps are stored as
// unix milliseconds so range filters compare numerically.
type SQLiteLedger struct {
	conn *sql.DB
}

// OpenSQLite opens or creates the ledger database at path. ":memory:" gives a
// throwaway database.
func OpenSQLite(path string) (*SQLiteLedger, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	// One connection: SQLite has a single writer, and an in-memory database
	// only exists on the connection that created it.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	l := &SQLiteLedger{conn: conn}
	if err := l.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	log.Printf("SQLite ledger ready at %s", path)
	return l, nil
}

func (l *SQLiteLedger) initializeSchema() error {
	_, err := l.conn.Exec(`
		CREATE TABLE IF NOT EXISTS hazards (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			reported_by TEXT NOT NULL DEFAULT '',
			vessel_id TEXT,
			reported_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL,
			verified INTEGER NOT NULL DEFAULT 0,
			upvotes INTEGER NOT NULL DEFAULT 0,
			downvotes INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_hazards_expires_at ON hazards(expires_at);

		CREATE TABLE IF NOT EXISTS traffic_reports (
			id TEXT PRIMARY KEY,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			density TEXT NOT NULL,
			vessel_count INTEGER NOT NULL,
			port_code TEXT,
			reported_at INTEGER NOT NULL,
			reported_by TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_traffic_reported_at ON traffic_reports(reported_at);

		CREATE TABLE IF NOT EXISTS zones (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			polygon TEXT NOT NULL
		);
	`)
	return err
}

func (l *SQLiteLedger) ActiveHazards(ctx context.Context, now time.Time) ([]models.Hazard, error) {
	rows, err := l.conn.QueryContext(ctx, `
		SELECT id, type, severity, lat, lng, description, reported_by, vessel_id,
		       reported_at, expires_at, verified, upvotes, downvotes
		FROM hazards
		WHERE expires_at > $1
		ORDER BY reported_at ASC, id ASC
	`, now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query active hazards: %w", err)
	}
	defer rows.Close()

	var hazards []models.Hazard
	for rows.Next() {
		h, err := scanSQLiteHazard(rows)
		if err != nil {
			return nil, err
		}
		hazards = append(hazards, h)
	}
	return hazards, rows.Err()
}

func (l *SQLiteLedger) GetHazard(ctx context.Context, id string) (models.Hazard, bool, error) {
	row := l.conn.QueryRowContext(ctx, `
		SELECT id, type, severity, lat, lng, description, reported_by, vessel_id,
		       reported_at, expires_at, verified, upvotes, downvotes
		FROM hazards WHERE id = $1
	`, id)
	h, err := scanSQLiteHazard(row)
	if err == sql.ErrNoRows {
		return models.Hazard{}, false, nil
	}
	if err != nil {
		return models.Hazard{}, false, err
	}
	return h, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteHazard(row rowScanner) (models.Hazard, error) {
	var (
		h                     models.Hazard
		vesselID              sql.NullString
		reportedAt, expiresAt int64
	)
	err := row.Scan(&h.ID, &h.Type, &h.Severity, &h.Location.Lat, &h.Location.Lng,
		&h.Description, &h.ReportedBy, &vesselID, &reportedAt, &expiresAt,
		&h.Verified, &h.Upvotes, &h.Downvotes)
	if err != nil {
		if err == sql.ErrNoRows {
			return h, err
		}
		return h, fmt.Errorf("failed to scan hazard: %w", err)
	}
	if vesselID.Valid {
		h.VesselID = &vesselID.String
	}
	h.ReportedAt = time.UnixMilli(reportedAt).UTC()
	h.ExpiresAt = time.UnixMilli(expiresAt).UTC()
	return h, nil
}

func (l *SQLiteLedger) InsertHazard(ctx context.Context, h models.Hazard) error {
	_, err := l.conn.ExecContext(ctx, `
		INSERT INTO hazards (id, type, severity, lat, lng, description, reported_by, vessel_id,
		                     reported_at, expires_at, verified, upvotes, downvotes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, h.ID, string(h.Type), string(h.Severity), h.Location.Lat, h.Location.Lng,
		h.Description, h.ReportedBy, nullString(h.VesselID),
		h.ReportedAt.UnixMilli(), h.ExpiresAt.UnixMilli(), h.Verified, h.Upvotes, h.Downvotes)
	if err != nil {
		return fmt.Errorf("failed to insert hazard %s: %w", h.ID, err)
	}
	return nil
}

func (l *SQLiteLedger) VoteHazard(ctx context.Context, id string, dir models.VoteDirection) (bool, error) {
	return execVote(ctx, l.conn, id, dir)
}

func (l *SQLiteLedger) RecentTraffic(ctx context.Context, since time.Time) ([]models.TrafficReport, error) {
	rows, err := l.conn.QueryContext(ctx, `
		SELECT id, lat, lng, density, vessel_count, port_code, reported_at, reported_by
		FROM traffic_reports
		WHERE reported_at > $1
		ORDER BY reported_at ASC
	`, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query recent traffic: %w", err)
	}
	defer rows.Close()

	var reports []models.TrafficReport
	for rows.Next() {
		var (
			r          models.TrafficReport
			portCode   sql.NullString
			reportedAt int64
		)
		if err := rows.Scan(&r.ID, &r.Location.Lat, &r.Location.Lng, &r.Density,
			&r.VesselCount, &portCode, &reportedAt, &r.ReportedBy); err != nil {
			return nil, fmt.Errorf("failed to scan traffic report: %w", err)
		}
		if portCode.Valid {
			r.PortCode = &portCode.String
		}
		r.ReportedAt = time.UnixMilli(reportedAt).UTC()
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (l *SQLiteLedger) InsertTraffic(ctx context.Context, r models.TrafficReport) error {
	_, err := l.conn.ExecContext(ctx, `
		INSERT INTO traffic_reports (id, lat, lng, density, vessel_count, port_code, reported_at, reported_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.ID, r.Location.Lat, r.Location.Lng, string(r.Density), r.VesselCount,
		nullString(r.PortCode), r.ReportedAt.UnixMilli(), r.ReportedBy)
	if err != nil {
		return fmt.Errorf("failed to insert traffic report %s: %w", r.ID, err)
	}
	return nil
}

func (l *SQLiteLedger) Zones(ctx context.Context) ([]models.Zone, error) {
	rows, err := l.conn.QueryContext(ctx, `SELECT id, name, type, description, polygon FROM zones ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()
	return scanZones(rows)
}

func (l *SQLiteLedger) UpsertZones(ctx context.Context, zones []models.Zone) error {
	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, z := range zones {
		polygon, err := json.Marshal(z.Polygon)
		if err != nil {
			return fmt.Errorf("failed to encode polygon of zone %s: %w", z.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO zones (id, name, type, description, polygon)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				type = excluded.type,
				description = excluded.description,
				polygon = excluded.polygon
		`, z.ID, z.Name, string(z.Type), z.Description, string(polygon))
		if err != nil {
			return fmt.Errorf("failed to upsert zone %s: %w", z.ID, err)
		}
	}
	return tx.Commit()
}

func (l *SQLiteLedger) Close() error {
	return l.conn.Close()
}
