package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
	"github.com/cridenour/go-postgis"
	"github.com/lib/pq"
)

// PostgresLedger stores reports in PostGIS. Locations are GEOGRAPHY(POINT, 4326)
// written and read as EWKB through go-postgis.
type PostgresLedger struct {
	conn *sql.DB
}

// PostgresDSN builds a lib/pq connection string.
func PostgresDSN(host, user, password, dbname, sslmode string) string {
	parts := []string{
		"user=" + user,
		"password=" + password,
		"dbname=" + dbname,
		"sslmode=" + sslmode,
	}
	if host != "" {
		parts = append(parts, "host="+host)
	}
	return strings.Join(parts, " ")
}

func OpenPostgres(dsn string) (*PostgresLedger, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	l := &PostgresLedger{conn: conn}
	if err := l.initializeSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	log.Println("Postgres ledger ready")
	return l, nil
}

func (l *PostgresLedger) initializeSchema() error {
	_, err := l.conn.Exec(`CREATE EXTENSION IF NOT EXISTS postgis`)
	if err != nil {
		return fmt.Errorf("failed to enable postgis: %w", err)
	}

	_, err = l.conn.Exec(`
		CREATE TABLE IF NOT EXISTS hazards (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			location GEOGRAPHY(POINT, 4326) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			reported_by TEXT NOT NULL DEFAULT '',
			vessel_id TEXT,
			reported_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL CHECK (expires_at > reported_at),
			verified BOOLEAN NOT NULL DEFAULT false,
			upvotes INT NOT NULL DEFAULT 0,
			downvotes INT NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_hazards_expires_at ON hazards (expires_at);
		CREATE INDEX IF NOT EXISTS idx_hazards_location ON hazards USING GIST (location);

		CREATE TABLE IF NOT EXISTS traffic_reports (
			id TEXT PRIMARY KEY,
			location GEOGRAPHY(POINT, 4326) NOT NULL,
			density TEXT NOT NULL,
			vessel_count INT NOT NULL CHECK (vessel_count >= 1),
			port_code TEXT,
			reported_at TIMESTAMPTZ NOT NULL,
			reported_by TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_traffic_reported_at ON traffic_reports (reported_at);

		CREATE TABLE IF NOT EXISTS zones (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			polygon JSONB NOT NULL,
			area GEOGRAPHY(POLYGON, 4326),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create ledger tables: %w", err)
	}
	return nil
}

func toPoint(p models.GeoPoint) postgis.PointS {
	return postgis.PointS{SRID: 4326, X: p.Lng, Y: p.Lat}
}

func fromPoint(p postgis.PointS) models.GeoPoint {
	return models.GeoPoint{Lat: p.Y, Lng: p.X}
}

// Geometry columns come back as hex EWKB text, which is what postgis.PointS scans.
const hazardColumns = `id, type, severity, location::geometry, description, reported_by,
	vessel_id, reported_at, expires_at, verified, upvotes, downvotes`

const trafficColumns = `id, location::geometry, density, vessel_count, port_code, reported_at, reported_by`

func scanPostgresHazard(row rowScanner) (models.Hazard, error) {
	var (
		h        models.Hazard
		location postgis.PointS
		vesselID sql.NullString
	)
	err := row.Scan(&h.ID, &h.Type, &h.Severity, &location, &h.Description, &h.ReportedBy,
		&vesselID, &h.ReportedAt, &h.ExpiresAt, &h.Verified, &h.Upvotes, &h.Downvotes)
	if err != nil {
		if err == sql.ErrNoRows {
			return h, err
		}
		return h, fmt.Errorf("failed to scan hazard: %w", err)
	}
	h.Location = fromPoint(location)
	if vesselID.Valid {
		h.VesselID = &vesselID.String
	}
	return h, nil
}

func (l *PostgresLedger) ActiveHazards(ctx context.Context, now time.Time) ([]models.Hazard, error) {
	rows, err := l.conn.QueryContext(ctx, `SELECT `+hazardColumns+`
		FROM hazards
		WHERE expires_at > $1
		ORDER BY reported_at ASC, id ASC`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query active hazards: %w", err)
	}
	defer rows.Close()

	var hazards []models.Hazard
	for rows.Next() {
		h, err := scanPostgresHazard(rows)
		if err != nil {
			return nil, err
		}
		hazards = append(hazards, h)
	}
	return hazards, rows.Err()
}

func (l *PostgresLedger) GetHazard(ctx context.Context, id string) (models.Hazard, bool, error) {
	h, err := scanPostgresHazard(l.conn.QueryRowContext(ctx, `SELECT `+hazardColumns+` FROM hazards WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return models.Hazard{}, false, nil
	}
	if err != nil {
		return models.Hazard{}, false, err
	}
	return h, true, nil
}

func (l *PostgresLedger) InsertHazard(ctx context.Context, h models.Hazard) error {
	_, err := l.conn.ExecContext(ctx, `
		INSERT INTO hazards (id, type, severity, location, description, reported_by, vessel_id,
		                     reported_at, expires_at, verified, upvotes, downvotes)
		VALUES ($1, $2, $3, ST_GeomFromEWKB($4)::geography, $5, $6, $7, $8, $9, $10, $11, $12)
	`, h.ID, string(h.Type), string(h.Severity), toPoint(h.Location), h.Description, h.ReportedBy,
		nullString(h.VesselID), h.ReportedAt, h.ExpiresAt, h.Verified, h.Upvotes, h.Downvotes)
	if err != nil {
		return fmt.Errorf("failed to insert hazard %s: %w", h.ID, err)
	}
	return nil
}

func (l *PostgresLedger) VoteHazard(ctx context.Context, id string, dir models.VoteDirection) (bool, error) {
	return execVote(ctx, l.conn, id, dir)
}

func (l *PostgresLedger) RecentTraffic(ctx context.Context, since time.Time) ([]models.TrafficReport, error) {
	rows, err := l.conn.QueryContext(ctx, `
		SELECT `+trafficColumns+`
		FROM traffic_reports
		WHERE reported_at > $1
		ORDER BY reported_at ASC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent traffic: %w", err)
	}
	defer rows.Close()

	var reports []models.TrafficReport
	for rows.Next() {
		var (
			r        models.TrafficReport
			location postgis.PointS
			portCode sql.NullString
		)
		if err := rows.Scan(&r.ID, &location, &r.Density, &r.VesselCount, &portCode, &r.ReportedAt, &r.ReportedBy); err != nil {
			return nil, fmt.Errorf("failed to scan traffic report: %w", err)
		}
		r.Location = fromPoint(location)
		if portCode.Valid {
			r.PortCode = &portCode.String
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (l *PostgresLedger) InsertTraffic(ctx context.Context, r models.TrafficReport) error {
	_, err := l.conn.ExecContext(ctx, `
		INSERT INTO traffic_reports (id, location, density, vessel_count, port_code, reported_at, reported_by)
		VALUES ($1, ST_GeomFromEWKB($2)::geography, $3, $4, $5, $6, $7)
	`, r.ID, toPoint(r.Location), string(r.Density), r.VesselCount, nullString(r.PortCode), r.ReportedAt, r.ReportedBy)
	if err != nil {
		return fmt.Errorf("failed to insert traffic report %s: %w", r.ID, err)
	}
	return nil
}

func (l *PostgresLedger) Zones(ctx context.Context) ([]models.Zone, error) {
	rows, err := l.conn.QueryContext(ctx, `SELECT id, name, type, description, polygon::text FROM zones ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	defer rows.Close()
	return scanZones(rows)
}

// UpsertZones copies the batch into a temp table and merges it, so a reseed
// touches the zones table in one statement.
func (l *PostgresLedger) UpsertZones(ctx context.Context, zones []models.Zone) error {
	tx, err := l.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		CREATE TEMPORARY TABLE temp_zones (
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL,
			polygon TEXT NOT NULL,
			area TEXT NOT NULL
		) ON COMMIT DROP
	`)
	if err != nil {
		return fmt.Errorf("failed to create temp table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("temp_zones", "id", "name", "type", "description", "polygon", "area"))
	if err != nil {
		return fmt.Errorf("failed to prepare COPY statement: %w", err)
	}
	defer stmt.Close()

	for _, z := range zones {
		polygon, err := json.Marshal(z.Polygon)
		if err != nil {
			return fmt.Errorf("failed to encode polygon of zone %s: %w", z.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, z.ID, z.Name, string(z.Type), z.Description, string(polygon), polygonEWKT(z.Polygon)); err != nil {
			return fmt.Errorf("failed to COPY zone %s: %w", z.ID, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to flush COPY buffer: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO zones (id, name, type, description, polygon, area)
		SELECT id, name, type, description, polygon::jsonb, ST_GeogFromText(area)
		FROM temp_zones
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			description = EXCLUDED.description,
			polygon = EXCLUDED.polygon,
			area = EXCLUDED.area
	`)
	if err != nil {
		return fmt.Errorf("failed to merge zones: %w", err)
	}
	return tx.Commit()
}

// polygonEWKT renders a closed ring, repeating the first vertex at the end.
func polygonEWKT(polygon []models.GeoPoint) string {
	coords := make([]string, 0, len(polygon)+1)
	for _, v := range polygon {
		coords = append(coords, fmt.Sprintf("%f %f", v.Lng, v.Lat))
	}
	if len(polygon) > 0 {
		coords = append(coords, fmt.Sprintf("%f %f", polygon[0].Lng, polygon[0].Lat))
	}
	return "SRID=4326;POLYGON((" + strings.Join(coords, ", ") + "))"
}

func (l *PostgresLedger) Close() error {
	return l.conn.Close()
}
