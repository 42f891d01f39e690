package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/DEEPML1818/MarineTrack-app-sub000/models"
)

// Helpers shared by the SQL backends. Both drivers accept $n placeholders.

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func execVote(ctx context.Context, conn *sql.DB, id string, dir models.VoteDirection) (bool, error) {
	var query string
	switch dir {
	case models.VoteUp:
		query = `UPDATE hazards SET upvotes = upvotes + 1 WHERE id = $1`
	case models.VoteDown:
		query = `UPDATE hazards SET downvotes = downvotes + 1 WHERE id = $1`
	default:
		return false, fmt.Errorf("%w: vote direction %q", models.ErrInvalidRequest, dir)
	}

	result, err := conn.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to record vote on hazard %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanZones(rows *sql.Rows) ([]models.Zone, error) {
	var zones []models.Zone
	for rows.Next() {
		var (
			z       models.Zone
			polygon string
		)
		if err := rows.Scan(&z.ID, &z.Name, &z.Type, &z.Description, &polygon); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		if err := json.Unmarshal([]byte(polygon), &z.Polygon); err != nil {
			return nil, fmt.Errorf("failed to decode polygon of zone %s: %w", z.ID, err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}
