package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vitrina/db"
	"vitrina/logger"
	"vitrina/models"
)

// AnalyticsRepository handles database operations for storefront analytics
type AnalyticsRepository struct {
	conn *sql.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository on conn, or on
// the shared db.DB when conn is nil
func NewAnalyticsRepository(conn *sql.DB) *AnalyticsRepository {
	if conn == nil {
		conn = db.DB
	}
	return &AnalyticsRepository{conn: conn}
}

// Ensure AnalyticsRepository implements AnalyticsRepositoryInterface
var _ AnalyticsRepositoryInterface = (*AnalyticsRepository)(nil)

// InsertBatch stores events in a single multi-row INSERT
func (r *AnalyticsRepository) InsertBatch(ctx context.Context, events []models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO analytics_events (session_id, kind, resource_handle, path, occurred_at) VALUES `)
	args := make([]any, 0, len(events)*5)
	for i, e := range events {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		occurred := e.OccurredAt
		if occurred.IsZero() {
			occurred = time.Now()
		}
		args = append(args, e.SessionID, e.Kind, e.ResourceHandle, e.Path, occurred.UTC())
	}

	if _, err := r.conn.ExecContext(ctx, sb.String(), args...); err != nil {
		logger.L().Errorf("❌ Error inserting %d analytics events: %v", len(events), err)
		return fmt.Errorf("failed to insert analytics events: %w", err)
	}
	return nil
}

// TopResources returns the most viewed resources of kind since the given time
func (r *AnalyticsRepository) TopResources(ctx context.Context, kind string, since time.Time, limit int) ([]models.ResourceViewCount, error) {
	query := `
		SELECT resource_handle, COUNT(*) AS views
		FROM analytics_events
		WHERE kind = $1
		  AND occurred_at >= $2
		  AND resource_handle <> ''
		GROUP BY resource_handle
		ORDER BY views DESC, resource_handle ASC
		LIMIT $3
	`
	rows, err := r.conn.QueryContext(ctx, query, kind, since.UTC(), limit)
	if err != nil {
		logger.L().Errorf("❌ Error querying top resources: %v", err)
		return nil, fmt.Errorf("failed to query top resources: %w", err)
	}
	defer rows.Close()

	var out []models.ResourceViewCount
	for rows.Next() {
		var row models.ResourceViewCount
		if err := rows.Scan(&row.ResourceHandle, &row.Views); err != nil {
			return nil, fmt.Errorf("failed to scan top resource: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top resources: %w", err)
	}
	return out, nil
}
