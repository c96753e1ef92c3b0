package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the cross-entity aggregate queries behind the dashboard.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a dashboard repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CountMembers returns the number of members in an organization.
func (r *Repository) CountMembers(ctx context.Context, orgID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE organization_id = $1`, orgID).Scan(&n)
	return n, err
}

// CountEventsInMonth returns events starting within the month containing now.
func (r *Repository) CountEventsInMonth(ctx context.Context, orgID uuid.UUID, now time.Time) (int, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events
		WHERE organization_id = $1 AND starts_at >= $2 AND starts_at < $3`,
		orgID, monthStart, monthEnd).Scan(&n)
	return n, err
}

// NewMembersByDay returns per-day counts of members created within [from, to].
func (r *Repository) NewMembersByDay(ctx context.Context, orgID uuid.UUID, from, to time.Time) (map[string]int, error) {
	const q = `SELECT created_at::date, COUNT(*) FROM users
		WHERE organization_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY created_at::date`
	rows, err := r.pool.Query(ctx, q, orgID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var day time.Time
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		out[day.Format(dayFormat)] = n
	}
	return out, rows.Err()
}
