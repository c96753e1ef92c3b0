package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// Repository handles subscription persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a subscriptions repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// View is a subscription joined with member and plan names for listings.
type View struct {
	models.Subscription
	MemberName string `json:"member_name"`
	PlanName   string `json:"plan_name"`
}

const subscriptionColumns = `s.id, s.organization_id, s.user_id, s.plan_id, s.status,
	s.current_period_start, s.current_period_end, s.created_at, s.updated_at`

// ListByOrganization returns the organization's subscriptions with member and plan names.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]View, error) {
	const q = `SELECT ` + subscriptionColumns + `, u.full_name, p.name
		FROM subscriptions s
		INNER JOIN users u ON u.id = s.user_id
		INNER JOIN membership_plans p ON p.id = s.plan_id
		WHERE s.organization_id = $1
		ORDER BY s.created_at DESC`
	rows, err := r.pool.Query(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ID, &v.OrganizationID, &v.UserID, &v.PlanID, &v.Status,
			&v.CurrentPeriodStart, &v.CurrentPeriodEnd, &v.CreatedAt, &v.UpdatedAt,
			&v.MemberName, &v.PlanName); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Create enrolls a member in a plan with the given billing period.
func (r *Repository) Create(ctx context.Context, s *models.Subscription) error {
	const q = `INSERT INTO subscriptions (id, organization_id, user_id, plan_id, status, current_period_start, current_period_end)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, s.OrganizationID, s.UserID, s.PlanID, s.Status, s.CurrentPeriodStart, s.CurrentPeriodEnd).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Cancel sets the subscription status to canceled within the organization.
// Returns rows affected so callers can 404 on tenant mismatch.
func (r *Repository) Cancel(ctx context.Context, orgID, subscriptionID uuid.UUID) (int64, error) {
	const q = `UPDATE subscriptions SET status = 'canceled', updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND status <> 'canceled'`
	tag, err := r.pool.Exec(ctx, q, subscriptionID, orgID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountActive returns the number of active subscriptions in an organization.
func (r *Repository) CountActive(ctx context.Context, orgID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE organization_id = $1 AND status = 'active'`, orgID).Scan(&n)
	return n, err
}

// PeriodFor computes the billing window starting now for a plan interval.
func PeriodFor(interval string, now time.Time) (time.Time, time.Time) {
	switch interval {
	case models.IntervalWeek:
		return now, now.AddDate(0, 0, 7)
	case models.IntervalYear:
		return now, now.AddDate(1, 0, 0)
	default:
		return now, now.AddDate(0, 1, 0)
	}
}
