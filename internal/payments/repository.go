package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// Repository handles payment persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a payments repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const paymentColumns = `id, organization_id, user_id, COALESCE(description,''), amount_cents, currency, status, paid_at, created_at`

// ListByOrganization returns the organization's payments, newest first.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE organization_id = $1 ORDER BY paid_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.UserID, &p.Description, &p.AmountCents,
			&p.Currency, &p.Status, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create inserts a payment row.
func (r *Repository) Create(ctx context.Context, p *models.Payment) error {
	const q = `INSERT INTO payments (id, organization_id, user_id, description, amount_cents, currency, status, paid_at)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), $4, $5, $6, $7)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, p.OrganizationID, p.UserID, p.Description, p.AmountCents, p.Currency, p.Status, p.PaidAt).
		Scan(&p.ID, &p.CreatedAt)
}

// SumCompleted returns the sum of completed payment amounts for an organization.
func (r *Repository) SumCompleted(ctx context.Context, orgID uuid.UUID) (int64, error) {
	var sum int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM payments
		WHERE organization_id = $1 AND status = 'completed'`, orgID).Scan(&sum)
	return sum, err
}

// RevenueByDay returns per-day completed revenue within [from, to].
func (r *Repository) RevenueByDay(ctx context.Context, orgID uuid.UUID, from, to time.Time) (map[string]int64, error) {
	const q = `SELECT paid_at::date, SUM(amount_cents) FROM payments
		WHERE organization_id = $1 AND status = 'completed' AND paid_at >= $2 AND paid_at < $3
		GROUP BY paid_at::date`
	rows, err := r.pool.Query(ctx, q, orgID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var day time.Time
		var sum int64
		if err := rows.Scan(&day, &sum); err != nil {
			return nil, err
		}
		out[day.Format("2006-01-02")] = sum
	}
	return out, rows.Err()
}
