package plans

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// Repository handles membership plan persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a plans repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const planColumns = `id, organization_id, name, COALESCE(description,''), price_cents, currency,
	billing_interval, features, is_active, COALESCE(external_price_ref,''), created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (*models.MembershipPlan, error) {
	var p models.MembershipPlan
	err := row.Scan(&p.ID, &p.OrganizationID, &p.Name, &p.Description, &p.PriceCents, &p.Currency,
		&p.BillingInterval, &p.Features, &p.IsActive, &p.ExternalPriceRef, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByOrganization returns all plans of an organization.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.MembershipPlan, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+planColumns+` FROM membership_plans
		WHERE organization_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.MembershipPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// GetByID returns a plan only when it belongs to the organization.
func (r *Repository) GetByID(ctx context.Context, orgID, planID uuid.UUID) (*models.MembershipPlan, error) {
	const q = `SELECT ` + planColumns + ` FROM membership_plans WHERE id = $1 AND organization_id = $2`
	return scanPlan(r.pool.QueryRow(ctx, q, planID, orgID))
}

// Create inserts a plan.
func (r *Repository) Create(ctx context.Context, p *models.MembershipPlan) error {
	features := p.Features
	if features == nil {
		features = json.RawMessage(`[]`)
	}
	const q = `INSERT INTO membership_plans
		(id, organization_id, name, description, price_cents, currency, billing_interval, features, is_active, external_price_ref)
		VALUES (gen_random_uuid(), $1, $2, NULLIF($3,''), $4, $5, $6, $7, $8, NULLIF($9,''))
		RETURNING ` + planColumns
	created, err := scanPlan(r.pool.QueryRow(ctx, q, p.OrganizationID, p.Name, p.Description,
		p.PriceCents, p.Currency, p.BillingInterval, features, p.IsActive, p.ExternalPriceRef))
	if err != nil {
		return err
	}
	*p = *created
	return nil
}

// Update changes name, description, price, and active flag. Zero values keep
// the stored value, except is_active which is always applied.
func (r *Repository) Update(ctx context.Context, orgID, planID uuid.UUID, name, description string, priceCents *int, isActive *bool) (*models.MembershipPlan, error) {
	const q = `UPDATE membership_plans SET
		name = COALESCE(NULLIF($1,''), name),
		description = COALESCE(NULLIF($2,''), description),
		price_cents = COALESCE($3, price_cents),
		is_active = COALESCE($4, is_active),
		updated_at = NOW()
		WHERE id = $5 AND organization_id = $6
		RETURNING ` + planColumns
	return scanPlan(r.pool.QueryRow(ctx, q, name, description, priceCents, isActive, planID, orgID))
}
