package members

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// Repository handles member persistence. All queries are organization-scoped.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a members repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const memberColumns = `id, email, full_name, role, organization_id, status,
	COALESCE(phone,''), COALESCE(notes,''), profile_image_id, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*models.User, error) {
	var m models.User
	err := row.Scan(&m.ID, &m.Email, &m.FullName, &m.Role, &m.OrganizationID, &m.Status,
		&m.Phone, &m.Notes, &m.ProfileImageID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByOrganization returns all members of an organization.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.User, error) {
	const q = `SELECT ` + memberColumns + ` FROM users
		WHERE organization_id = $1 ORDER BY full_name, email`
	rows, err := r.pool.Query(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.User
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

// GetByID returns a member only when it belongs to the organization.
func (r *Repository) GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*models.User, error) {
	const q = `SELECT ` + memberColumns + ` FROM users WHERE id = $1 AND organization_id = $2`
	return scanMember(r.pool.QueryRow(ctx, q, memberID, orgID))
}

// Create inserts a member row for the organization.
func (r *Repository) Create(ctx context.Context, orgID uuid.UUID, m *models.User) error {
	const q = `INSERT INTO users (id, email, full_name, role, organization_id, status, phone, notes)
		VALUES (gen_random_uuid(), $1, $2, 'member', $3, $4, NULLIF($5,''), NULLIF($6,''))
		RETURNING ` + memberColumns
	created, err := scanMember(r.pool.QueryRow(ctx, q, m.Email, m.FullName, orgID, m.Status, m.Phone, m.Notes))
	if err != nil {
		return err
	}
	*m = *created
	return nil
}

// Update changes contact fields and status of a member within the organization.
// Empty inputs keep the stored value.
func (r *Repository) Update(ctx context.Context, orgID, memberID uuid.UUID, fullName, phone, notes, status string) (*models.User, error) {
	const q = `UPDATE users SET
		full_name = COALESCE(NULLIF($1,''), full_name),
		phone = COALESCE(NULLIF($2,''), phone),
		notes = COALESCE(NULLIF($3,''), notes),
		status = COALESCE(NULLIF($4,''), status),
		updated_at = NOW()
		WHERE id = $5 AND organization_id = $6
		RETURNING ` + memberColumns
	return scanMember(r.pool.QueryRow(ctx, q, fullName, phone, notes, status, memberID, orgID))
}

// Delete hard-deletes a member within the organization. Returns the number of
// rows removed so callers can 404 on tenant mismatch.
func (r *Repository) Delete(ctx context.Context, orgID, memberID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1 AND organization_id = $2 AND role = 'member'`, memberID, orgID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
