package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// Repository handles user and organization persistence for sign-up/sign-in.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, COALESCE(password_hash,''), full_name, role, organization_id, status,
	COALESCE(phone,''), COALESCE(notes,''), profile_image_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FullName, &u.Role, &u.OrganizationID, &u.Status,
		&u.Phone, &u.Notes, &u.ProfileImageID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// CreateAdminWithOrganization inserts an admin user and the organization it
// administers in one transaction.
func (r *Repository) CreateAdminWithOrganization(ctx context.Context, email, passwordHash, fullName, orgName string) (*models.User, *models.Organization, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	const userQ = `INSERT INTO users (id, email, password_hash, full_name, role, status)
		VALUES (gen_random_uuid(), $1, $2, $3, 'admin', 'active')
		RETURNING ` + userColumns
	u, err := scanUser(tx.QueryRow(ctx, userQ, email, passwordHash, fullName))
	if err != nil {
		return nil, nil, err
	}

	const orgQ = `INSERT INTO organizations (id, admin_user_id, name)
		VALUES (gen_random_uuid(), $1, $2)
		RETURNING id, admin_user_id, name, created_at, updated_at`
	var org models.Organization
	if err := tx.QueryRow(ctx, orgQ, u.ID, orgName).
		Scan(&org.ID, &org.AdminUserID, &org.Name, &org.CreatedAt, &org.UpdatedAt); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return u, &org, nil
}

// GetOrganizationByAdmin returns the organization administered by the user.
func (r *Repository) GetOrganizationByAdmin(ctx context.Context, adminUserID uuid.UUID) (*models.Organization, error) {
	const q = `SELECT id, admin_user_id, name, created_at, updated_at FROM organizations WHERE admin_user_id = $1`
	var org models.Organization
	err := r.pool.QueryRow(ctx, q, adminUserID).
		Scan(&org.ID, &org.AdminUserID, &org.Name, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &org, nil
}
