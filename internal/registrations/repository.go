package registrations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// ErrAlreadyRegistered is returned when the event+user pair already has a
// registration. Duplicates must not re-run the capacity decision.
var ErrAlreadyRegistered = errors.New("user is already registered for this event")

// Repository handles event registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a registration (unique per event+user). A conflicting pair
// inserts nothing and reports ErrAlreadyRegistered.
func (r *Repository) Create(ctx context.Context, reg *models.EventRegistration) error {
	const q = `INSERT INTO event_registrations (id, event_id, user_id, status, guests_count)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		ON CONFLICT (event_id, user_id) DO NOTHING
		RETURNING id, status, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, reg.EventID, reg.UserID, reg.Status, reg.GuestsCount).
		Scan(&reg.ID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyRegistered
	}
	return err
}

// GetByID returns a registration by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.EventRegistration, error) {
	const q = `SELECT id, event_id, user_id, status, guests_count, created_at, updated_at
		FROM event_registrations WHERE id = $1`
	var reg models.EventRegistration
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.GuestsCount, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// View is a registration flattened with registrant details for listings.
type View struct {
	ID          uuid.UUID `json:"id"`
	EventID     uuid.UUID `json:"event_id"`
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Status      string    `json:"status"`
	GuestsCount int       `json:"guests_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListByEvent returns the registrations for an event joined with user details.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]View, error) {
	const q = `SELECT er.id, er.event_id, er.user_id, u.email, u.full_name, er.status, er.guests_count, er.created_at
		FROM event_registrations er
		INNER JOIN users u ON u.id = er.user_id
		WHERE er.event_id = $1
		ORDER BY er.created_at ASC`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ID, &v.EventID, &v.UserID, &v.Email, &v.FullName, &v.Status, &v.GuestsCount, &v.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// UpdateStatus sets a registration's status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	const q = `UPDATE event_registrations SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.pool.Exec(ctx, q, status, id)
	return err
}
