package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, organization_id, organizer_id, title, COALESCE(description,''), COALESCE(location,''),
	status, capacity, starts_at, ends_at, is_private, event_image_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.OrganizationID, &e.OrganizerID, &e.Title, &e.Description, &e.Location,
		&e.Status, &e.Capacity, &e.StartsAt, &e.EndsAt, &e.IsPrivate, &e.EventImageID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an event.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (id, organization_id, organizer_id, title, description, location, status, capacity, starts_at, ends_at, is_private)
		VALUES (gen_random_uuid(), $1, $2, $3, NULLIF($4,''), NULLIF($5,''), 'scheduled', $6, $7, $8, $9)
		RETURNING ` + eventColumns
	created, err := scanEvent(r.pool.QueryRow(ctx, q, e.OrganizationID, e.OrganizerID, e.Title, e.Description,
		e.Location, e.Capacity, e.StartsAt, e.EndsAt, e.IsPrivate))
	if err != nil {
		return err
	}
	*e = *created
	return nil
}

// GetByID returns an event only when it belongs to the organization.
func (r *Repository) GetByID(ctx context.Context, orgID, eventID uuid.UUID) (*models.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND organization_id = $2`
	return scanEvent(r.pool.QueryRow(ctx, q, eventID, orgID))
}

// ListByOrganization returns all events of an organization.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events
		WHERE organization_id = $1 ORDER BY starts_at DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// Update changes event fields. Nil/empty inputs keep the stored value.
func (r *Repository) Update(ctx context.Context, orgID, eventID uuid.UUID, title, description, location string, capacity *int, isPrivate *bool) (*models.Event, error) {
	const q = `UPDATE events SET
		title = COALESCE(NULLIF($1,''), title),
		description = COALESCE(NULLIF($2,''), description),
		location = COALESCE(NULLIF($3,''), location),
		capacity = COALESCE($4, capacity),
		is_private = COALESCE($5, is_private),
		updated_at = NOW()
		WHERE id = $6 AND organization_id = $7
		RETURNING ` + eventColumns
	return scanEvent(r.pool.QueryRow(ctx, q, title, description, location, capacity, isPrivate, eventID, orgID))
}

// Cancel transitions a scheduled event to canceled and migrates its
// confirmed and waitlisted registrations to canceled_by_admin. Both writes
// run in one transaction so a crash cannot leave them half-applied.
// Returns the number of registrations migrated.
func (r *Repository) Cancel(ctx context.Context, eventID uuid.UUID) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE events SET status = 'canceled', updated_at = NOW() WHERE id = $1`, eventID); err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, `UPDATE event_registrations SET status = 'canceled_by_admin', updated_at = NOW()
		WHERE event_id = $1 AND status IN ('confirmed', 'waitlisted')`, eventID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// AttendeeCount sums (guests_count + 1) over registrations that count toward
// attendance (confirmed or attended).
func (r *Repository) AttendeeCount(ctx context.Context, eventID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(guests_count + 1), 0) FROM event_registrations
		WHERE event_id = $1 AND status IN ('confirmed', 'attended')`, eventID).Scan(&n)
	return n, err
}

// ListPublic returns scheduled, non-private events with their organization name.
func (r *Repository) ListPublic(ctx context.Context) ([]PublicRow, error) {
	const q = `SELECT e.id, e.title, COALESCE(e.description,''), COALESCE(e.location,''), e.capacity,
		e.starts_at, e.ends_at, e.event_image_id, o.name
		FROM events e
		INNER JOIN organizations o ON o.id = e.organization_id
		WHERE e.is_private = FALSE AND e.status = 'scheduled'
		ORDER BY e.starts_at ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []PublicRow
	for rows.Next() {
		var p PublicRow
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Capacity,
			&p.StartsAt, &p.EndsAt, &p.EventImageID, &p.OrganizationName); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetPublicByID returns one scheduled, non-private event.
func (r *Repository) GetPublicByID(ctx context.Context, eventID uuid.UUID) (*PublicRow, error) {
	const q = `SELECT e.id, e.title, COALESCE(e.description,''), COALESCE(e.location,''), e.capacity,
		e.starts_at, e.ends_at, e.event_image_id, o.name
		FROM events e
		INNER JOIN organizations o ON o.id = e.organization_id
		WHERE e.id = $1 AND e.is_private = FALSE AND e.status = 'scheduled'`
	var p PublicRow
	err := r.pool.QueryRow(ctx, q, eventID).Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Capacity,
		&p.StartsAt, &p.EndsAt, &p.EventImageID, &p.OrganizationName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
