package images

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memberhq/backend/internal/models"
)

// Repository handles image blob persistence. Images are immutable rows.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an images repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create stores the decoded bytes and metadata.
func (r *Repository) Create(ctx context.Context, img *models.Image) error {
	const q = `INSERT INTO images (id, data, mime_type, size_bytes, uploaded_by)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, img.Data, img.MimeType, img.SizeBytes, img.UploadedBy).
		Scan(&img.ID, &img.CreatedAt)
}

// Get returns an image with its payload.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	const q = `SELECT id, data, mime_type, size_bytes, uploaded_by, created_at FROM images WHERE id = $1`
	var img models.Image
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&img.ID, &img.Data, &img.MimeType, &img.SizeBytes, &img.UploadedBy, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// Exists reports whether an image row exists without loading the payload.
// Query failures propagate so callers do not mistake an outage for a miss.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM images WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AttachToUser sets a user's profile image. Only the user's own row matches.
func (r *Repository) AttachToUser(ctx context.Context, userID, imageID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_image_id = $1, updated_at = NOW() WHERE id = $2`, imageID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// AttachToEvent sets an event's cover image, only when the user organizes it.
func (r *Repository) AttachToEvent(ctx context.Context, eventID, organizerID, imageID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET event_image_id = $1, updated_at = NOW() WHERE id = $2 AND organizer_id = $3`,
		imageID, eventID, organizerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
