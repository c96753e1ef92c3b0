package models

import (
	"time"

	"github.com/google/uuid"
)

// Image is a stored binary upload. Rows are immutable once created.
type Image struct {
	ID         uuid.UUID `json:"id"`
	Data       []byte    `json:"-"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int       `json:"size_bytes"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
