package events

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memberhq/backend/pkg/response"
)

// PublicRow is the database projection for the public event surface.
type PublicRow struct {
	ID               uuid.UUID
	Title            string
	Description      string
	Location         string
	Capacity         *int
	StartsAt         time.Time
	EndsAt           *time.Time
	EventImageID     *uuid.UUID
	OrganizationName string
}

// PublicView is the JSON shape served to unauthenticated callers.
type PublicView struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Location         string     `json:"location,omitempty"`
	Capacity         *int       `json:"capacity,omitempty"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	EventImageID     *uuid.UUID `json:"event_image_id,omitempty"`
	OrganizationName string     `json:"organization_name"`
	AttendeeCount    int        `json:"attendee_count"`
	IsFull           bool       `json:"is_full"`
}

// IsFull reports whether an event with the given capacity is at or over
// capacity for the given attendee count. Events without a capacity are never full.
func IsFull(capacity *int, attendeeCount int) bool {
	return capacity != nil && attendeeCount >= *capacity
}

func (p *PublicRow) toView(attendeeCount int) PublicView {
	return PublicView{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		Location:         p.Location,
		Capacity:         p.Capacity,
		StartsAt:         p.StartsAt,
		EndsAt:           p.EndsAt,
		EventImageID:     p.EventImageID,
		OrganizationName: p.OrganizationName,
		AttendeeCount:    attendeeCount,
		IsFull:           IsFull(p.Capacity, attendeeCount),
	}
}

// PublicHandler serves the unauthenticated event listing and detail.
type PublicHandler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewPublicHandler creates the public events handler.
func NewPublicHandler(repo *Repository, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{repo: repo, logger: logger}
}

// List handles GET /api/public/events.
func (h *PublicHandler) List(c *gin.Context) {
	rows, err := h.repo.ListPublic(c.Request.Context())
	if err != nil {
		h.logger.Error("list public events", zap.Error(err))
		response.Internal(c, "failed to load events")
		return
	}
	views := make([]PublicView, 0, len(rows))
	for i := range rows {
		count, err := h.repo.AttendeeCount(c.Request.Context(), rows[i].ID)
		if err != nil {
			h.logger.Error("attendee count", zap.Error(err))
			response.Internal(c, "failed to load events")
			return
		}
		views = append(views, rows[i].toView(count))
	}
	response.OK(c, views)
}

// Get handles GET /api/public/events/:id.
func (h *PublicHandler) Get(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	row, err := h.repo.GetPublicByID(c.Request.Context(), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	count, err := h.repo.AttendeeCount(c.Request.Context(), row.ID)
	if err != nil {
		h.logger.Error("attendee count", zap.Error(err))
		response.Internal(c, "failed to load event")
		return
	}
	response.OK(c, row.toView(count))
}
