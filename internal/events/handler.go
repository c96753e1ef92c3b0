package events

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// CreateRequest is the body for POST /api/events.
type CreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Capacity    *int    `json:"capacity" binding:"omitempty,gt=0"`
	StartsAt    string  `json:"starts_at" binding:"required"`
	EndsAt      *string `json:"ends_at"`
	IsPrivate   bool    `json:"is_private"`
}

// UpdateRequest is the body for PATCH /api/events/:id.
type UpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Capacity    *int   `json:"capacity" binding:"omitempty,gt=0"`
	IsPrivate   *bool  `json:"is_private"`
}

// Handler handles event HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/events.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByOrganization(c.Request.Context(), middleware.OrgID(c))
	if err != nil {
		h.logger.Error("list events", zap.Error(err))
		response.Internal(c, "failed to load events")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/events/:id.
func (h *Handler) Get(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), middleware.OrgID(c), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, e)
}

// Create handles POST /api/events.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	startsAt, err := parseTime(req.StartsAt)
	if err != nil {
		response.ValidationFailed(c, map[string]string{"starts_at": "must be an RFC 3339 timestamp"})
		return
	}
	var endsAt *time.Time
	if req.EndsAt != nil {
		t, err := parseTime(*req.EndsAt)
		if err != nil {
			response.ValidationFailed(c, map[string]string{"ends_at": "must be an RFC 3339 timestamp"})
			return
		}
		endsAt = &t
	}

	e := &models.Event{
		OrganizationID: middleware.OrgID(c),
		OrganizerID:    c.MustGet(auth.ContextUserID).(uuid.UUID),
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Capacity:       req.Capacity,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		IsPrivate:      req.IsPrivate,
	}
	if err := h.repo.Create(c.Request.Context(), e); err != nil {
		h.logger.Error("create event", zap.Error(err))
		response.Internal(c, "failed to create event")
		return
	}
	response.Created(c, e)
}

// Update handles PATCH /api/events/:id.
func (h *Handler) Update(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	e, err := h.repo.Update(c.Request.Context(), middleware.OrgID(c), eventID,
		req.Title, req.Description, req.Location, req.Capacity, req.IsPrivate)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, e)
}

// Cancel handles PATCH /api/events/:id/cancel. Organizer only; confirmed and
// waitlisted registrations become canceled_by_admin in the same transaction.
// No registrant notification is sent.
func (h *Handler) Cancel(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	e, err := h.repo.GetByID(c.Request.Context(), middleware.OrgID(c), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	userID := c.MustGet(auth.ContextUserID).(uuid.UUID)
	if e.OrganizerID != userID {
		response.Forbidden(c, "only the organizer can cancel this event")
		return
	}
	if e.Status == models.EventStatusCanceled {
		response.Conflict(c, "event is already canceled")
		return
	}

	migrated, err := h.repo.Cancel(c.Request.Context(), e.ID)
	if err != nil {
		h.logger.Error("cancel event", zap.Error(err))
		response.Internal(c, "failed to cancel event")
		return
	}
	response.OK(c, gin.H{
		"id":                     e.ID,
		"status":                 models.EventStatusCanceled,
		"registrations_canceled": migrated,
	})
}
