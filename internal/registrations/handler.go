package registrations

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

// CreateRequest is the body for POST /api/events/:id/registrations.
type CreateRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	GuestsCount *int   `json:"guests_count" binding:"omitempty,gte=0"`
}

// UpdateStatusRequest is the body for PATCH /api/registrations/:id.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Store persists registrations.
type Store interface {
	Create(ctx context.Context, reg *models.EventRegistration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EventRegistration, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]View, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// EventSource resolves events within an organization and their seat usage.
type EventSource interface {
	GetByID(ctx context.Context, orgID, eventID uuid.UUID) (*models.Event, error)
	AttendeeCount(ctx context.Context, eventID uuid.UUID) (int, error)
}

// MemberDirectory resolves a user within an organization. A lookup that
// crosses organizations fails, which keeps registrations tenant-scoped.
type MemberDirectory interface {
	GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*models.User, error)
}

// Handler handles event registration HTTP endpoints.
type Handler struct {
	repo    Store
	events  EventSource
	members MemberDirectory
	logger  *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(repo Store, events EventSource, members MemberDirectory, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, events: events, members: members, logger: logger}
}

// ListByEvent handles GET /api/events/:id/registrations. Organizer only.
func (h *Handler) ListByEvent(c *gin.Context) {
	e, ok := h.organizerEvent(c)
	if !ok {
		return
	}
	list, err := h.repo.ListByEvent(c.Request.Context(), e.ID)
	if err != nil {
		h.logger.Error("list registrations", zap.Error(err))
		response.Internal(c, "failed to load registrations")
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/events/:id/registrations. Registers a member for
// an event in the caller's organization; a full event waitlists instead.
func (h *Handler) Create(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	orgID := middleware.OrgID(c)
	e, err := h.events.GetByID(c.Request.Context(), orgID, eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return
	}
	if e.Status == models.EventStatusCanceled {
		response.Conflict(c, "event is canceled")
		return
	}
	userID := uuid.MustParse(req.UserID)
	if _, err := h.members.GetByID(c.Request.Context(), orgID, userID); err != nil {
		response.NotFound(c, "member not found")
		return
	}

	guests := 0
	if req.GuestsCount != nil {
		guests = *req.GuestsCount
	}

	count, err := h.events.AttendeeCount(c.Request.Context(), e.ID)
	if err != nil {
		h.logger.Error("attendee count", zap.Error(err))
		response.Internal(c, "failed to register")
		return
	}
	status := models.RegistrationStatusConfirmed
	if e.Capacity != nil && count+guests+1 > *e.Capacity {
		status = models.RegistrationStatusWaitlisted
	}

	reg := &models.EventRegistration{
		EventID:     e.ID,
		UserID:      userID,
		Status:      status,
		GuestsCount: guests,
	}
	if err := h.repo.Create(c.Request.Context(), reg); err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			response.Conflict(c, "user is already registered for this event")
			return
		}
		h.logger.Error("create registration", zap.Error(err))
		response.Internal(c, "failed to register")
		return
	}
	response.Created(c, reg)
}

// UpdateStatus handles PATCH /api/registrations/:id. Organizer only.
func (h *Handler) UpdateStatus(c *gin.Context) {
	regID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !models.ValidRegistrationStatus(req.Status) {
		response.ValidationFailed(c, map[string]string{"status": "unknown registration status"})
		return
	}

	reg, err := h.repo.GetByID(c.Request.Context(), regID)
	if err != nil {
		response.NotFound(c, "registration not found")
		return
	}
	e, err := h.events.GetByID(c.Request.Context(), middleware.OrgID(c), reg.EventID)
	if err != nil {
		response.NotFound(c, "registration not found")
		return
	}
	if e.OrganizerID != c.MustGet(auth.ContextUserID).(uuid.UUID) {
		response.Forbidden(c, "only the organizer can update registrations")
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), reg.ID, req.Status); err != nil {
		h.logger.Error("update registration", zap.Error(err))
		response.Internal(c, "failed to update registration")
		return
	}
	reg.Status = req.Status
	response.OK(c, reg)
}

// organizerEvent loads the :id event scoped to the caller's organization and
// enforces that the caller organizes it.
func (h *Handler) organizerEvent(c *gin.Context) (*models.Event, bool) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return nil, false
	}
	e, err := h.events.GetByID(c.Request.Context(), middleware.OrgID(c), eventID)
	if err != nil {
		response.NotFound(c, "event not found")
		return nil, false
	}
	if e.OrganizerID != c.MustGet(auth.ContextUserID).(uuid.UUID) {
		response.Forbidden(c, "only the organizer can view registrations")
		return nil, false
	}
	return e, true
}
