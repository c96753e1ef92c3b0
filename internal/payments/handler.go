package payments

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

// MemberDirectory resolves a user within an organization, so a payment can
// only reference one of the caller's own members.
type MemberDirectory interface {
	GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*models.User, error)
}

// CreateRequest is the body for POST /api/payments.
type CreateRequest struct {
	UserID      string `json:"user_id" binding:"omitempty,uuid"`
	Description string `json:"description"`
	AmountCents int    `json:"amount_cents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	PaidAt      string `json:"paid_at"` // RFC 3339; defaults to now
}

// Handler handles payment HTTP endpoints.
type Handler struct {
	repo    *Repository
	members MemberDirectory
	logger  *zap.Logger
}

// NewHandler creates a payments handler.
func NewHandler(repo *Repository, members MemberDirectory, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, members: members, logger: logger}
}

// List handles GET /api/payments.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByOrganization(c.Request.Context(), middleware.OrgID(c))
	if err != nil {
		h.logger.Error("list payments", zap.Error(err))
		response.Internal(c, "failed to load payments")
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/payments. Records a payment against the
// caller's organization.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	fields := make(map[string]string)
	if req.AmountCents <= 0 {
		fields["amount_cents"] = "must be a positive amount"
	}
	status := req.Status
	if status == "" {
		status = models.PaymentStatusCompleted
	}
	if !models.ValidPaymentStatus(status) {
		fields["status"] = "must be one of completed, pending, failed"
	}
	paidAt := time.Now().UTC()
	if req.PaidAt != "" {
		t, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			fields["paid_at"] = "must be an RFC 3339 timestamp"
		} else {
			paidAt = t
		}
	}
	if len(fields) > 0 {
		response.ValidationFailed(c, fields)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	orgID := middleware.OrgID(c)
	var userID *uuid.UUID
	if req.UserID != "" {
		id := uuid.MustParse(req.UserID)
		if _, err := h.members.GetByID(c.Request.Context(), orgID, id); err != nil {
			response.NotFound(c, "member not found")
			return
		}
		userID = &id
	}

	p := &models.Payment{
		OrganizationID: orgID,
		UserID:         userID,
		Description:    req.Description,
		AmountCents:    req.AmountCents,
		Currency:       currency,
		Status:         status,
		PaidAt:         paidAt,
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		h.logger.Error("create payment", zap.Error(err))
		response.Internal(c, "failed to record payment")
		return
	}
	response.Created(c, p)
}
