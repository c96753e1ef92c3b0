package subscriptions

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/internal/plans"
	"github.com/memberhq/backend/pkg/response"
)

// MemberDirectory resolves a user within an organization. A lookup that
// crosses organizations fails, which keeps subscriptions tenant-scoped.
type MemberDirectory interface {
	GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*models.User, error)
}

// CreateRequest is the body for POST /api/subscriptions.
type CreateRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	PlanID string `json:"plan_id" binding:"required,uuid"`
	Status string `json:"status"` // optional, defaults to active
}

// Handler handles subscription HTTP endpoints.
type Handler struct {
	repo     *Repository
	planRepo *plans.Repository
	members  MemberDirectory
	logger   *zap.Logger
}

// NewHandler creates a subscriptions handler.
func NewHandler(repo *Repository, planRepo *plans.Repository, members MemberDirectory, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, planRepo: planRepo, members: members, logger: logger}
}

// List handles GET /api/subscriptions.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByOrganization(c.Request.Context(), middleware.OrgID(c))
	if err != nil {
		h.logger.Error("list subscriptions", zap.Error(err))
		response.Internal(c, "failed to load subscriptions")
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/subscriptions. Enrolls a member of the caller's
// organization in one of its plans.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	status := req.Status
	if status == "" {
		status = models.SubscriptionStatusActive
	}
	if !models.ValidSubscriptionStatus(status) {
		response.ValidationFailed(c, map[string]string{"status": "unknown subscription status"})
		return
	}

	orgID := middleware.OrgID(c)
	userID := uuid.MustParse(req.UserID)
	planID := uuid.MustParse(req.PlanID)

	if _, err := h.members.GetByID(c.Request.Context(), orgID, userID); err != nil {
		response.NotFound(c, "member not found")
		return
	}
	plan, err := h.planRepo.GetByID(c.Request.Context(), orgID, planID)
	if err != nil {
		response.NotFound(c, "plan not found")
		return
	}

	start, end := PeriodFor(plan.BillingInterval, time.Now().UTC())
	s := &models.Subscription{
		OrganizationID:     orgID,
		UserID:             userID,
		PlanID:             plan.ID,
		Status:             status,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
	}
	if err := h.repo.Create(c.Request.Context(), s); err != nil {
		h.logger.Error("create subscription", zap.Error(err))
		response.Internal(c, "failed to create subscription")
		return
	}
	response.Created(c, s)
}

// Cancel handles PATCH /api/subscriptions/:id/cancel.
func (h *Handler) Cancel(c *gin.Context) {
	subscriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid subscription id")
		return
	}
	n, err := h.repo.Cancel(c.Request.Context(), middleware.OrgID(c), subscriptionID)
	if err != nil {
		h.logger.Error("cancel subscription", zap.Error(err))
		response.Internal(c, "failed to cancel subscription")
		return
	}
	if n == 0 {
		response.NotFound(c, "subscription not found")
		return
	}
	response.OK(c, gin.H{"id": subscriptionID, "status": models.SubscriptionStatusCanceled})
}
