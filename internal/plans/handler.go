package plans

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

// CreateRequest is the body for POST /api/plans.
type CreateRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	PriceCents       int      `json:"price_cents"`
	Currency         string   `json:"currency"`
	BillingInterval  string   `json:"billing_interval" binding:"required"`
	Features         []string `json:"features"`
	IsActive         *bool    `json:"is_active"`
	ExternalPriceRef string   `json:"external_price_ref"`
}

// UpdateRequest is the body for PATCH /api/plans/:id.
type UpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  *int   `json:"price_cents"`
	IsActive    *bool  `json:"is_active"`
}

// Handler handles plan HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a plans handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// validate applies the field rules a create payload must satisfy.
func (req *CreateRequest) validate() map[string]string {
	fields := make(map[string]string)
	if req.PriceCents <= 0 {
		fields["price_cents"] = "must be a positive amount"
	}
	if !models.ValidBillingInterval(req.BillingInterval) {
		fields["billing_interval"] = "must be one of week, month, year"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// List handles GET /api/plans.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.ListByOrganization(c.Request.Context(), middleware.OrgID(c))
	if err != nil {
		h.logger.Error("list plans", zap.Error(err))
		response.Internal(c, "failed to load plans")
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/plans (admin only).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if fields := req.validate(); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	features, err := json.Marshal(req.Features)
	if err != nil {
		response.BadRequest(c, "invalid features")
		return
	}

	p := &models.MembershipPlan{
		OrganizationID:   middleware.OrgID(c),
		Name:             req.Name,
		Description:      req.Description,
		PriceCents:       req.PriceCents,
		Currency:         currency,
		BillingInterval:  req.BillingInterval,
		Features:         features,
		IsActive:         isActive,
		ExternalPriceRef: req.ExternalPriceRef,
	}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		h.logger.Error("create plan", zap.Error(err))
		response.Internal(c, "failed to create plan")
		return
	}
	response.Created(c, p)
}

// Update handles PATCH /api/plans/:id (admin only).
func (h *Handler) Update(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid plan id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.PriceCents != nil && *req.PriceCents <= 0 {
		response.ValidationFailed(c, map[string]string{"price_cents": "must be a positive amount"})
		return
	}
	p, err := h.repo.Update(c.Request.Context(), middleware.OrgID(c), planID, req.Name, req.Description, req.PriceCents, req.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "plan not found")
			return
		}
		h.logger.Error("update plan", zap.Error(err))
		response.Internal(c, "failed to update plan")
		return
	}
	response.OK(c, p)
}
