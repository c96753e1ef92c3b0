package members

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

// CreateRequest is the body for POST /api/members.
type CreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Status   string `json:"status"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
}

// UpdateRequest is the body for PATCH /api/members/:id. Empty fields are unchanged.
type UpdateRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
}

// Handler handles member HTTP endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a members handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/members.
func (h *Handler) List(c *gin.Context) {
	orgID := middleware.OrgID(c)
	list, err := h.repo.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		h.logger.Error("list members", zap.Error(err))
		response.Internal(c, "failed to load members")
		return
	}
	response.OK(c, list)
}

// Get handles GET /api/members/:id. Tenant mismatch reads as not found.
func (h *Handler) Get(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}
	m, err := h.repo.GetByID(c.Request.Context(), middleware.OrgID(c), memberID)
	if err != nil {
		response.NotFound(c, "member not found")
		return
	}
	response.OK(c, m)
}

// Create handles POST /api/members.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Status == "" {
		req.Status = string(models.MemberStatusPending)
	}
	if !models.ValidMemberStatus(req.Status) {
		response.ValidationFailed(c, map[string]string{"status": "must be one of active, pending, inactive, cancelled"})
		return
	}

	m := &models.User{
		Email:    req.Email,
		FullName: req.FullName,
		Status:   models.MemberStatus(req.Status),
		Phone:    req.Phone,
		Notes:    req.Notes,
	}
	if err := h.repo.Create(c.Request.Context(), middleware.OrgID(c), m); err != nil {
		h.logger.Error("create member", zap.Error(err))
		response.Internal(c, "failed to create member")
		return
	}
	response.Created(c, m)
}

// Update handles PATCH /api/members/:id.
func (h *Handler) Update(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Status != "" && !models.ValidMemberStatus(req.Status) {
		response.ValidationFailed(c, map[string]string{"status": "must be one of active, pending, inactive, cancelled"})
		return
	}
	m, err := h.repo.Update(c.Request.Context(), middleware.OrgID(c), memberID, req.FullName, req.Phone, req.Notes, req.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "member not found")
			return
		}
		h.logger.Error("update member", zap.Error(err))
		response.Internal(c, "failed to update member")
		return
	}
	response.OK(c, m)
}

// Delete handles DELETE /api/members/:id. Hard delete.
func (h *Handler) Delete(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member id")
		return
	}
	n, err := h.repo.Delete(c.Request.Context(), middleware.OrgID(c), memberID)
	if err != nil {
		h.logger.Error("delete member", zap.Error(err))
		response.Internal(c, "failed to delete member")
		return
	}
	if n == 0 {
		response.NotFound(c, "member not found")
		return
	}
	response.NoContent(c)
}
