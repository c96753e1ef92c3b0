package images

import (
	"context"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

// Attach target types.
const (
	TargetUser  = "user"
	TargetEvent = "event"
)

// UploadRequest is the body for POST /api/images. Payload is base64; a data
// URL prefix (data:image/png;base64,) is tolerated and stripped.
type UploadRequest struct {
	Data     string `json:"data" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
}

// AttachRequest is the body for PATCH /api/images/attach.
type AttachRequest struct {
	ImageID    string `json:"image_id" binding:"required,uuid"`
	TargetType string `json:"target_type" binding:"required"`
	TargetID   string `json:"target_id" binding:"required,uuid"`
}

// Store persists image blobs and their attachments.
type Store interface {
	Create(ctx context.Context, img *models.Image) error
	Get(ctx context.Context, id uuid.UUID) (*models.Image, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	AttachToUser(ctx context.Context, userID, imageID uuid.UUID) (int64, error)
	AttachToEvent(ctx context.Context, eventID, organizerID, imageID uuid.UUID) (int64, error)
}

// Handler handles image HTTP endpoints.
type Handler struct {
	repo     Store
	maxBytes int
	logger   *zap.Logger
}

// NewHandler creates an images handler.
func NewHandler(repo Store, maxBytes int, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, maxBytes: maxBytes, logger: logger}
}

// decodePayload strips an optional data URL prefix and base64-decodes.
func decodePayload(data string) ([]byte, error) {
	if i := strings.Index(data, ";base64,"); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(data)
}

// Upload handles POST /api/images.
func (h *Handler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !strings.HasPrefix(req.MimeType, "image/") {
		response.ValidationFailed(c, map[string]string{"mime_type": "must be an image content type"})
		return
	}
	raw, err := decodePayload(req.Data)
	if err != nil {
		response.ValidationFailed(c, map[string]string{"data": "must be valid base64"})
		return
	}
	if len(raw) == 0 {
		response.ValidationFailed(c, map[string]string{"data": "payload is empty"})
		return
	}
	if h.maxBytes > 0 && len(raw) > h.maxBytes {
		response.BadRequest(c, "image exceeds maximum allowed size")
		return
	}

	img := &models.Image{
		Data:       raw,
		MimeType:   req.MimeType,
		SizeBytes:  len(raw),
		UploadedBy: c.MustGet(auth.ContextUserID).(uuid.UUID),
	}
	if err := h.repo.Create(c.Request.Context(), img); err != nil {
		h.logger.Error("store image", zap.Error(err))
		response.Internal(c, "failed to store image")
		return
	}
	response.Created(c, gin.H{"id": img.ID, "mime_type": img.MimeType, "size_bytes": img.SizeBytes})
}

// Serve handles GET /api/images/:id. Images are immutable, so responses
// carry a one-year immutable cache directive.
func (h *Handler) Serve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid image id")
		return
	}
	img, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "image not found")
		return
	}
	c.Header("Content-Length", strconv.Itoa(len(img.Data)))
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, img.MimeType, img.Data)
}

// Attach handles PATCH /api/images/attach. A user may attach an image to
// their own profile; an organizer to their own event. Anything else is
// forbidden or reads as not found.
func (h *Handler) Attach(c *gin.Context) {
	var req AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.TargetType != TargetUser && req.TargetType != TargetEvent {
		response.ValidationFailed(c, map[string]string{"target_type": "must be user or event"})
		return
	}

	imageID := uuid.MustParse(req.ImageID)
	targetID := uuid.MustParse(req.TargetID)
	userID := c.MustGet(auth.ContextUserID).(uuid.UUID)

	ok, err := h.repo.Exists(c.Request.Context(), imageID)
	if err != nil {
		h.logger.Error("check image", zap.Error(err))
		response.Internal(c, "failed to attach image")
		return
	}
	if !ok {
		response.NotFound(c, "image not found")
		return
	}

	switch req.TargetType {
	case TargetUser:
		if targetID != userID {
			response.Forbidden(c, "cannot attach to another user's profile")
			return
		}
		n, err := h.repo.AttachToUser(c.Request.Context(), targetID, imageID)
		if err != nil || n == 0 {
			response.NotFound(c, "user not found")
			return
		}
	case TargetEvent:
		n, err := h.repo.AttachToEvent(c.Request.Context(), targetID, userID, imageID)
		if err != nil {
			h.logger.Error("attach image", zap.Error(err))
			response.Internal(c, "failed to attach image")
			return
		}
		if n == 0 {
			// Either the event does not exist or the caller does not organize it.
			response.Forbidden(c, "not authorized to attach to this event")
			return
		}
	}
	response.OK(c, gin.H{"image_id": imageID, "target_type": req.TargetType, "target_id": targetID})
}
