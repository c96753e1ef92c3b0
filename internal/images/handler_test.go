package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

func TestDecodePayload(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	encoded := base64.StdEncoding.EncodeToString(raw)

	got, err := decodePayload(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = decodePayload("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = decodePayload("%%% not base64 %%%")
	assert.Error(t, err)
}

// uploadImage drives Upload through a router. Payloads rejected by validation
// never reach the repository, so a nil repo is safe.
func uploadImage(t *testing.T, maxBytes int, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, maxBytes, zap.NewNop())
	r := gin.New()
	r.POST("/api/images", h.Upload)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/images", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpload_InvalidBase64(t *testing.T) {
	w := uploadImage(t, 0, gin.H{"data": "!!!", "mime_type": "image/png"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "data")
}

func TestUpload_NonImageMimeType(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello"))
	w := uploadImage(t, 0, gin.H{"data": payload, "mime_type": "application/pdf"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "mime_type")
}

func TestUpload_PayloadTooLarge(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0xff}, 64))
	w := uploadImage(t, 16, gin.H{"data": payload, "mime_type": "image/jpeg"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload_EmptyPayload(t *testing.T) {
	w := uploadImage(t, 0, gin.H{"data": base64.StdEncoding.EncodeToString(nil), "mime_type": "image/png"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttach_UnknownTargetType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, 0, zap.NewNop())
	r := gin.New()
	r.PATCH("/api/images/attach", h.Attach)

	payload := gin.H{
		"image_id":    "0c7f9f1a-9b70-4f3e-9f2b-1df1f0a3c111",
		"target_type": "plan",
		"target_id":   "1c7f9f1a-9b70-4f3e-9f2b-1df1f0a3c112",
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/images/attach", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "target_type")
}

func TestServe_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, 0, zap.NewNop())
	r := gin.New()
	r.GET("/api/images/:id", h.Serve)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/images/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubStore struct {
	exists    bool
	existsErr error
}

func (s *stubStore) Create(ctx context.Context, img *models.Image) error { return nil }

func (s *stubStore) Get(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists, s.existsErr
}

func (s *stubStore) AttachToUser(ctx context.Context, userID, imageID uuid.UUID) (int64, error) {
	return 1, nil
}

func (s *stubStore) AttachToEvent(ctx context.Context, eventID, organizerID, imageID uuid.UUID) (int64, error) {
	return 1, nil
}

func patchAttach(t *testing.T, store Store) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	h := NewHandler(store, 0, zap.NewNop())
	r := gin.New()
	r.PATCH("/api/images/attach",
		func(c *gin.Context) { c.Set(auth.ContextUserID, userID) },
		h.Attach,
	)

	raw, err := json.Marshal(gin.H{
		"image_id":    uuid.New().String(),
		"target_type": TargetUser,
		"target_id":   userID.String(),
	})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/images/attach", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAttach_MissingImage(t *testing.T) {
	w := patchAttach(t, &stubStore{exists: false})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttach_ExistenceCheckFailure(t *testing.T) {
	// A store outage during the existence check is a server error, not a
	// missing image.
	w := patchAttach(t, &stubStore{existsErr: errors.New("connection refused")})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
