package subscriptions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/models"
)

type stubDirectory struct {
	user *models.User
	err  error
}

func (s *stubDirectory) GetByID(ctx context.Context, orgID, memberID uuid.UUID) (*models.User, error) {
	return s.user, s.err
}

func postSubscription(t *testing.T, members MemberDirectory, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, members, zap.NewNop())
	r := gin.New()
	r.POST("/api/subscriptions",
		func(c *gin.Context) { c.Set(middleware.ContextOrganizationID, uuid.New()) },
		h.Create,
	)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSubscription_UserOutsideOrganization(t *testing.T) {
	// The member lookup is organization-scoped, so a foreign user's UUID
	// reads as not found before any plan or subscription work happens.
	w := postSubscription(t, &stubDirectory{err: pgx.ErrNoRows}, gin.H{
		"user_id": uuid.New().String(),
		"plan_id": uuid.New().String(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSubscription_UnknownStatus(t *testing.T) {
	w := postSubscription(t, nil, gin.H{
		"user_id": uuid.New().String(),
		"plan_id": uuid.New().String(),
		"status":  "paused",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
