package diagnostics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/auth"
)

// Unauthorized requests are rejected before any connectivity check runs,
// so nil pool and redis clients are safe in these tests.
func diagRouter(adminToken string, jwt *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, nil, adminToken, jwt, nil, zap.NewNop())
	r := gin.New()
	r.GET("/api/diagnostics", h.Get)
	return r
}

type stubSessions struct {
	revoked bool
}

func (s *stubSessions) IsRevoked(ctx context.Context, jti string) bool { return s.revoked }

func TestDiagnostics_NoCredentials(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/diagnostics", nil)
	diagRouter("secret", auth.NewJWTService("jwt-secret", 1)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDiagnostics_WrongAdminToken(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/diagnostics?admin_token=wrong", nil)
	diagRouter("secret", auth.NewJWTService("jwt-secret", 1)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDiagnostics_TokenDisabled(t *testing.T) {
	// An empty configured token disables token access entirely.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/diagnostics?admin_token=anything", nil)
	diagRouter("", auth.NewJWTService("jwt-secret", 1)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDiagnostics_InvalidBearer(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/diagnostics", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	diagRouter("secret", auth.NewJWTService("jwt-secret", 1)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func bearerContext(token string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/diagnostics", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)
	return c
}

func TestDiagnostics_ValidBearerReachesChecks(t *testing.T) {
	jwt := auth.NewJWTService("jwt-secret", 1)
	token, err := jwt.Generate(uuid.New(), "a@example.com", "admin")
	require.NoError(t, err)

	h := NewHandler(nil, nil, "secret", jwt, &stubSessions{}, zap.NewNop())
	assert.True(t, h.authorized(bearerContext(token)))
}

func TestDiagnostics_RevokedBearerRejected(t *testing.T) {
	// A token revoked by logout must not open diagnostics even though its
	// signature still verifies.
	jwt := auth.NewJWTService("jwt-secret", 1)
	token, err := jwt.Generate(uuid.New(), "a@example.com", "admin")
	require.NoError(t, err)

	h := NewHandler(nil, nil, "secret", jwt, &stubSessions{revoked: true}, zap.NewNop())
	assert.False(t, h.authorized(bearerContext(token)))
}
