package members

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/memberhq/backend/pkg/response"
)

func memberRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, zap.NewNop())
	r := gin.New()
	r.POST("/api/members", h.Create)
	r.GET("/api/members/:id", h.Get)
	r.PATCH("/api/members/:id", h.Update)
	return r
}

func TestCreateMember_InvalidStatus(t *testing.T) {
	raw, _ := json.Marshal(gin.H{
		"email":     "m@example.com",
		"full_name": "Mary Major",
		"status":    "suspended",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/members", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	memberRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "status")
}

func TestCreateMember_MissingEmail(t *testing.T) {
	raw, _ := json.Marshal(gin.H{"full_name": "Mary Major"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/members", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	memberRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMember_InvalidID(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/members/not-a-uuid", nil)
	memberRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMember_InvalidStatus(t *testing.T) {
	raw, _ := json.Marshal(gin.H{"status": "frozen"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/members/0c7f9f1a-9b70-4f3e-9f2b-1df1f0a3c111", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	memberRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
