package plans

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

// postPlan drives Create through a router. Payloads that fail validation are
// rejected before any repository access, so a nil repo is safe here.
func postPlan(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, zap.NewNop())
	r := gin.New()
	r.POST("/api/plans", h.Create)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/plans", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePlan_NonPositivePrice(t *testing.T) {
	for _, price := range []int{0, -100} {
		w := postPlan(t, gin.H{
			"name":             "Gold",
			"price_cents":      price,
			"billing_interval": "month",
		})
		require.Equal(t, http.StatusBadRequest, w.Code, "price %d", price)

		var body response.Body
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Contains(t, body.Details, "price_cents")
	}
}

func TestCreatePlan_UnknownInterval(t *testing.T) {
	w := postPlan(t, gin.H{
		"name":             "Gold",
		"price_cents":      2500,
		"billing_interval": "fortnight",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "billing_interval")
}

func TestCreatePlan_MissingName(t *testing.T) {
	w := postPlan(t, gin.H{
		"price_cents":      2500,
		"billing_interval": "month",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePlan_NonPositivePrice(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, zap.NewNop())
	r := gin.New()
	r.PATCH("/api/plans/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/plans/0c7f9f1a-9b70-4f3e-9f2b-1df1f0a3c111",
		bytes.NewReader([]byte(`{"price_cents": -1}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "price_cents")
}
