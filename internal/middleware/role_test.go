package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/memberhq/backend/internal/auth"
)

func roleRouter(role string, required ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) {
			if role != "" {
				c.Set(auth.ContextUserRole, role)
			}
		},
		RequireRole(required...),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required []string
		want     int
	}{
		{"allowed role", "admin", []string{"admin"}, http.StatusOK},
		{"one of several", "member", []string{"admin", "member"}, http.StatusOK},
		{"wrong role", "member", []string{"admin"}, http.StatusForbidden},
		{"missing context", "", []string{"admin"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			roleRouter(tt.role, tt.required...).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
