package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageGuardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PageGuard([]string{"/dashboard", "/members"}, "/signin"))
	r.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/about", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/members", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestPageGuard_RedirectsBrowserNavigation(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	pageGuardRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/signin?callbackUrl=%2Fdashboard", w.Header().Get("Location"))
}

func TestPageGuard_SessionCookiePasses(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok"})
	pageGuardRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPageGuard_UnguardedPathPasses(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept", "text/html")
	pageGuardRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPageGuard_IgnoresAPIClients(t *testing.T) {
	// JSON clients never get redirected, even on guarded prefixes.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	pageGuardRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
