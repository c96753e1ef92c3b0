package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/internal/models"
)

type stubResolver struct {
	org *models.Organization
	err error
}

func (s *stubResolver) GetOrganizationByAdmin(ctx context.Context, adminUserID uuid.UUID) (*models.Organization, error) {
	return s.org, s.err
}

func orgScopeRouter(userID *uuid.UUID, resolver OrganizationResolver) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var scoped uuid.UUID
	r.GET("/members",
		func(c *gin.Context) {
			if userID != nil {
				c.Set(auth.ContextUserID, *userID)
			}
		},
		OrgScope(resolver),
		func(c *gin.Context) {
			scoped = OrgID(c)
			c.Status(http.StatusOK)
		},
	)
	return r, &scoped
}

func TestOrgScope_SetsOrganizationID(t *testing.T) {
	userID := uuid.New()
	org := &models.Organization{ID: uuid.New(), AdminUserID: userID, Name: "Riverside Rowing Club"}

	r, scoped := orgScopeRouter(&userID, &stubResolver{org: org})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, org.ID, *scoped)
}

func TestOrgScope_NoOrganizationIsNotFound(t *testing.T) {
	userID := uuid.New()
	r, _ := orgScopeRouter(&userID, &stubResolver{err: errors.New("no rows")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrgScope_MissingUserContext(t *testing.T) {
	r, _ := orgScopeRouter(nil, &stubResolver{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
