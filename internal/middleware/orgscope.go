package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/internal/models"
	"github.com/memberhq/backend/pkg/response"
)

// ContextOrganizationID is the context key for the caller's organization ID.
const ContextOrganizationID = "organization_id"

// OrganizationResolver maps a principal to the organization it administers.
type OrganizationResolver interface {
	GetOrganizationByAdmin(ctx context.Context, adminUserID uuid.UUID) (*models.Organization, error)
}

// OrgScope returns a middleware that resolves the organization administered
// by the authenticated user and sets its ID in context. Call after JWT.
// Every downstream query is filtered by this ID; handlers never re-resolve it.
func OrgScope(resolver OrganizationResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, ok := c.Get(auth.ContextUserID)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		org, err := resolver.GetOrganizationByAdmin(c.Request.Context(), userIDVal.(uuid.UUID))
		if err != nil || org == nil {
			response.NotFound(c, "organization not found")
			c.Abort()
			return
		}
		c.Set(ContextOrganizationID, org.ID)
		c.Next()
	}
}

// OrgID reads the scoped organization ID set by OrgScope.
func OrgID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextOrganizationID).(uuid.UUID)
}
