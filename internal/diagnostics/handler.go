package diagnostics

import (
	"context"
	"crypto/subtle"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/auth"
	"github.com/memberhq/backend/pkg/response"
)

// SessionChecker reports whether a token ID was revoked by logout.
type SessionChecker interface {
	IsRevoked(ctx context.Context, jti string) bool
}

// Handler serves GET /api/diagnostics: environment and connectivity checks.
// Access requires either a valid session or the configured admin token;
// raw connectivity error text is only shown to authorized callers.
type Handler struct {
	pool       *pgxpool.Pool
	rdb        *redis.Client
	adminToken string
	jwt        *auth.JWTService
	sessions   SessionChecker
	logger     *zap.Logger
}

// NewHandler creates a diagnostics handler.
func NewHandler(pool *pgxpool.Pool, rdb *redis.Client, adminToken string, jwt *auth.JWTService, sessions SessionChecker, logger *zap.Logger) *Handler {
	return &Handler{pool: pool, rdb: rdb, adminToken: adminToken, jwt: jwt, sessions: sessions, logger: logger}
}

func (h *Handler) authorized(c *gin.Context) bool {
	if token := c.Query("admin_token"); token != "" && h.adminToken != "" {
		return subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) == 1
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}
	claims, err := h.jwt.Validate(parts[1])
	if err != nil {
		return false
	}
	if h.sessions != nil && h.sessions.IsRevoked(c.Request.Context(), claims.ID) {
		return false
	}
	return true
}

// Get handles GET /api/diagnostics.
func (h *Handler) Get(c *gin.Context) {
	if !h.authorized(c) {
		response.Unauthorized(c, "diagnostics requires a session or admin token")
		return
	}

	ctx := c.Request.Context()
	checks := gin.H{}

	if err := h.pool.Ping(ctx); err != nil {
		checks["database"] = gin.H{"ok": false, "error": err.Error()}
	} else {
		checks["database"] = gin.H{"ok": true}
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			checks["redis"] = gin.H{"ok": false, "error": err.Error()}
		} else {
			checks["redis"] = gin.H{"ok": true}
		}
	}

	response.OK(c, gin.H{
		"time":       time.Now().UTC(),
		"go_version": runtime.Version(),
		"checks":     checks,
	})
}
