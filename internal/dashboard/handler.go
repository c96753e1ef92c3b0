package dashboard

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/memberhq/backend/internal/middleware"
	"github.com/memberhq/backend/internal/payments"
	"github.com/memberhq/backend/internal/subscriptions"
	"github.com/memberhq/backend/pkg/response"
)

// StatsResponse is the JSON shape for GET /api/dashboard/stats.
type StatsResponse struct {
	Members             int   `json:"members"`
	ActiveSubscriptions int   `json:"active_subscriptions"`
	EventsThisMonth     int   `json:"events_this_month"`
	RevenueCents        int64 `json:"revenue_cents"`
}

// Handler handles dashboard HTTP endpoints. Aggregates are computed
// synchronously per request.
type Handler struct {
	repo             *Repository
	paymentRepo      *payments.Repository
	subscriptionRepo *subscriptions.Repository
	logger           *zap.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(repo *Repository, paymentRepo *payments.Repository, subscriptionRepo *subscriptions.Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, paymentRepo: paymentRepo, subscriptionRepo: subscriptionRepo, logger: logger}
}

// Stats handles GET /api/dashboard/stats.
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	orgID := middleware.OrgID(c)

	members, err := h.repo.CountMembers(ctx, orgID)
	if err != nil {
		h.logger.Error("count members", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	activeSubs, err := h.subscriptionRepo.CountActive(ctx, orgID)
	if err != nil {
		h.logger.Error("count subscriptions", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	eventsThisMonth, err := h.repo.CountEventsInMonth(ctx, orgID, time.Now().UTC())
	if err != nil {
		h.logger.Error("count events", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}
	revenue, err := h.paymentRepo.SumCompleted(ctx, orgID)
	if err != nil {
		h.logger.Error("sum payments", zap.Error(err))
		response.Internal(c, "failed to load stats")
		return
	}

	response.OK(c, StatsResponse{
		Members:             members,
		ActiveSubscriptions: activeSubs,
		EventsThisMonth:     eventsThisMonth,
		RevenueCents:        revenue,
	})
}

// ActivityStats handles GET /api/dashboard/activity-stats?range=7d|30d|90d.
// The series is dense and inclusive of both endpoints: range=7d yields 8 entries.
func (h *Handler) ActivityStats(c *gin.Context) {
	days, ok := RangeDays(c.Query("range"))
	if !ok {
		response.ValidationFailed(c, map[string]string{"range": "must be one of 7d, 30d, 90d"})
		return
	}

	ctx := c.Request.Context()
	orgID := middleware.OrgID(c)
	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -days)
	queryEnd := to.AddDate(0, 0, 1) // include all of today

	newMembers, err := h.repo.NewMembersByDay(ctx, orgID, from, queryEnd)
	if err != nil {
		h.logger.Error("members by day", zap.Error(err))
		response.Internal(c, "failed to load activity")
		return
	}
	revenue, err := h.paymentRepo.RevenueByDay(ctx, orgID, from, queryEnd)
	if err != nil {
		h.logger.Error("revenue by day", zap.Error(err))
		response.Internal(c, "failed to load activity")
		return
	}

	response.OK(c, gin.H{
		"range":  days,
		"series": BuildDailySeries(from, to, newMembers, revenue),
	})
}
