package visits

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ipca-wpd/backend/internal/models"
	"github.com/ipca-wpd/backend/pkg/response"
)

// TrackRequest is the body for POST /api/track-visit. The visitor identifier
// is generated and persisted client-side on first contact.
type TrackRequest struct {
	VisitorID string `json:"visitorId"`
}

// Handler handles visit analytics endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a visits handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// utcDay buckets a moment into its UTC calendar day. Visit rows and the
// daily query both use UTC dates, so a client computing "today" in UTC always
// hits the bucket the server wrote.
func utcDay(t time.Time) string {
	return t.UTC().Format(models.VisitDateLayout)
}

// Track handles POST /api/track-visit.
func (h *Handler) Track(c *gin.Context) {
	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VisitorID == "" {
		response.BadRequest(c, "visitorId is required")
		return
	}

	today := utcDay(time.Now())
	if err := h.repo.Record(c.Request.Context(), req.VisitorID, today); err != nil {
		h.logger.Error("track visit failed", zap.Error(err))
		response.Internal(c, "Failed to track visit")
		return
	}
	response.OK(c, gin.H{"message": "Visit tracked successfully"})
}

// Summary handles GET /api/unique-visits.
func (h *Handler) Summary(c *gin.Context) {
	today := utcDay(time.Now())
	total, todayCount, err := h.repo.Summary(c.Request.Context(), today)
	if err != nil {
		h.logger.Error("visit summary failed", zap.Error(err))
		response.Internal(c, "Failed to fetch unique visit count")
		return
	}
	response.OK(c, gin.H{
		"totalUniqueVisitors": total,
		"uniqueVisitorsToday": todayCount,
	})
}

// Daily handles GET /api/unique-visits-daily?date=YYYY-MM-DD.
func (h *Handler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "Date parameter is required.")
		return
	}
	if _, err := time.Parse(models.VisitDateLayout, date); err != nil {
		response.BadRequest(c, "Date must be in YYYY-MM-DD format.")
		return
	}

	count, err := h.repo.CountByDate(c.Request.Context(), date)
	if err != nil {
		h.logger.Error("daily visit count failed", zap.Error(err))
		response.Internal(c, "Failed to fetch daily unique visit count")
		return
	}
	response.OK(c, []gin.H{{"date": date, "count": count}})
}
