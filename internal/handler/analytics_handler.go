package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/middleware"
	"github.com/linkpage/linkpage-backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var eventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "analytics_events_total",
		Help: "Total number of analytics events by type and outcome",
	},
	[]string{"event_type", "outcome"},
)

// metricEventType folds unvalidated event types into a single label value.
// The track endpoint is public, so raw request strings must never become
// Prometheus series.
func metricEventType(v string) string {
	if domain.EventType(v).Valid() {
		return v
	}
	return "invalid"
}

// AnalyticsHandler handles visitor event ingestion and dashboard stat reads
type AnalyticsHandler struct {
	service service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Track ingests one visitor event
// @Summary Track a visitor event
// @Description Accepts one pageview or click event from a public profile page and folds it into the daily aggregate
// @Tags analytics
// @Accept json
// @Produce json
// @Param x-session-id header string false "Mirrors session_id when the body omits it"
// @Param event body domain.TrackRequest true "Visitor event"
// @Success 202 {object} common.APIResponse
// @Failure 400 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Failure 503 {object} common.APIResponse
// @Router /analytics/track [post]
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req domain.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		eventsTotal.WithLabelValues("unknown", "rejected").Inc()
		common.ErrorResponse(c, http.StatusBadRequest, "malformed event payload", err)
		return
	}

	if req.SessionID == "" {
		req.SessionID = c.GetHeader("x-session-id")
	}

	if err := h.service.Track(c.Request.Context(), &req, c.Request.UserAgent()); err != nil {
		eventsTotal.WithLabelValues(metricEventType(req.EventType), "rejected").Inc()
		handleServiceError(c, err)
		return
	}

	eventsTotal.WithLabelValues(metricEventType(req.EventType), "accepted").Inc()
	c.JSON(http.StatusAccepted, common.APIResponse{Data: gin.H{"accepted": true}})
}

// GetStats returns daily aggregate rows for the owner's dashboard
// @Summary Get daily profile statistics
// @Description Returns pre-aggregated daily rows for a profile, newest first
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param profile_id query int true "Profile ID"
// @Param from query string false "Start date (YYYY-MM-DD), default 30 days before to"
// @Param to query string false "End date (YYYY-MM-DD), default today"
// @Param limit query int false "Maximum number of rows"
// @Success 200 {object} common.APIResponse
// @Failure 400 {object} common.APIResponse
// @Failure 403 {object} common.APIResponse
// @Router /analytics/stats [get]
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	profileID, err := strconv.ParseUint(c.Query("profile_id"), 10, 64)
	if err != nil || profileID == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid profile_id", err)
		return
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		from, err = time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid from date", err)
			return
		}
	}
	if v := c.Query("to"); v != "" {
		to, err = time.ParseInLocation("2006-01-02", v, time.UTC)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid to date", err)
			return
		}
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			common.ErrorResponse(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
	}

	rows, err := h.service.GetStats(c.Request.Context(), userID, profileID, from, to, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, rows, &common.Meta{Total: int64(len(rows))})
}
