package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalyticsService struct {
	mock.Mock
}

func (m *mockAnalyticsService) Track(ctx context.Context, req *domain.TrackRequest, userAgent string) error {
	args := m.Called(ctx, req, userAgent)
	return args.Error(0)
}

func (m *mockAnalyticsService) GetStats(ctx context.Context, ownerID string, profileID uint64, from, to time.Time, limit int) ([]domain.DailyStatRow, error) {
	args := m.Called(ctx, ownerID, profileID, from, to, limit)
	if rows := args.Get(0); rows != nil {
		return rows.([]domain.DailyStatRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupAnalyticsRouter(svc *mockAnalyticsService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAnalyticsHandler(svc)
	router.POST("/api/v1/analytics/track", h.Track)
	router.GET("/api/v1/analytics/stats", func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}, h.GetStats)
	return router
}

func postTrack(t *testing.T, router *gin.Engine, body map[string]interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/track", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTrack_Accepted(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("Track", mock.Anything, mock.MatchedBy(func(req *domain.TrackRequest) bool {
		return req.ProfileID == 1 && req.SessionID == "sess-1" && req.EventType == "pageview"
	}), mock.Anything).Return(nil)

	router := setupAnalyticsRouter(svc, "")
	w := postTrack(t, router, map[string]interface{}{
		"profile_id": 1,
		"session_id": "sess-1",
		"event_type": "pageview",
	}, nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestTrack_SessionIDFromHeader(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("Track", mock.Anything, mock.MatchedBy(func(req *domain.TrackRequest) bool {
		return req.SessionID == "header-session"
	}), mock.Anything).Return(nil)

	router := setupAnalyticsRouter(svc, "")
	w := postTrack(t, router, map[string]interface{}{
		"profile_id": 1,
		"event_type": "pageview",
	}, map[string]string{"x-session-id": "header-session"})

	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestTrack_BodySessionWinsOverHeader(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("Track", mock.Anything, mock.MatchedBy(func(req *domain.TrackRequest) bool {
		return req.SessionID == "body-session"
	}), mock.Anything).Return(nil)

	router := setupAnalyticsRouter(svc, "")
	w := postTrack(t, router, map[string]interface{}{
		"profile_id": 1,
		"session_id": "body-session",
		"event_type": "pageview",
	}, map[string]string{"x-session-id": "header-session"})

	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestTrack_MalformedPayload(t *testing.T) {
	svc := new(mockAnalyticsService)
	router := setupAnalyticsRouter(svc, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics/track", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Track")
}

func TestTrack_MissingProfileID(t *testing.T) {
	svc := new(mockAnalyticsService)
	router := setupAnalyticsRouter(svc, "")

	w := postTrack(t, router, map[string]interface{}{
		"session_id": "sess-1",
		"event_type": "pageview",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Track")
}

func TestTrack_ValidationErrorFromService(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("Track", mock.Anything, mock.Anything, mock.Anything).Return(common.ErrInvalidInput)

	router := setupAnalyticsRouter(svc, "")
	w := postTrack(t, router, map[string]interface{}{
		"profile_id": 1,
		"session_id": "sess-1",
		"event_type": "teleport",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrack_UnknownProfile(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("Track", mock.Anything, mock.Anything, mock.Anything).Return(common.ErrProfileNotFound)

	router := setupAnalyticsRouter(svc, "")
	w := postTrack(t, router, map[string]interface{}{
		"profile_id": 999,
		"session_id": "sess-1",
		"event_type": "pageview",
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrack_StorageUnavailable(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("Track", mock.Anything, mock.Anything, mock.Anything).Return(common.ErrStorage)

	router := setupAnalyticsRouter(svc, "")
	w := postTrack(t, router, map[string]interface{}{
		"profile_id": 1,
		"session_id": "sess-1",
		"event_type": "pageview",
	}, nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTrack_RejectedEventTypesShareOneMetricSeries(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("Track", mock.Anything, mock.Anything, mock.Anything).Return(common.ErrInvalidInput)

	router := setupAnalyticsRouter(svc, "")
	before := testutil.CollectAndCount(eventsTotal)

	for i := 0; i < 50; i++ {
		w := postTrack(t, router, map[string]interface{}{
			"profile_id": 1,
			"session_id": "sess-1",
			"event_type": fmt.Sprintf("junk-%d", i),
		}, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	}

	// every junk value folds into the single "invalid" series
	after := testutil.CollectAndCount(eventsTotal)
	assert.LessOrEqual(t, after-before, 1)
}

func TestGetStats_RequiresAuth(t *testing.T) {
	svc := new(mockAnalyticsService)
	router := setupAnalyticsRouter(svc, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stats?profile_id=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "GetStats")
}

func TestGetStats_ReturnsRows(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []domain.DailyStatRow{
		{Date: day, ProfileViews: 5, LinkClicks: 2, TotalInteractions: 7, UniqueVisitors: 3},
	}

	svc := new(mockAnalyticsService)
	svc.On("GetStats", mock.Anything, "owner-1", uint64(1),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), 0).Return(rows, nil)

	router := setupAnalyticsRouter(svc, "owner-1")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stats?profile_id=1&from=2026-03-01&to=2026-03-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.DailyStatRow `json:"data"`
		Meta *common.Meta          `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(5), resp.Data[0].ProfileViews)
	assert.Equal(t, int64(3), resp.Data[0].UniqueVisitors)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestGetStats_NotOwner(t *testing.T) {
	svc := new(mockAnalyticsService)
	svc.On("GetStats", mock.Anything, "intruder", uint64(1), mock.Anything, mock.Anything, 0).
		Return(nil, common.ErrForbidden)

	router := setupAnalyticsRouter(svc, "intruder")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stats?profile_id=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetStats_BadQueryParams(t *testing.T) {
	svc := new(mockAnalyticsService)
	router := setupAnalyticsRouter(svc, "owner-1")

	cases := []struct {
		name  string
		query string
	}{
		{"missing profile_id", ""},
		{"bad profile_id", "profile_id=abc"},
		{"bad from", "profile_id=1&from=03-01-2026"},
		{"bad to", "profile_id=1&to=yesterday"},
		{"negative limit", "profile_id=1&limit=-5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stats?"+tc.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
	svc.AssertNotCalled(t, "GetStats")
}
