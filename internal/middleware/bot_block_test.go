package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupBotBlockRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BotBlock())
	router.GET("/page", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestBotBlock(t *testing.T) {
	router := setupBotBlockRouter()

	tests := []struct {
		name       string
		userAgent  string
		wantStatus int
	}{
		{
			name:       "regular browser passes",
			userAgent:  "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			wantStatus: http.StatusOK,
		},
		{
			name:       "mobile browser passes",
			userAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty user agent passes",
			userAgent:  "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "googlebot blocked",
			userAgent:  "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "curl blocked",
			userAgent:  "curl/8.4.0",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "python requests blocked",
			userAgent:  "python-requests/2.31.0",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "headless chrome blocked",
			userAgent:  "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) HeadlessChrome/120.0 Safari/537.36",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "case insensitive match",
			userAgent:  "SCRAPEMASTER 3000",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/page", nil)
			if tt.userAgent != "" {
				req.Header.Set("User-Agent", tt.userAgent)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
