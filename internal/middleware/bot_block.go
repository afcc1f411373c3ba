package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/linkpage/linkpage-backend/internal/common"
)

// botPattern matches known scrapers, crawlers and automation tools.
// Blocked requests never reach the analytics pipeline, so bot traffic
// cannot inflate daily counters.
var botPattern = regexp.MustCompile(`(?i)(bot|crawler|spider|scrape|slurp|curl|wget|python-requests|python-urllib|go-http-client|java/|libwww|httpclient|headless|phantomjs|selenium|puppeteer|playwright)`)

// BotBlock rejects requests whose User-Agent matches the scraper denylist.
// Requests with an empty User-Agent pass: some legitimate in-app browsers
// send none.
func BotBlock() gin.HandlerFunc {
	return func(c *gin.Context) {
		ua := c.GetHeader("User-Agent")
		if ua != "" && botPattern.MatchString(ua) {
			common.ErrorResponse(c, http.StatusForbidden, "automated traffic is not allowed", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
