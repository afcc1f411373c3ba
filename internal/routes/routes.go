package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linkpage/linkpage-backend/internal/handler"
	"github.com/linkpage/linkpage-backend/internal/middleware"
	"github.com/linkpage/linkpage-backend/pkg/jwt"
)

// Handlers bundles everything Setup wires into the router.
type Handlers struct {
	Profile   *handler.ProfileHandler
	Link      *handler.LinkHandler
	Product   *handler.ProductHandler
	Social    *handler.SocialHandler
	Analytics *handler.AnalyticsHandler
	Upload    *handler.UploadHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)

	// Public page rendering (bot-filtered like ingestion: scrapers get
	// neither the page nor a chance to emit events)
	api.GET("/profiles/:slug", middleware.BotBlock(), h.Profile.GetPage)

	// Profile management. The method trees keep these from clashing with
	// the public :slug read.
	api.POST("/profiles", auth, h.Profile.Create)
	api.PUT("/profiles/:id", auth, h.Profile.Update)

	// Event ingestion (public, bot-filtered)
	api.POST("/analytics/track", middleware.BotBlock(), h.Analytics.Track)

	// Aggregated stats (owner only)
	api.GET("/analytics/stats", auth, h.Analytics.GetStats)

	// Owner dashboard surface
	me := api.Group("/me", auth)
	me.GET("/profiles", h.Profile.ListMine)

	// Blocks (nested under owned profiles)
	links := me.Group("/profiles/:id/links")
	links.GET("", h.Link.List)
	links.POST("", h.Link.Create)
	links.PUT("/:link_id", h.Link.Update)
	links.DELETE("/:link_id", h.Link.Delete)

	products := me.Group("/profiles/:id/products")
	products.GET("", h.Product.List)
	products.POST("", h.Product.Create)
	products.PUT("/:product_id", h.Product.Update)
	products.DELETE("/:product_id", h.Product.Delete)

	socials := me.Group("/profiles/:id/socials")
	socials.GET("", h.Social.List)
	socials.POST("", h.Social.Create)
	socials.DELETE("/:icon_id", h.Social.Delete)

	// Image uploads
	if h.Upload != nil {
		api.POST("/uploads", auth, h.Upload.Upload)
	}
}
