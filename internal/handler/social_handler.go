package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/domain"
	"github.com/linkpage/linkpage-backend/internal/middleware"
	"github.com/linkpage/linkpage-backend/internal/service"
)

// SocialHandler handles social icon HTTP requests
type SocialHandler struct {
	service service.SocialService
}

// NewSocialHandler creates a new SocialHandler
func NewSocialHandler(service service.SocialService) *SocialHandler {
	return &SocialHandler{service: service}
}

// List handles GET /profiles/:id/socials
func (h *SocialHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	profileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid profile id", err)
		return
	}

	icons, err := h.service.List(c.Request.Context(), userID, profileID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, icons, &common.Meta{Total: int64(len(icons))})
}

// Create handles POST /profiles/:id/socials
func (h *SocialHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	profileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid profile id", err)
		return
	}

	var req domain.CreateSocialIconRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid social icon payload", err)
		return
	}

	icon, err := h.service.Create(c.Request.Context(), userID, profileID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: icon})
}

// Delete handles DELETE /socials/:icon_id
func (h *SocialHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	iconID, err := strconv.ParseUint(c.Param("icon_id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid icon id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, iconID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
