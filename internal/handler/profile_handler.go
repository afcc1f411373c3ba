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

// ProfileHandler handles profile page HTTP requests
type ProfileHandler struct {
	service service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetPage handles GET /profiles/:slug (public page read)
// @Summary Get a public profile page
// @Tags profiles
// @Produce json
// @Param slug path string true "Profile slug"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /profiles/{slug} [get]
func (h *ProfileHandler) GetPage(c *gin.Context) {
	page, err := h.service.GetPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, page, nil)
}

// Create handles POST /profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req domain.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid profile payload", err)
		return
	}

	profile, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: profile})
}

// Update handles PUT /profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
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

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid profile payload", err)
		return
	}

	profile, err := h.service.Update(c.Request.Context(), userID, profileID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, profile, nil)
}

// ListMine handles GET /me/profiles
func (h *ProfileHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	profiles, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, profiles, &common.Meta{Total: int64(len(profiles))})
}
