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

// LinkHandler handles link block HTTP requests
type LinkHandler struct {
	service service.LinkService
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(service service.LinkService) *LinkHandler {
	return &LinkHandler{service: service}
}

// List handles GET /profiles/:id/links
func (h *LinkHandler) List(c *gin.Context) {
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

	links, err := h.service.List(c.Request.Context(), userID, profileID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, links, &common.Meta{Total: int64(len(links))})
}

// Create handles POST /profiles/:id/links
func (h *LinkHandler) Create(c *gin.Context) {
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

	var req domain.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid link payload", err)
		return
	}

	link, err := h.service.Create(c.Request.Context(), userID, profileID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: link})
}

// Update handles PUT /links/:link_id
func (h *LinkHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	linkID, err := strconv.ParseUint(c.Param("link_id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid link id", err)
		return
	}

	var req domain.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid link payload", err)
		return
	}

	link, err := h.service.Update(c.Request.Context(), userID, linkID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, link, nil)
}

// Delete handles DELETE /links/:link_id
func (h *LinkHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	linkID, err := strconv.ParseUint(c.Param("link_id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid link id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, linkID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
