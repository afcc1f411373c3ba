package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkpage/linkpage-backend/internal/common"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "not allowed", nil)
	case errors.Is(err, common.ErrProfileNotFound),
		errors.Is(err, common.ErrLinkNotFound),
		errors.Is(err, common.ErrProductNotFound),
		errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, common.ErrSlugTaken):
		common.ErrorResponse(c, http.StatusConflict, "slug already in use", nil)
	case errors.Is(err, common.ErrStorage):
		// transient; the client may retry the identical request
		common.ErrorResponse(c, http.StatusServiceUnavailable, "storage temporarily unavailable", nil)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "internal error", nil)
	}
}
