package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linkpage/linkpage-backend/internal/common"
	"github.com/linkpage/linkpage-backend/internal/middleware"
	"github.com/linkpage/linkpage-backend/pkg/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler handles profile image uploads to S3-compatible storage
type UploadHandler struct {
	storage       *storage.S3Client
	maxUploadSize int64
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(s3 *storage.S3Client, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{storage: s3, maxUploadSize: maxUploadSize}
}

// Upload handles POST /uploads
// @Summary Upload a profile image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (jpeg, png, gif, webp)"
// @Success 201 {object} common.APIResponse
// @Failure 400 {object} common.APIResponse
// @Failure 503 {object} common.APIResponse
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	if h.storage == nil {
		common.ErrorResponse(c, http.StatusServiceUnavailable, "uploads are not configured", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "missing file field", err)
		return
	}
	if fileHeader.Size > h.maxUploadSize {
		common.ErrorResponse(c, http.StatusBadRequest, "file too large", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		common.ErrorResponse(c, http.StatusBadRequest, "unsupported image type", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "unreadable file", err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := userID + "/" + uuid.New().String() + ext

	result, err := h.storage.Upload(c.Request.Context(), key, file, contentType, fileHeader.Size)
	if err != nil {
		common.ErrorResponse(c, http.StatusServiceUnavailable, "upload failed", nil)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: result})
}
