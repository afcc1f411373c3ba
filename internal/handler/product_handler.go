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

// ProductHandler handles product block HTTP requests
type ProductHandler struct {
	service service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /profiles/:id/products
func (h *ProductHandler) List(c *gin.Context) {
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

	products, err := h.service.List(c.Request.Context(), userID, profileID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, products, &common.Meta{Total: int64(len(products))})
}

// Create handles POST /profiles/:id/products
func (h *ProductHandler) Create(c *gin.Context) {
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

	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid product payload", err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), userID, profileID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{Data: product})
}

// Update handles PUT /products/:product_id
func (h *ProductHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid product payload", err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), userID, productID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, product, nil)
}

// Delete handles DELETE /products/:product_id
func (h *ProductHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid product id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, productID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
