package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trademart/catalog_api/internal/middleware"
	"github.com/trademart/catalog_api/internal/service"
	"github.com/trademart/catalog_api/internal/utils"
)

// ProductHandler handles catalog HTTP endpoints.
type ProductHandler struct {
	catalogService    *service.CatalogService
	preferenceService *service.PreferenceService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalogService *service.CatalogService, preferenceService *service.PreferenceService) *ProductHandler {
	return &ProductHandler{
		catalogService:    catalogService,
		preferenceService: preferenceService,
	}
}

// ListProducts handles GET /v1/products?searchString=&citySearchString=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(
		c.Request.Context(),
		c.Query("searchString"),
		c.Query("citySearchString"),
	)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}

	utils.Success(c, http.StatusOK, "Products retrieved", products)
}

// GetProductDetail handles GET /v1/products/:id
func (h *ProductHandler) GetProductDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	view, err := h.catalogService.GetProductDetail(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrUserNotFound):
			utils.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		default:
			utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve product")
		}
		return
	}

	utils.Success(c, http.StatusOK, "Product retrieved", view)
}

// GetCreateForm handles GET /v1/products/create. It returns the selectable
// product types as (label, value) pairs for the form dropdown.
func (h *ProductHandler) GetCreateForm(c *gin.Context) {
	options, err := h.catalogService.ProductTypeOptions(c.Request.Context())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve product types")
		return
	}

	utils.Success(c, http.StatusOK, "Create form", gin.H{"productTypes": options})
}

// CreateProduct handles POST /v1/products/create. On failure the submitted
// input is echoed back so the client can re-display the form.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrProductTypeNotFound):
			utils.ErrorWithInput(c, http.StatusBadRequest, "PRODUCT_TYPE_NOT_FOUND", "Product type does not exist", req)
		case errors.Is(err, utils.ErrUserNotFound):
			utils.ErrorWithInput(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found", req)
		default:
			utils.ErrorWithInput(c, http.StatusInternalServerError, "PERSISTENCE_FAILURE", "Failed to create product", req)
		}
		return
	}

	// Clients follow up with GET /v1/products/:id for the detail view.
	c.Header("Location", "/v1/products/"+strconv.Itoa(product.ID))
	utils.Success(c, http.StatusCreated, "Product created successfully", product)
}

// GetEditForm handles GET /v1/products/edit/:id. It returns the current
// product as the form model.
func (h *ProductHandler) GetEditForm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	product, err := h.catalogService.GetProductForEdit(c.Request.Context(), id, userID)
	if err != nil {
		h.writeMutationError(c, err, nil)
		return
	}

	utils.Success(c, http.StatusOK, "Edit form", product)
}

// UpdateProduct handles POST /v1/products/edit/:id.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.writeMutationError(c, err, req)
		return
	}

	utils.Success(c, http.StatusOK, "Product updated successfully", product)
}

// GetDeleteForm handles GET /v1/products/delete/:id. It returns the product
// so the client can render a confirmation.
func (h *ProductHandler) GetDeleteForm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	product, err := h.catalogService.GetProductForEdit(c.Request.Context(), id, userID)
	if err != nil {
		h.writeMutationError(c, err, nil)
		return
	}

	utils.Success(c, http.StatusOK, "Delete confirmation", product)
}

// DeleteProduct handles POST /v1/products/delete/:id.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id, userID); err != nil {
		h.writeMutationError(c, err, nil)
		return
	}

	utils.Success(c, http.StatusOK, "Product deleted successfully", nil)
}

// LikeProduct handles POST /v1/products/:id/like.
func (h *ProductHandler) LikeProduct(c *gin.Context) {
	h.react(c, true)
}

// DislikeProduct handles POST /v1/products/:id/dislike.
func (h *ProductHandler) DislikeProduct(c *gin.Context) {
	h.react(c, false)
}

func (h *ProductHandler) react(c *gin.Context, liked bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	pref, err := h.preferenceService.React(c.Request.Context(), id, userID, liked)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrAlreadyReacted):
			utils.Error(c, http.StatusBadRequest, "ALREADY_REACTED", "You have already reacted to this product")
		default:
			utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record reaction")
		}
		return
	}

	utils.Success(c, http.StatusCreated, "Reaction recorded", pref)
}

// writeMutationError maps service errors from edit/delete flows to HTTP
// responses, echoing input when provided.
func (h *ProductHandler) writeMutationError(c *gin.Context, err error, input interface{}) {
	switch {
	case errors.Is(err, utils.ErrProductNotFound):
		utils.ErrorWithInput(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", input)
	case errors.Is(err, utils.ErrNotOwner):
		utils.ErrorWithInput(c, http.StatusForbidden, "NOT_OWNER", "Only the owner may modify this product", input)
	case errors.Is(err, utils.ErrProductTypeNotFound):
		utils.ErrorWithInput(c, http.StatusBadRequest, "PRODUCT_TYPE_NOT_FOUND", "Product type does not exist", input)
	default:
		utils.ErrorWithInput(c, http.StatusInternalServerError, "PERSISTENCE_FAILURE", "Failed to modify product", input)
	}
}
