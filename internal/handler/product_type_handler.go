package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trademart/catalog_api/internal/cache"
	"github.com/trademart/catalog_api/internal/repository"
	"github.com/trademart/catalog_api/internal/utils"
)

// ProductTypeHandler serves the product-type reference data.
type ProductTypeHandler struct {
	repo      *repository.ProductTypeRepository
	typeCache *cache.ProductTypeCache
}

// NewProductTypeHandler creates a new ProductTypeHandler.
func NewProductTypeHandler(repo *repository.ProductTypeRepository, typeCache *cache.ProductTypeCache) *ProductTypeHandler {
	return &ProductTypeHandler{repo: repo, typeCache: typeCache}
}

// GetProductTypes returns all product types.
// GET /v1/product-types
func (h *ProductTypeHandler) GetProductTypes(c *gin.Context) {
	ctx := c.Request.Context()

	if h.typeCache != nil {
		if types, ok, err := h.typeCache.Get(ctx); err == nil && ok {
			utils.Success(c, http.StatusOK, "Product types retrieved", types)
			return
		}
	}

	types, err := h.repo.GetAll(ctx)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retrieve product types")
		return
	}
	if h.typeCache != nil {
		_ = h.typeCache.Set(ctx, types)
	}

	utils.Success(c, http.StatusOK, "Product types retrieved", types)
}
