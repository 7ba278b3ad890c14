package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trademart/catalog_api/internal/cache"
	"github.com/trademart/catalog_api/internal/models"
	"github.com/trademart/catalog_api/internal/repository"
	"github.com/trademart/catalog_api/internal/utils"
)

// CatalogService handles product listing, detail assembly, and CRUD.
type CatalogService struct {
	productRepo     *repository.ProductRepository
	productTypeRepo *repository.ProductTypeRepository
	preferenceRepo  *repository.PreferenceRepository
	userRepo        *repository.UserRepository
	typeCache       *cache.ProductTypeCache
}

// NewCatalogService constructs a CatalogService. typeCache may be nil, in
// which case product types are always read from the store.
func NewCatalogService(
	productRepo *repository.ProductRepository,
	productTypeRepo *repository.ProductTypeRepository,
	preferenceRepo *repository.PreferenceRepository,
	userRepo *repository.UserRepository,
	typeCache *cache.ProductTypeCache,
) *CatalogService {
	return &CatalogService{
		productRepo:     productRepo,
		productTypeRepo: productTypeRepo,
		preferenceRepo:  preferenceRepo,
		userRepo:        userRepo,
		typeCache:       typeCache,
	}
}

// CreateProductRequest represents the submitted create form. Fields are
// copied verbatim onto the new product; the owner comes from the session.
type CreateProductRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	City          string          `json:"city"`
	ImagePath     string          `json:"imagePath"`
	Active        bool            `json:"active"`
	DateCreated   time.Time       `json:"dateCreated"`
	ProductTypeID int             `json:"productTypeId"`
}

// UpdateProductRequest represents the submitted edit form.
type UpdateProductRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	City          string          `json:"city"`
	ImagePath     string          `json:"imagePath"`
	Active        bool            `json:"active"`
	ProductTypeID int             `json:"productTypeId"`
}

// ListProducts returns the products matching the optional title and city
// substring filters. Empty filters impose no restriction; filters combine
// with AND. An empty catalog yields an empty slice, never an error.
func (s *CatalogService) ListProducts(ctx context.Context, titleFilter, cityFilter string) ([]models.Product, error) {
	return s.productRepo.List(ctx, repository.ListFilter{
		Title: titleFilter,
		City:  cityFilter,
	})
}

// GetProductDetail assembles the detail view for a product as seen by the
// given user. The like/dislike buttons are shown only when the user has no
// prior reaction to the product.
func (s *CatalogService) GetProductDetail(ctx context.Context, productID, userID int) (*models.ProductDetailView, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, fmt.Errorf("fetch product: %w", err)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	prefCount, err := s.preferenceRepo.CountByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch preferences: %w", err)
	}

	view := &models.ProductDetailView{
		ProductID:   product.ID,
		DateCreated: product.DateCreated,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		ProductType: models.ProductType{ID: product.ProductTypeID},
	}
	if product.ProductTypeLabel != nil {
		view.ProductType.Label = *product.ProductTypeLabel
	}
	if prefCount == 0 {
		view.HasLikeButton = true
		view.HasDislikeButton = true
	}
	return view, nil
}

// ProductTypeOptions returns the (label, value) pairs for the create-form
// dropdown, served through the reference-data cache when available.
func (s *CatalogService) ProductTypeOptions(ctx context.Context) ([]models.ProductTypeOption, error) {
	types, err := s.productTypes(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]models.ProductTypeOption, 0, len(types))
	for _, pt := range types {
		options = append(options, models.ProductTypeOption{
			Text:  pt.Label,
			Value: pt.ID,
		})
	}
	return options, nil
}

// productTypes reads product types cache-aside.
func (s *CatalogService) productTypes(ctx context.Context) ([]models.ProductType, error) {
	if s.typeCache != nil {
		if types, ok, err := s.typeCache.Get(ctx); err == nil && ok {
			return types, nil
		}
	}

	types, err := s.productTypeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.typeCache != nil {
		// A failed cache fill is not fatal; the store already answered.
		_ = s.typeCache.Set(ctx, types)
	}
	return types, nil
}

// CreateProduct persists a new product owned by the current user. Input
// fields are copied verbatim. The referenced product type must exist.
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest, currentUserID int) (*models.Product, error) {
	if _, err := s.userRepo.GetByID(ctx, currentUserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if _, err := s.productTypeRepo.GetByID(ctx, req.ProductTypeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("fetch product type: %w", err)
	}

	product := &models.Product{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Quantity:      req.Quantity,
		City:          req.City,
		ImagePath:     req.ImagePath,
		Active:        req.Active,
		DateCreated:   req.DateCreated,
		UserID:        currentUserID,
		ProductTypeID: req.ProductTypeID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("persist product: %w", err)
	}
	return product, nil
}

// GetProductForEdit returns the product as the edit-form model. Only the
// owner may edit.
func (s *CatalogService) GetProductForEdit(ctx context.Context, productID, currentUserID int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	if product.UserID != currentUserID {
		return nil, utils.ErrNotOwner
	}
	return product, nil
}

// UpdateProduct applies the submitted edit form to an existing product.
// Only the owner may update, and the referenced product type must exist.
func (s *CatalogService) UpdateProduct(ctx context.Context, productID int, req *UpdateProductRequest, currentUserID int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	if product.UserID != currentUserID {
		return nil, utils.ErrNotOwner
	}

	if _, err := s.productTypeRepo.GetByID(ctx, req.ProductTypeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductTypeNotFound
		}
		return nil, fmt.Errorf("fetch product type: %w", err)
	}

	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.Quantity = req.Quantity
	product.City = req.City
	product.ImagePath = req.ImagePath
	product.Active = req.Active
	product.ProductTypeID = req.ProductTypeID
	product.ProductTypeLabel = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("persist product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product. Only the owner may delete.
func (s *CatalogService) DeleteProduct(ctx context.Context, productID, currentUserID int) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return fmt.Errorf("fetch product: %w", err)
	}
	if product.UserID != currentUserID {
		return utils.ErrNotOwner
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
