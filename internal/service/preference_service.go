package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trademart/catalog_api/internal/models"
	"github.com/trademart/catalog_api/internal/repository"
	"github.com/trademart/catalog_api/internal/utils"
)

// PreferenceService records user reactions to products.
type PreferenceService struct {
	preferenceRepo *repository.PreferenceRepository
	productRepo    *repository.ProductRepository
}

// NewPreferenceService constructs a PreferenceService.
func NewPreferenceService(preferenceRepo *repository.PreferenceRepository, productRepo *repository.ProductRepository) *PreferenceService {
	return &PreferenceService{
		preferenceRepo: preferenceRepo,
		productRepo:    productRepo,
	}
}

// React records a like or dislike for (user, product). A user may react to
// a product at most once.
func (s *PreferenceService) React(ctx context.Context, productID, userID int, liked bool) (*models.Preference, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, fmt.Errorf("fetch product: %w", err)
	}

	count, err := s.preferenceRepo.CountByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch preferences: %w", err)
	}
	if count > 0 {
		return nil, utils.ErrAlreadyReacted
	}

	pref := &models.Preference{
		UserID:    userID,
		ProductID: productID,
		Liked:     liked,
	}
	if err := s.preferenceRepo.Create(ctx, pref); err != nil {
		return nil, fmt.Errorf("persist preference: %w", err)
	}
	return pref, nil
}
