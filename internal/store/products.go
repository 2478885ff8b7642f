package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"partnerbridge/internal/logger"
	"partnerbridge/internal/models"
)

type ProductStore struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewProductStore(db *gorm.DB, logger *logger.Logger) *ProductStore {
	return &ProductStore{
		db:     db,
		logger: logger,
	}
}

// UpsertBySKU writes an imported item, keyed by its encoded SKU. Returns
// whether a new row was created.
func (s *ProductStore) UpsertBySKU(ctx context.Context, product *models.Product) (bool, error) {
	var existing models.Product
	err := s.db.WithContext(ctx).Where("sku = ?", product.SKU).First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
			return false, fmt.Errorf("failed to create product %s: %w", product.SKU, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to look up product %s: %w", product.SKU, err)
	default:
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
			return false, fmt.Errorf("failed to update product %s: %w", product.SKU, err)
		}
		return false, nil
	}
}

// List returns imported items, newest first.
func (s *ProductStore) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	if limit <= 0 || limit > 250 {
		limit = 50
	}
	var products []models.Product
	err := s.db.WithContext(ctx).Order("updated_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListByPartner returns the imported items of one partner shop.
func (s *ProductStore) ListByPartner(ctx context.Context, shop string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Where("partner_shop = ?", shop).Order("sku").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products for %s: %w", shop, err)
	}
	return products, nil
}
