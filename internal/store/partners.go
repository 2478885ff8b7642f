// Package store holds the persistence layer: partners keyed by shop domain
// and imported catalog items keyed by encoded SKU.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"partnerbridge/internal/logger"
	"partnerbridge/internal/models"
)

// ErrPartnerNotFound is returned when no usable partner row matches a shop.
var ErrPartnerNotFound = errors.New("partner not found")

// PersistenceError wraps a storage failure with the shop it happened for.
type PersistenceError struct {
	Shop string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure for shop %s: %v", e.Shop, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type PartnerStore struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewPartnerStore(db *gorm.DB, logger *logger.Logger) *PartnerStore {
	return &PartnerStore{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or refreshes the partner row for a shop after a successful
// token exchange. The row is looked up including soft-deleted partners so a
// reinstall reactivates the existing row instead of violating the unique
// shop constraint. The write is a single save; atomicity comes from the
// database, not from this method.
func (s *PartnerStore) Upsert(ctx context.Context, shop, token, scope string) (*models.Partner, error) {
	var partner models.Partner
	err := s.db.WithContext(ctx).Where("shop_domain = ?", shop).First(&partner).Error

	switch {
	case err == nil:
		partner.Install(token, scope)
		if err := s.db.WithContext(ctx).Save(&partner).Error; err != nil {
			return nil, &PersistenceError{Shop: shop, Err: err}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		partner = models.Partner{ShopDomain: shop}
		partner.Install(token, scope)
		if err := s.db.WithContext(ctx).Create(&partner).Error; err != nil {
			return nil, &PersistenceError{Shop: shop, Err: err}
		}
	default:
		return nil, &PersistenceError{Shop: shop, Err: err}
	}

	s.logger.Info("Partner upserted: shop=%s state=%s", shop, partner.State())
	return &partner, nil
}

// FindByShop returns the partner for a shop, excluding soft-deleted rows.
func (s *PartnerStore) FindByShop(ctx context.Context, shop string) (*models.Partner, error) {
	var partner models.Partner
	err := s.db.WithContext(ctx).Where("shop_domain = ? AND deleted = ?", shop, false).First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Shop: shop, Err: err}
	}
	return &partner, nil
}

// All returns every partner that has not been soft-deleted.
func (s *PartnerStore) All(ctx context.Context) ([]models.Partner, error) {
	var partners []models.Partner
	if err := s.db.WithContext(ctx).Where("deleted = ?", false).Order("shop_domain").Find(&partners).Error; err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	return partners, nil
}

// SoftDelete marks the partner as uninstalled and drops its credential. The
// row stays behind so a later reinstall can reactivate it.
func (s *PartnerStore) SoftDelete(ctx context.Context, shop string) error {
	var partner models.Partner
	err := s.db.WithContext(ctx).Where("shop_domain = ?", shop).First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPartnerNotFound
	}
	if err != nil {
		return &PersistenceError{Shop: shop, Err: err}
	}

	partner.Uninstall(time.Now())
	if err := s.db.WithContext(ctx).Save(&partner).Error; err != nil {
		return &PersistenceError{Shop: shop, Err: err}
	}

	s.logger.Info("Partner soft-deleted: shop=%s", shop)
	return nil
}

// WipeToken revokes the partner's credential without deleting the row.
func (s *PartnerStore) WipeToken(ctx context.Context, shop string) error {
	var partner models.Partner
	err := s.db.WithContext(ctx).Where("shop_domain = ?", shop).First(&partner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPartnerNotFound
	}
	if err != nil {
		return &PersistenceError{Shop: shop, Err: err}
	}

	partner.WipeToken()
	if err := s.db.WithContext(ctx).Save(&partner).Error; err != nil {
		return &PersistenceError{Shop: shop, Err: err}
	}
	return nil
}

// TouchSync records a completed catalog sync.
func (s *PartnerStore) TouchSync(ctx context.Context, shop string, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Partner{}).
		Where("shop_domain = ?", shop).
		Update("last_synced_at", at)
	if res.Error != nil {
		return &PersistenceError{Shop: shop, Err: res.Error}
	}
	return nil
}
