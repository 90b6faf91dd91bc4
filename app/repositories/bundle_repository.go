package repositories

import (
	"context"

	"github.com/greenpantry/storefront/app/models"
	"gorm.io/gorm"
)

type BundleRepository interface {
	GetBundles(ctx context.Context) ([]models.Bundle, error)
	GetByID(ctx context.Context, id string) (*models.Bundle, error)
	GetBySlug(ctx context.Context, slug string) (*models.Bundle, error)
}

type bundleRepository struct {
	db *gorm.DB
}

func NewBundleRepository(db *gorm.DB) BundleRepository {
	return &bundleRepository{db}
}

func (b *bundleRepository) GetBundles(ctx context.Context) ([]models.Bundle, error) {
	var bundles []models.Bundle
	if err := b.db.WithContext(ctx).
		Model(&models.Bundle{}).
		Preload("Products").
		Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

func (b *bundleRepository) GetByID(ctx context.Context, id string) (*models.Bundle, error) {
	var bundle models.Bundle
	if err := b.db.WithContext(ctx).
		Model(&models.Bundle{}).
		Preload("Products").
		Where("id = ?", id).
		First(&bundle).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (b *bundleRepository) GetBySlug(ctx context.Context, slug string) (*models.Bundle, error) {
	var bundle models.Bundle
	if err := b.db.WithContext(ctx).
		Model(&models.Bundle{}).
		Preload("Products").
		Where("slug = ?", slug).
		First(&bundle).Error; err != nil {
		return nil, err
	}
	return &bundle, nil
}
