package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts returns the full catalog in id order so that repeated calls
// with unchanged data yield the same sequence.
func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	// Initialized so an empty catalog serializes as [] rather than null.
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

// UpdateProduct saves the whole row: concurrent writers are serialized by the
// database and the last write wins.
func (r *GormRepo) UpdateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Save(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
