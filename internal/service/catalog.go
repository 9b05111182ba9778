package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/repo"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

// GetProduct looks a product up by exact id. A syntactically invalid id
// cannot match any product, so it reports not-found rather than a parse error.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func validProduct(name string, price float64) bool {
	return name != "" && price >= 0
}

func (s *CatalogService) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if !validProduct(prod.Name, prod.Price) {
		return nil, ErrValidation
	}
	return s.Repo.CreateProduct(ctx, prod)
}

type ProductPatch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	prod, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		prod.Name = *patch.Name
	}
	if patch.Price != nil {
		prod.Price = *patch.Price
	}
	if patch.Category != nil {
		prod.Category = *patch.Category
	}
	if patch.Description != nil {
		prod.Description = *patch.Description
	}
	if patch.Image != nil {
		prod.Image = *patch.Image
	}

	if !validProduct(prod.Name, prod.Price) {
		return nil, ErrValidation
	}
	return s.Repo.UpdateProduct(ctx, prod)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
