package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/repo"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: &repo.GormRepo{DB: newTestDB(t)}}
}

func seedProducts(t *testing.T, svc *CatalogService, names ...string) []models.Product {
	t.Helper()
	out := make([]models.Product, 0, len(names))
	for i, name := range names {
		prod, err := svc.CreateProduct(context.Background(), &models.Product{
			Name:     name,
			Price:    float64(i+1) * 10,
			Category: "electronics",
		})
		require.NoError(t, err)
		out = append(out, *prod)
	}
	return out
}

func TestCatalogService_ListProducts_DeterministicOrder(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()
	seedProducts(t, svc, "Laptop Pro", "Phone Mini", "Coffee Maker")

	first, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCatalogService_GetProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()
	seeded := seedProducts(t, svc, "Laptop Pro")

	prod, err := svc.GetProduct(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, seeded[0].Name, prod.Name)
	assert.Equal(t, seeded[0].Price, prod.Price)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
	}{
		{name: "unknown uuid", id: "8e2b6e89-1d5b-4b67-9e51-0e4a4f3f9a2c"},
		{name: "not a uuid at all", id: "doesnotexist"},
		{name: "empty", id: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			prod, err := svc.GetProduct(ctx, tt.id)
			assert.Nil(t, prod)
			assert.ErrorIs(t, err, ErrProductNotFound)
		})
	}
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &models.Product{Name: "", Price: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, &models.Product{Name: "Laptop", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)

	prod, err := svc.CreateProduct(ctx, &models.Product{Name: "Free Sticker", Price: 0})
	require.NoError(t, err)
	assert.NotEmpty(t, prod.ID)
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()
	seeded := seedProducts(t, svc, "Laptop Pro")

	name := "Laptop Pro 2"
	price := 99.5
	updated, err := svc.UpdateProduct(ctx, seeded[0].ID, ProductPatch{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro 2", updated.Name)
	assert.Equal(t, 99.5, updated.Price)
	assert.Equal(t, "electronics", updated.Category)

	bad := -5.0
	_, err = svc.UpdateProduct(ctx, seeded[0].ID, ProductPatch{Price: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateProduct(ctx, "doesnotexist", ProductPatch{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_UpdateProduct_LastWriteWins(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()
	seeded := seedProducts(t, svc, "Laptop Pro")

	a, b := "From writer A", "From writer B"
	_, err := svc.UpdateProduct(ctx, seeded[0].ID, ProductPatch{Name: &a})
	require.NoError(t, err)
	_, err = svc.UpdateProduct(ctx, seeded[0].ID, ProductPatch{Name: &b})
	require.NoError(t, err)

	prod, err := svc.GetProduct(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "From writer B", prod.Name)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()
	seeded := seedProducts(t, svc, "Laptop Pro")

	require.NoError(t, svc.DeleteProduct(ctx, seeded[0].ID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, seeded[0].ID), ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, "doesnotexist"), ErrProductNotFound)
}
