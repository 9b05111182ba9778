package client

import (
	"context"
	"sync"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
)

// ScreenState is the per-screen loading lifecycle. A screen transitions
// Loading -> Loaded|Errored exactly once per fetch trigger.
type ScreenState int

const (
	ScreenLoading ScreenState = iota
	ScreenLoaded
	ScreenErrored
)

// ProductListView fetches the catalog once per Load call and settles into a
// final state before anything renders.
type ProductListView struct {
	api *Client

	mu       sync.Mutex
	state    ScreenState
	products []models.Product
	err      error
}

func NewProductListView(api *Client) *ProductListView {
	return &ProductListView{api: api, state: ScreenLoading}
}

func (v *ProductListView) Load(ctx context.Context) {
	v.mu.Lock()
	v.state = ScreenLoading
	v.mu.Unlock()

	products, err := v.api.Products(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.err = err
		v.state = ScreenErrored
		return
	}
	v.products = products
	v.err = nil
	v.state = ScreenLoaded
}

func (v *ProductListView) State() (ScreenState, []models.Product, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.products, v.err
}

// ProductDetailView is the single-product variant of the same lifecycle.
type ProductDetailView struct {
	api *Client
	id  string

	mu      sync.Mutex
	state   ScreenState
	product *models.Product
	err     error
}

func NewProductDetailView(api *Client, id string) *ProductDetailView {
	return &ProductDetailView{api: api, id: id, state: ScreenLoading}
}

func (v *ProductDetailView) Load(ctx context.Context) {
	v.mu.Lock()
	v.state = ScreenLoading
	v.mu.Unlock()

	product, err := v.api.Product(ctx, v.id)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.err = err
		v.state = ScreenErrored
		return
	}
	v.product = product
	v.err = nil
	v.state = ScreenLoaded
}

func (v *ProductDetailView) State() (ScreenState, *models.Product, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.product, v.err
}
