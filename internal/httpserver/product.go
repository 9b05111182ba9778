package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/events"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/logging"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/models"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/respond"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/search"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/service"
	"github.com/Specialized-Platform-Development/spd-mobile-app/internal/util"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Search   *search.Service
	Producer *events.Producer
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

func (h *ProductHTTP) publish(c echo.Context, event map[string]any) {
	ctx := c.Request().Context()
	if err := h.Producer.PublishEvent(ctx, "product_events", event["product_id"].(string), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

func (h *ProductHTTP) index(c echo.Context, prod *models.Product) {
	ctx := c.Request().Context()
	if err := h.Search.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Error("search_index_error", "product_id", prod.ID, "error", err)
	}
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	items, err := h.Svc.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return respond.OK(c, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	product, err := h.Svc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return respond.Fail(c, http.StatusNotFound, "product not found")
		}
		return err
	}
	return respond.OK(c, product)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_search")

	if h.Search == nil {
		return respond.Fail(c, http.StatusServiceUnavailable, "search is not available")
	}

	q := c.QueryParam("q")
	if q == "" {
		return respond.Fail(c, http.StatusBadRequest, "missing query parameter q")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Search.Search(ctx, q, from, limit)
	if err != nil {
		l.Error("search_error", "query", q, "error", err)
		return err
	}

	l.Info("search_success", "query", q, "total", total)
	return respond.OK(c, products)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_product")

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Fail(c, http.StatusBadRequest, "invalid body")
	}

	prod := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	}
	created, err := h.Svc.CreateProduct(ctx, prod)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return respond.Fail(c, http.StatusBadRequest, "invalid input",
				"name is required", "price must not be negative")
		}
		return err
	}

	h.publish(c, map[string]any{"type": "product_created", "product_id": created.ID, "name": created.Name})
	h.index(c, created)

	l.Info("create_product_success", "product_id", created.ID)
	return respond.Created(c, created)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch_product")

	var patch service.ProductPatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return respond.Fail(c, http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return respond.Fail(c, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrValidation):
			return respond.Fail(c, http.StatusBadRequest, "invalid input",
				"name is required", "price must not be negative")
		default:
			return err
		}
	}

	h.publish(c, map[string]any{"type": "product_updated", "product_id": prod.ID, "name": prod.Name})
	h.index(c, prod)

	l.Info("patch_product_success", "product_id", prod.ID)
	return respond.OK(c, prod)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_product")

	id := c.Param("id")
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return respond.Fail(c, http.StatusNotFound, "product not found")
		}
		return err
	}

	h.publish(c, map[string]any{"type": "product_deleted", "product_id": id})
	if err := h.Search.DeleteProduct(ctx, id); err != nil {
		l.Error("search_delete_error", "product_id", id, "error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return respond.OK(c, echo.Map{"id": id})
}
