package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/mytheresa/go-configurable-catalog/app/api"
	"github.com/mytheresa/go-configurable-catalog/app/configurable"
	"github.com/mytheresa/go-configurable-catalog/models"
	"go.uber.org/zap"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Product struct {
	SKU      string   `json:"sku"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
}

type ProductDetail struct {
	Product
	Attributes models.AttributeValues   `json:"attributes"`
	Variants   *configurable.VariantMap `json:"variants,omitempty"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
}

type CatalogHandler struct {
	repo     ProductProvider
	variants configurable.VariantSource
	logger   *zap.SugaredLogger
}

func NewCatalogHandler(r ProductProvider, variants configurable.VariantSource, logger *zap.SugaredLogger) *CatalogHandler {
	return &CatalogHandler{
		repo:     r,
		variants: variants,
		logger:   logger,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			limit = min(max(l, 1), 100)
		}
	}

	// Parse filters
	filters := models.ProductFilters{
		CategoryCode: r.URL.Query().Get("category"),
		TypeID:       r.URL.Query().Get("type"),
	}

	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		h.logger.Errorw("failed to get products", "error", err)
		api.ErrorResponse(w, api.StatusFor(err), "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i := range res {
		products[i] = toProduct(&res[i])
	}

	api.OKResponse(w, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")

	product, err := h.repo.GetBySKU(r.Context(), sku)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			api.ErrorResponse(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Errorw("failed to retrieve product", "sku", sku, "error", err)
		api.ErrorResponse(w, api.StatusFor(err), "Failed to retrieve product")
		return
	}

	attributes := product.Data.Data()
	if attributes == nil {
		attributes = models.AttributeValues{}
	}
	response := ProductDetail{
		Product:    toProduct(product),
		Attributes: attributes,
	}

	if product.IsConfigurable() {
		variants, err := h.variants.BuildVariantMap(r.Context(), product)
		if err != nil {
			h.logger.Errorw("failed to build variants", "sku", sku, "error", err)
			api.ErrorResponse(w, api.StatusFor(err), "Failed to retrieve product")
			return
		}
		response.Variants = &variants
	}

	api.OKResponse(w, response)
}

func toProduct(p *models.Product) Product {
	return Product{
		SKU:   p.SKU,
		Name:  p.Name,
		Type:  p.TypeID,
		Price: p.Price.InexactFloat64(),
		Category: Category{
			Code: p.Category.Code,
			Name: p.Category.Name,
		},
	}
}
