package handlers

import (
	"github.com/gin-gonic/gin"

	"varotra/internal/domain/catalogs/product"
	"varotra/internal/infrastructure/http/v1/dto"
)

// ProductHandler extends the generic catalog handler with stock and
// category endpoints.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(item *product.Product) any {
			return dto.FromProduct(item)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// List handles GET /products - overrides the generic list to support
// category filtering.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ProductListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.ListFiltered(ctx, query.ToProductFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, h.mapToDTO))
}

// LowStock handles GET /products/low-stock - products at or below
// their minimum stock.
func (h *ProductHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.FindLowStock(ctx, query.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, h.mapToDTO))
}

// Categories handles GET /products/categories - distinct categories in use.
func (h *ProductHandler) Categories(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"categories": categories})
}
