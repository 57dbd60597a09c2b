package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"varotra/internal/domain/documents/sale"
	"varotra/internal/infrastructure/http/v1/dto"
)

// SaleHandler provides HTTP handlers for sale documents.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	return &SaleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /sales - record a sale.
// Stock is decremented and the invoice issued in the same transaction.
func (h *SaleHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, inv, err := h.service.CreateSale(ctx, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateSaleResponse{
		Sale:    dto.FromSale(doc),
		Invoice: dto.FromInvoice(inv),
	})
}

// Get handles GET /sales/:id - get a sale with lines.
func (h *SaleHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSale(doc))
}

// GetByNumber handles GET /sales/number/:number.
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	ctx := c.Request.Context()

	doc, err := h.service.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSale(doc))
}

// List handles GET /sales - list sales with filtering.
func (h *SaleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.SaleListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.List(ctx, query.ToSaleFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, func(doc *sale.Sale) any {
		return dto.FromSale(doc)
	}))
}
