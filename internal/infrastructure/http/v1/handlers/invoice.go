package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"varotra/internal/core/apperror"
	"varotra/internal/domain/documents/invoice"
	"varotra/internal/domain/invoicedoc"
	"varotra/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler provides HTTP handlers for invoices, including the
// printable document endpoint.
type InvoiceHandler struct {
	*BaseHandler
	service   *invoice.Service
	builder   *invoicedoc.Builder
	renderers map[string]invoicedoc.Renderer
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service, builder *invoicedoc.Builder) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
		builder:     builder,
		renderers: map[string]invoicedoc.Renderer{
			"pdf":  invoicedoc.NewPDFRenderer(),
			"text": invoicedoc.NewTextRenderer(),
		},
	}
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseID(c)
	if !ok {
		return
	}

	inv, err := h.service.GetByID(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv))
}

// GetByNumber handles GET /invoices/number/:number.
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	ctx := c.Request.Context()

	inv, err := h.service.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv))
}

// GetBySale handles GET /sales/:id/invoice.
func (h *InvoiceHandler) GetBySale(c *gin.Context) {
	ctx := c.Request.Context()

	saleID, ok := h.ParseID(c)
	if !ok {
		return
	}

	inv, err := h.service.GetBySaleID(ctx, saleID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv))
}

// List handles GET /invoices - list invoices with filtering.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var query dto.InvoiceListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.service.List(ctx, query.ToInvoiceFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, func(inv *invoice.Invoice) any {
		return dto.FromInvoice(inv)
	}))
}

// SetStatus handles POST /invoices/:id/status - change payment status.
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.SetInvoiceStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.SetStatus(ctx, invoiceID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv))
}

// MarkOverdue handles POST /invoices/mark-overdue - flag unpaid
// invoices past their due date.
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	ctx := c.Request.Context()

	count, err := h.service.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.MarkOverdueResponse{Transitioned: count})
}

// Document handles GET /invoices/:id/document?format=pdf|text.
// Renders the printable invoice document inline.
func (h *InvoiceHandler) Document(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, ok := h.ParseID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "pdf")
	renderer, ok := h.renderers[format]
	if !ok {
		h.Error(c, apperror.NewInvalidInput("unsupported format").WithDetail("format", format))
		return
	}

	doc, err := h.builder.Build(ctx, invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	body, err := renderer.Render(doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="invoice_`+doc.Number+`.`+renderer.FileExt()+`"`)
	c.Data(200, renderer.ContentType(), body)
}
