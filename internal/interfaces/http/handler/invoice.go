package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/application/billing"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoices *billing.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *billing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// CreateInvoiceRequest is the request body for creating an invoice
type CreateInvoiceRequest struct {
	CustomerID    uuid.UUID `json:"customer_id" binding:"required"`
	InvoiceNumber string    `json:"invoice_number" binding:"required,min=1,max=100"`
	OrderNumber   string    `json:"order_number" binding:"max=100"`
	InvoiceDate   string    `json:"invoice_date" binding:"required,datetime=2006-01-02"`
	DueDate       string    `json:"due_date" binding:"required,datetime=2006-01-02"`
	TotalAmount   float64   `json:"total_amount" binding:"gte=0"`
	Notes         string    `json:"notes"`
}

// UpdateInvoiceRequest is the request body for updating an invoice
type UpdateInvoiceRequest struct {
	InvoiceDate string  `json:"invoice_date" binding:"required,datetime=2006-01-02"`
	DueDate     string  `json:"due_date" binding:"required,datetime=2006-01-02"`
	TotalAmount float64 `json:"total_amount" binding:"gte=0"`
	Notes       string  `json:"notes"`
	Status      string  `json:"status" binding:"omitempty,oneof=draft sent paid cancelled"`
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoices.Create(c.Request.Context(), billing.CreateInvoiceRequest{
		CustomerID:    req.CustomerID,
		InvoiceNumber: req.InvoiceNumber,
		OrderNumber:   req.OrderNumber,
		InvoiceDate:   parseDate(req.InvoiceDate),
		DueDate:       parseDate(req.DueDate),
		TotalAmount:   toDecimal(req.TotalAmount),
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /invoices, optionally filtered by customer_id
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	customerID, ok := bindUUIDQuery(c, "customer_id")
	if !ok {
		h.BadRequest(c, "customer_id must be a valid UUID")
		return
	}

	invoices, total, err := h.invoices.List(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.invoices.Update(c.Request.Context(), id, billing.UpdateInvoiceRequest{
		InvoiceDate: parseDate(req.InvoiceDate),
		DueDate:     parseDate(req.DueDate),
		TotalAmount: toDecimal(req.TotalAmount),
		Notes:       req.Notes,
		Status:      req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.Get)
		invoices.PUT("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
	}
}
