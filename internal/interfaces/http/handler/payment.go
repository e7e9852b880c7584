package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/application/billing"
)

// PaymentHandler handles payment API endpoints
type PaymentHandler struct {
	BaseHandler
	payments *billing.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *billing.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreatePaymentRequest is the request body for recording a payment
type CreatePaymentRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
	Amount    float64   `json:"amount" binding:"required,gt=0"`
	Date      string    `json:"date" binding:"required,datetime=2006-01-02"`
	Method    string    `json:"method" binding:"max=50"`
	Notes     string    `json:"notes"`
}

// UpdatePaymentRequest is the request body for updating a payment
type UpdatePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Date   string  `json:"date" binding:"required,datetime=2006-01-02"`
	Method string  `json:"method" binding:"max=50"`
	Notes  string  `json:"notes"`
}

// Create handles POST /payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.payments.Create(c.Request.Context(), billing.CreatePaymentRequest{
		InvoiceID: req.InvoiceID,
		Amount:    toDecimal(req.Amount),
		Date:      parseDate(req.Date),
		Method:    req.Method,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	resp, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /payments, optionally filtered by invoice_id
func (h *PaymentHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	invoiceID, ok := bindUUIDQuery(c, "invoice_id")
	if !ok {
		h.BadRequest(c, "invoice_id must be a valid UUID")
		return
	}

	payments, total, err := h.payments.List(c.Request.Context(), invoiceID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// Update handles PUT /payments/:id
func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.payments.Update(c.Request.Context(), id, billing.UpdatePaymentRequest{
		Amount: toDecimal(req.Amount),
		Date:   parseDate(req.Date),
		Method: req.Method,
		Notes:  req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Create)
		payments.GET("", h.List)
		payments.GET("/:id", h.Get)
		payments.PUT("/:id", h.Update)
		payments.DELETE("/:id", h.Delete)
	}
}
