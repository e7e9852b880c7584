package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/application/billing"
)

// BillHandler handles vendor bill API endpoints
type BillHandler struct {
	BaseHandler
	bills *billing.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills *billing.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

// CreateBillRequest is the request body for creating a bill
type CreateBillRequest struct {
	VendorID    uuid.UUID `json:"vendor_id" binding:"required"`
	BillNumber  string    `json:"bill_number" binding:"required,min=1,max=100"`
	BillDate    string    `json:"bill_date" binding:"required,datetime=2006-01-02"`
	DueDate     string    `json:"due_date" binding:"required,datetime=2006-01-02"`
	TotalAmount float64   `json:"total_amount" binding:"gte=0"`
	Notes       string    `json:"notes"`
}

// UpdateBillRequest is the request body for updating a bill
type UpdateBillRequest struct {
	BillDate    string  `json:"bill_date" binding:"required,datetime=2006-01-02"`
	DueDate     string  `json:"due_date" binding:"required,datetime=2006-01-02"`
	TotalAmount float64 `json:"total_amount" binding:"gte=0"`
	Notes       string  `json:"notes"`
	Status      string  `json:"status" binding:"omitempty,oneof=draft open paid cancelled"`
}

// Create handles POST /bills
func (h *BillHandler) Create(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bills.Create(c.Request.Context(), billing.CreateBillRequest{
		VendorID:    req.VendorID,
		BillNumber:  req.BillNumber,
		BillDate:    parseDate(req.BillDate),
		DueDate:     parseDate(req.DueDate),
		TotalAmount: toDecimal(req.TotalAmount),
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	resp, err := h.bills.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /bills, optionally filtered by vendor_id
func (h *BillHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	vendorID, ok := bindUUIDQuery(c, "vendor_id")
	if !ok {
		h.BadRequest(c, "vendor_id must be a valid UUID")
		return
	}

	bills, total, err := h.bills.List(c.Request.Context(), vendorID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, bills, total, filter.Page, filter.PageSize)
}

// Update handles PUT /bills/:id
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bills.Update(c.Request.Context(), id, billing.UpdateBillRequest{
		BillDate:    parseDate(req.BillDate),
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

// Delete handles DELETE /bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.bills.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers bill routes
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.List)
		bills.GET("/:id", h.Get)
		bills.PUT("/:id", h.Update)
		bills.DELETE("/:id", h.Delete)
	}
}
