package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/application/billing"
)

// ProformaHandler handles proforma invoice API endpoints
type ProformaHandler struct {
	BaseHandler
	proformas *billing.ProformaService
}

// NewProformaHandler creates a new ProformaHandler
func NewProformaHandler(proformas *billing.ProformaService) *ProformaHandler {
	return &ProformaHandler{proformas: proformas}
}

// CreateProformaRequest is the request body for creating a proforma invoice
type CreateProformaRequest struct {
	CustomerID     uuid.UUID `json:"customer_id" binding:"required"`
	ProformaNumber string    `json:"proforma_number" binding:"required,min=1,max=100"`
	Date           string    `json:"date" binding:"required,datetime=2006-01-02"`
	DueDate        string    `json:"due_date" binding:"required,datetime=2006-01-02"`
	Amount         float64   `json:"amount" binding:"gte=0"`
	Notes          string    `json:"notes"`
}

// UpdateProformaRequest is the request body for updating a proforma invoice
type UpdateProformaRequest struct {
	Date    string  `json:"date" binding:"required,datetime=2006-01-02"`
	DueDate string  `json:"due_date" binding:"required,datetime=2006-01-02"`
	Amount  float64 `json:"amount" binding:"gte=0"`
	Notes   string  `json:"notes"`
	Status  string  `json:"status" binding:"omitempty,oneof=draft sent accepted cancelled"`
}

// Create handles POST /proforma-invoices
func (h *ProformaHandler) Create(c *gin.Context) {
	var req CreateProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.proformas.Create(c.Request.Context(), billing.CreateProformaRequest{
		CustomerID:     req.CustomerID,
		ProformaNumber: req.ProformaNumber,
		Date:           parseDate(req.Date),
		DueDate:        parseDate(req.DueDate),
		Amount:         toDecimal(req.Amount),
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /proforma-invoices/:id
func (h *ProformaHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid proforma invoice ID")
		return
	}

	resp, err := h.proformas.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /proforma-invoices
func (h *ProformaHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	proformas, total, err := h.proformas.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, proformas, total, filter.Page, filter.PageSize)
}

// Update handles PUT /proforma-invoices/:id
func (h *ProformaHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid proforma invoice ID")
		return
	}

	var req UpdateProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.proformas.Update(c.Request.Context(), id, billing.UpdateProformaRequest{
		Date:    parseDate(req.Date),
		DueDate: parseDate(req.DueDate),
		Amount:  toDecimal(req.Amount),
		Notes:   req.Notes,
		Status:  req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /proforma-invoices/:id
func (h *ProformaHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid proforma invoice ID")
		return
	}

	if err := h.proformas.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers proforma invoice routes
func (h *ProformaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	proformas := rg.Group("/proforma-invoices")
	{
		proformas.POST("", h.Create)
		proformas.GET("", h.List)
		proformas.GET("/:id", h.Get)
		proformas.PUT("/:id", h.Update)
		proformas.DELETE("/:id", h.Delete)
	}
}
