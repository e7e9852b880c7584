package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/application/billing"
)

// QuoteHandler handles quote API endpoints
type QuoteHandler struct {
	BaseHandler
	quotes *billing.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quotes *billing.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// CreateQuoteRequest is the request body for creating a quote
type CreateQuoteRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" binding:"required"`
	QuoteNumber string    `json:"quote_number" binding:"required,min=1,max=100"`
	Date        string    `json:"date" binding:"required,datetime=2006-01-02"`
	ValidUntil  string    `json:"valid_until" binding:"required,datetime=2006-01-02"`
	Amount      float64   `json:"amount" binding:"gte=0"`
	Notes       string    `json:"notes"`
}

// UpdateQuoteRequest is the request body for updating a quote
type UpdateQuoteRequest struct {
	Date       string  `json:"date" binding:"required,datetime=2006-01-02"`
	ValidUntil string  `json:"valid_until" binding:"required,datetime=2006-01-02"`
	Amount     float64 `json:"amount" binding:"gte=0"`
	Notes      string  `json:"notes"`
	Status     string  `json:"status" binding:"omitempty,oneof=draft sent accepted rejected expired"`
}

// Create handles POST /quotes
func (h *QuoteHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.quotes.Create(c.Request.Context(), billing.CreateQuoteRequest{
		CustomerID:  req.CustomerID,
		QuoteNumber: req.QuoteNumber,
		Date:        parseDate(req.Date),
		ValidUntil:  parseDate(req.ValidUntil),
		Amount:      toDecimal(req.Amount),
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /quotes/:id
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	resp, err := h.quotes.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /quotes
func (h *QuoteHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotes, total, err := h.quotes.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, quotes, total, filter.Page, filter.PageSize)
}

// Update handles PUT /quotes/:id
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	var req UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.quotes.Update(c.Request.Context(), id, billing.UpdateQuoteRequest{
		Date:       parseDate(req.Date),
		ValidUntil: parseDate(req.ValidUntil),
		Amount:     toDecimal(req.Amount),
		Notes:      req.Notes,
		Status:     req.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /quotes/:id
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quotes.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers quote routes
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.Create)
		quotes.GET("", h.List)
		quotes.GET("/:id", h.Get)
		quotes.PUT("/:id", h.Update)
		quotes.DELETE("/:id", h.Delete)
	}
}
