package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/application/billing"
)

// AdjustmentHandler handles inventory adjustment API endpoints.
// Adjustments are immutable once recorded; there is no update route.
type AdjustmentHandler struct {
	BaseHandler
	adjustments *billing.AdjustmentService
}

// NewAdjustmentHandler creates a new AdjustmentHandler
func NewAdjustmentHandler(adjustments *billing.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{adjustments: adjustments}
}

// CreateAdjustmentRequest is the request body for recording an adjustment
type CreateAdjustmentRequest struct {
	ItemID           uuid.UUID `json:"item_id" binding:"required"`
	AdjustmentNumber string    `json:"adjustment_number" binding:"required,min=1,max=100"`
	Date             string    `json:"date" binding:"required,datetime=2006-01-02"`
	Quantity         int       `json:"quantity" binding:"required"`
	Reason           string    `json:"reason" binding:"max=255"`
	Notes            string    `json:"notes"`
}

// Create handles POST /inventory-adjustments
func (h *AdjustmentHandler) Create(c *gin.Context) {
	var req CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.adjustments.Create(c.Request.Context(), billing.CreateAdjustmentRequest{
		ItemID:           req.ItemID,
		AdjustmentNumber: req.AdjustmentNumber,
		Date:             parseDate(req.Date),
		Quantity:         req.Quantity,
		Reason:           req.Reason,
		Notes:            req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /inventory-adjustments/:id
func (h *AdjustmentHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	resp, err := h.adjustments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /inventory-adjustments, optionally filtered by item_id
func (h *AdjustmentHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	itemID, ok := bindUUIDQuery(c, "item_id")
	if !ok {
		h.BadRequest(c, "item_id must be a valid UUID")
		return
	}

	adjustments, total, err := h.adjustments.List(c.Request.Context(), itemID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, adjustments, total, filter.Page, filter.PageSize)
}

// Delete handles DELETE /inventory-adjustments/:id
func (h *AdjustmentHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	if err := h.adjustments.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers inventory adjustment routes
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	adjustments := rg.Group("/inventory-adjustments")
	{
		adjustments.POST("", h.Create)
		adjustments.GET("", h.List)
		adjustments.GET("/:id", h.Get)
		adjustments.DELETE("/:id", h.Delete)
	}
}
