package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/application/billing"
)

// ChallanHandler handles delivery challan API endpoints
type ChallanHandler struct {
	BaseHandler
	challans *billing.ChallanService
}

// NewChallanHandler creates a new ChallanHandler
func NewChallanHandler(challans *billing.ChallanService) *ChallanHandler {
	return &ChallanHandler{challans: challans}
}

// CreateChallanRequest is the request body for creating a delivery challan
type CreateChallanRequest struct {
	CustomerID    uuid.UUID `json:"customer_id" binding:"required"`
	ChallanNumber string    `json:"challan_number" binding:"required,min=1,max=100"`
	Date          string    `json:"date" binding:"required,datetime=2006-01-02"`
	DeliveryDate  string    `json:"delivery_date" binding:"required,datetime=2006-01-02"`
	Notes         string    `json:"notes"`
}

// UpdateChallanRequest is the request body for updating a delivery challan.
// Challans only move forward: the status transition is the update.
type UpdateChallanRequest struct {
	Status string  `json:"status" binding:"required,oneof=delivered cancelled"`
	Notes  *string `json:"notes"`
}

// Create handles POST /delivery-challans
func (h *ChallanHandler) Create(c *gin.Context) {
	var req CreateChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.challans.Create(c.Request.Context(), billing.CreateChallanRequest{
		CustomerID:    req.CustomerID,
		ChallanNumber: req.ChallanNumber,
		Date:          parseDate(req.Date),
		DeliveryDate:  parseDate(req.DeliveryDate),
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /delivery-challans/:id
func (h *ChallanHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery challan ID")
		return
	}

	resp, err := h.challans.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /delivery-challans
func (h *ChallanHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	challans, total, err := h.challans.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, challans, total, filter.Page, filter.PageSize)
}

// Update handles PUT /delivery-challans/:id
func (h *ChallanHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery challan ID")
		return
	}

	var req UpdateChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.challans.Update(c.Request.Context(), id, billing.UpdateChallanRequest{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /delivery-challans/:id
func (h *ChallanHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery challan ID")
		return
	}

	if err := h.challans.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers delivery challan routes
func (h *ChallanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	challans := rg.Group("/delivery-challans")
	{
		challans.POST("", h.Create)
		challans.GET("", h.List)
		challans.GET("/:id", h.Get)
		challans.PUT("/:id", h.Update)
		challans.DELETE("/:id", h.Delete)
	}
}
