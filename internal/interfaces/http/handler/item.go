package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/openbooks/backend/internal/application/billing"
)

// ItemHandler handles item API endpoints
type ItemHandler struct {
	BaseHandler
	items *billing.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items *billing.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// CreateItemRequest is the request body for creating an item
type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description string  `json:"description" binding:"max=1000"`
	Price       float64 `json:"price" binding:"gte=0"`
	SKU         string  `json:"sku" binding:"required,min=1,max=100"`
}

// UpdateItemRequest is the request body for updating an item
type UpdateItemRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Description string  `json:"description" binding:"max=1000"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// Create handles POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.items.Create(c.Request.Context(), billing.CreateItemRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       toDecimal(req.Price),
		SKU:         req.SKU,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.items.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /items
func (h *ItemHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update handles PUT /items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.items.Update(c.Request.Context(), id, billing.UpdateItemRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       toDecimal(req.Price),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.Get)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
	}
}
