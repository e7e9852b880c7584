package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/openbooks/backend/internal/application/billing"
)

// VendorHandler handles vendor API endpoints
type VendorHandler struct {
	BaseHandler
	vendors *billing.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendors *billing.VendorService) *VendorHandler {
	return &VendorHandler{vendors: vendors}
}

// VendorRequest is the request body for creating or updating a vendor
type VendorRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Email       string `json:"email" binding:"required,email,max=255"`
	CompanyName string `json:"company_name" binding:"max=255"`
	Address     string `json:"address" binding:"max=500"`
	Phone       string `json:"phone" binding:"max=50"`
}

func (r VendorRequest) toService() billing.VendorRequest {
	return billing.VendorRequest{
		Name:        r.Name,
		Email:       r.Email,
		CompanyName: r.CompanyName,
		Address:     r.Address,
		Phone:       r.Phone,
	}
}

// Create handles POST /vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.vendors.Create(c.Request.Context(), req.toService())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	resp, err := h.vendors.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /vendors
func (h *VendorHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	vendors, total, err := h.vendors.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, vendors, total, filter.Page, filter.PageSize)
}

// Update handles PUT /vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.vendors.Update(c.Request.Context(), id, req.toService())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	if err := h.vendors.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers vendor routes
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.Create)
		vendors.GET("", h.List)
		vendors.GET("/:id", h.Get)
		vendors.PUT("/:id", h.Update)
		vendors.DELETE("/:id", h.Delete)
	}
}
