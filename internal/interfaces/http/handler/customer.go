package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/openbooks/backend/internal/application/billing"
	"github.com/openbooks/backend/internal/domain/ledger"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customers *billing.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *billing.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// AddressRequest carries a postal address in request bodies
type AddressRequest struct {
	Attention string `json:"attention" binding:"max=255"`
	Country   string `json:"country" binding:"max=100"`
	Street1   string `json:"street1" binding:"max=255"`
	Street2   string `json:"street2" binding:"max=255"`
	City      string `json:"city" binding:"max=100"`
	State     string `json:"state" binding:"max=100"`
	PinCode   string `json:"pin_code" binding:"max=20"`
	Phone     string `json:"phone" binding:"max=50"`
}

func (r *AddressRequest) toAddress() *ledger.Address {
	if r == nil {
		return nil
	}
	return &ledger.Address{
		Attention: r.Attention,
		Country:   r.Country,
		Street1:   r.Street1,
		Street2:   r.Street2,
		City:      r.City,
		State:     r.State,
		PinCode:   r.PinCode,
		Phone:     r.Phone,
	}
}

// CreateCustomerRequest is the request body for creating a customer
type CreateCustomerRequest struct {
	Type           string          `json:"customer_type" binding:"omitempty,oneof=business individual"`
	Salutation     string          `json:"salutation" binding:"max=20"`
	FirstName      string          `json:"first_name" binding:"max=100"`
	LastName       string          `json:"last_name" binding:"max=100"`
	CompanyName    string          `json:"company_name" binding:"max=255"`
	DisplayName    string          `json:"display_name" binding:"required,min=1,max=255"`
	Email          string          `json:"email" binding:"required,email,max=255"`
	WorkPhone      string          `json:"work_phone" binding:"max=50"`
	Mobile         string          `json:"mobile" binding:"max=50"`
	Currency       string          `json:"currency" binding:"max=10"`
	OpeningBalance *float64        `json:"opening_balance"`
	PaymentTerms   string          `json:"payment_terms" binding:"max=100"`
	Billing        *AddressRequest `json:"billing_address"`
	Shipping       *AddressRequest `json:"shipping_address"`
	Remarks        string          `json:"remarks"`
}

// UpdateCustomerRequest is the request body for updating a customer
type UpdateCustomerRequest struct {
	DisplayName string          `json:"display_name" binding:"required,min=1,max=255"`
	CompanyName string          `json:"company_name" binding:"max=255"`
	Email       string          `json:"email" binding:"required,email,max=255"`
	Salutation  *string         `json:"salutation" binding:"omitempty,max=20"`
	FirstName   *string         `json:"first_name" binding:"omitempty,max=100"`
	LastName    *string         `json:"last_name" binding:"omitempty,max=100"`
	WorkPhone   *string         `json:"work_phone" binding:"omitempty,max=50"`
	Mobile      *string         `json:"mobile" binding:"omitempty,max=50"`
	Billing     *AddressRequest `json:"billing_address"`
	Shipping    *AddressRequest `json:"shipping_address"`
	Remarks     *string         `json:"remarks"`
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customers.Create(c.Request.Context(), billing.CreateCustomerRequest{
		Type:           req.Type,
		Salutation:     req.Salutation,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		CompanyName:    req.CompanyName,
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		WorkPhone:      req.WorkPhone,
		Mobile:         req.Mobile,
		Currency:       req.Currency,
		OpeningBalance: toDecimalPtr(req.OpeningBalance),
		PaymentTerms:   req.PaymentTerms,
		Billing:        req.Billing.toAddress(),
		Shipping:       req.Shipping.toAddress(),
		Remarks:        req.Remarks,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, total, err := h.customers.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customers.Update(c.Request.Context(), id, billing.UpdateCustomerRequest{
		DisplayName: req.DisplayName,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Salutation:  req.Salutation,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		WorkPhone:   req.WorkPhone,
		Mobile:      req.Mobile,
		Billing:     req.Billing.toAddress(),
		Shipping:    req.Shipping.toAddress(),
		Remarks:     req.Remarks,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}
