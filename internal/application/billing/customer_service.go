package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo ledger.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo ledger.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerRequest carries the fields for creating a customer
type CreateCustomerRequest struct {
	Type           string
	Salutation     string
	FirstName      string
	LastName       string
	CompanyName    string
	DisplayName    string
	Email          string
	WorkPhone      string
	Mobile         string
	Currency       string
	OpeningBalance *decimal.Decimal
	PaymentTerms   string
	Billing        *ledger.Address
	Shipping       *ledger.Address
	Remarks        string
}

// UpdateCustomerRequest carries the fields for updating a customer
type UpdateCustomerRequest struct {
	DisplayName string
	CompanyName string
	Email       string
	Salutation  *string
	FirstName   *string
	LastName    *string
	WorkPhone   *string
	Mobile      *string
	Billing     *ledger.Address
	Shipping    *ledger.Address
	Remarks     *string
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             string         `json:"id"`
	Type           string         `json:"customer_type"`
	Salutation     string         `json:"salutation"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	CompanyName    string         `json:"company_name"`
	DisplayName    string         `json:"display_name"`
	Email          string         `json:"email"`
	WorkPhone      string         `json:"work_phone"`
	Mobile         string         `json:"mobile"`
	Currency       string         `json:"currency"`
	OpeningBalance float64        `json:"opening_balance"`
	PaymentTerms   string         `json:"payment_terms"`
	Billing        ledger.Address `json:"billing_address"`
	Shipping       ledger.Address `json:"shipping_address"`
	Remarks        string         `json:"remarks"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

// ToCustomerResponse maps a customer entity to its API representation
func ToCustomerResponse(c *ledger.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID.String(),
		Type:           string(c.Type),
		Salutation:     c.Salutation,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		CompanyName:    c.CompanyName,
		DisplayName:    c.DisplayName,
		Email:          c.Email,
		WorkPhone:      c.WorkPhone,
		Mobile:         c.Mobile,
		Currency:       c.Currency,
		OpeningBalance: c.OpeningBalance.InexactFloat64(),
		PaymentTerms:   c.PaymentTerms,
		Billing:        c.BillingAddress,
		Shipping:       c.ShippingAddress,
		Remarks:        c.Remarks,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      c.UpdatedAt.Format(time.RFC3339),
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
	}

	customerType := ledger.CustomerType(req.Type)
	if customerType == "" {
		customerType = ledger.CustomerTypeBusiness
	}
	customer, err := ledger.NewCustomer(customerType, req.DisplayName, req.Email)
	if err != nil {
		return nil, err
	}

	customer.CompanyName = req.CompanyName
	customer.Remarks = req.Remarks
	customer.SetContact(req.Salutation, req.FirstName, req.LastName, req.WorkPhone, req.Mobile)

	openingBalance := decimal.Zero
	if req.OpeningBalance != nil {
		openingBalance = *req.OpeningBalance
	}
	if err := customer.SetTerms(req.Currency, openingBalance, req.PaymentTerms); err != nil {
		return nil, err
	}
	if req.Billing != nil {
		customer.SetBillingAddress(*req.Billing)
	}
	if req.Shipping != nil {
		customer.SetShippingAddress(*req.Shipping)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with pagination
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	normalizeFilter(&filter)

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}

// Update updates an existing customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != customer.Email {
		exists, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
		}
	}

	if err := customer.Update(req.DisplayName, req.CompanyName, req.Email); err != nil {
		return nil, err
	}

	if req.Salutation != nil || req.FirstName != nil || req.LastName != nil || req.WorkPhone != nil || req.Mobile != nil {
		customer.SetContact(
			stringOr(req.Salutation, customer.Salutation),
			stringOr(req.FirstName, customer.FirstName),
			stringOr(req.LastName, customer.LastName),
			stringOr(req.WorkPhone, customer.WorkPhone),
			stringOr(req.Mobile, customer.Mobile),
		)
	}
	if req.Billing != nil {
		customer.SetBillingAddress(*req.Billing)
	}
	if req.Shipping != nil {
		customer.SetShippingAddress(*req.Shipping)
	}
	if req.Remarks != nil {
		customer.Remarks = *req.Remarks
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

func normalizeFilter(filter *shared.Filter) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}
}

func stringOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
