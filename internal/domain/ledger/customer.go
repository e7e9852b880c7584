package ledger

import (
	"strings"
	"time"

	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerType distinguishes business and individual customers
type CustomerType string

const (
	CustomerTypeBusiness   CustomerType = "business"
	CustomerTypeIndividual CustomerType = "individual"
)

// Address is a postal address attached to a customer record
type Address struct {
	Attention string `gorm:"type:varchar(255)"`
	Country   string `gorm:"type:varchar(100)"`
	Street1   string `gorm:"type:varchar(255)"`
	Street2   string `gorm:"type:varchar(255)"`
	City      string `gorm:"type:varchar(100)"`
	State     string `gorm:"type:varchar(100)"`
	PinCode   string `gorm:"type:varchar(20)"`
	Phone     string `gorm:"type:varchar(50)"`
}

// Customer represents a party that receives quotes, invoices, and challans.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.BaseAggregateRoot
	Type            CustomerType    `gorm:"type:varchar(20);not null;default:'business'"`
	Salutation      string          `gorm:"type:varchar(20)"`
	FirstName       string          `gorm:"type:varchar(100)"`
	LastName        string          `gorm:"type:varchar(100)"`
	CompanyName     string          `gorm:"type:varchar(255)"`
	DisplayName     string          `gorm:"type:varchar(255);not null"`
	Email           string          `gorm:"type:varchar(255);uniqueIndex"`
	WorkPhone       string          `gorm:"type:varchar(50)"`
	Mobile          string          `gorm:"type:varchar(50)"`
	PAN             string          `gorm:"type:varchar(20)"`
	Currency        string          `gorm:"type:varchar(10);default:'INR'"`
	OpeningBalance  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentTerms    string          `gorm:"type:varchar(50)"`
	BillingAddress  Address         `gorm:"embedded;embeddedPrefix:billing_"`
	ShippingAddress Address         `gorm:"embedded;embeddedPrefix:shipping_"`
	Remarks         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(customerType CustomerType, displayName, email string) (*Customer, error) {
	if err := validateCustomerType(customerType); err != nil {
		return nil, err
	}
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              customerType,
		DisplayName:       displayName,
		Email:             email,
		Currency:          "INR",
		OpeningBalance:    decimal.Zero,
	}, nil
}

// Update updates the customer's identifying information
func (c *Customer) Update(displayName, companyName, email string) error {
	if err := validateDisplayName(displayName); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	c.DisplayName = displayName
	c.CompanyName = companyName
	c.Email = email
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the customer's contact details
func (c *Customer) SetContact(salutation, firstName, lastName, workPhone, mobile string) {
	c.Salutation = salutation
	c.FirstName = firstName
	c.LastName = lastName
	c.WorkPhone = workPhone
	c.Mobile = mobile
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetBillingAddress sets the billing address
func (c *Customer) SetBillingAddress(addr Address) {
	c.BillingAddress = addr
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetShippingAddress sets the shipping address
func (c *Customer) SetShippingAddress(addr Address) {
	c.ShippingAddress = addr
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetTerms sets currency, opening balance, and payment terms
func (c *Customer) SetTerms(currency string, openingBalance decimal.Decimal, paymentTerms string) error {
	if currency != "" && len(currency) > 10 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency code cannot exceed 10 characters")
	}

	if currency != "" {
		c.Currency = currency
	}
	c.OpeningBalance = openingBalance
	c.PaymentTerms = paymentTerms
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsBusiness returns true for business customers
func (c *Customer) IsBusiness() bool {
	return c.Type == CustomerTypeBusiness
}

func validateCustomerType(t CustomerType) error {
	switch t {
	case CustomerTypeBusiness, CustomerTypeIndividual:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid customer type")
	}
}

func validateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot exceed 255 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}
