package ledger

import (
	"time"

	"github.com/openbooks/backend/internal/domain/shared"
)

// Vendor represents a supplier that issues bills to the business.
type Vendor struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(255);not null"`
	Email       string `gorm:"type:varchar(255);uniqueIndex"`
	CompanyName string `gorm:"type:varchar(255)"`
	Address     string `gorm:"type:text"`
	Phone       string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor with required fields
func NewVendor(name, email string) (*Vendor, error) {
	if err := validateVendorName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Vendor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
	}, nil
}

// Update updates the vendor's details
func (v *Vendor) Update(name, email, companyName, address, phone string) error {
	if err := validateVendorName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	v.Name = name
	v.Email = email
	v.CompanyName = companyName
	v.Address = address
	v.Phone = phone
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

func validateVendorName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 255 characters")
	}
	return nil
}
