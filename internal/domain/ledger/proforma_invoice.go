package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProformaStatus represents the lifecycle state of a proforma invoice
type ProformaStatus string

const (
	ProformaStatusDraft     ProformaStatus = "draft"
	ProformaStatusSent      ProformaStatus = "sent"
	ProformaStatusAccepted  ProformaStatus = "accepted"
	ProformaStatusCancelled ProformaStatus = "cancelled"
)

// ProformaInvoice represents a preliminary invoice sent before the final
// one. Proformas never feed report figures.
type ProformaInvoice struct {
	shared.BaseAggregateRoot
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProformaNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Date           time.Time       `gorm:"type:date;not null"`
	DueDate        time.Time       `gorm:"type:date;not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         ProformaStatus  `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProformaInvoice) TableName() string {
	return "proforma_invoices"
}

// NewProformaInvoice creates a new proforma invoice with required fields
func NewProformaInvoice(customerID uuid.UUID, proformaNumber string, date, dueDate time.Time, amount decimal.Decimal) (*ProformaInvoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Proforma invoice requires a customer")
	}
	if err := validateDocumentNumber(proformaNumber); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Proforma amount cannot be negative")
	}
	if dueDate.Before(date) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the proforma date")
	}

	return &ProformaInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ProformaNumber:    proformaNumber,
		Date:              DayOf(date),
		DueDate:           DayOf(dueDate),
		Amount:            amount,
		Status:            ProformaStatusDraft,
	}, nil
}

// Transition moves the proforma invoice to a new status
func (p *ProformaInvoice) Transition(status ProformaStatus) error {
	switch status {
	case ProformaStatusDraft, ProformaStatusSent, ProformaStatusAccepted, ProformaStatusCancelled:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid proforma status")
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Update changes the proforma's dates and amount
func (p *ProformaInvoice) Update(date, dueDate time.Time, amount decimal.Decimal, notes string) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Proforma amount cannot be negative")
	}
	if dueDate.Before(date) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the proforma date")
	}

	p.Date = DayOf(date)
	p.DueDate = DayOf(dueDate)
	p.Amount = amount
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
