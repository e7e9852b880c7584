package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice represents an amount owed to the business by a customer.
// Its invoice date drives the revenue side of every report.
type Invoice struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	OrderNumber   string          `gorm:"type:varchar(50)"`
	InvoiceDate   time.Time       `gorm:"type:date;not null;index"`
	DueDate       time.Time       `gorm:"type:date;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice and records the creation event
func NewInvoice(customerID uuid.UUID, invoiceNumber string, invoiceDate, dueDate time.Time, totalAmount decimal.Decimal) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Invoice requires a customer")
	}
	if err := validateDocumentNumber(invoiceNumber); err != nil {
		return nil, err
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}
	if dueDate.Before(invoiceDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the invoice date")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		InvoiceNumber:     invoiceNumber,
		InvoiceDate:       DayOf(invoiceDate),
		DueDate:           DayOf(dueDate),
		TotalAmount:       totalAmount,
		Status:            InvoiceStatusDraft,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// Update changes the invoice's date, due date, and total, recording an event
func (i *Invoice) Update(invoiceDate, dueDate time.Time, totalAmount decimal.Decimal, notes string) error {
	if totalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}
	if dueDate.Before(invoiceDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the invoice date")
	}

	i.InvoiceDate = DayOf(invoiceDate)
	i.DueDate = DayOf(dueDate)
	i.TotalAmount = totalAmount
	i.Notes = notes
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceUpdatedEvent(i))

	return nil
}

// MarkSent moves a draft invoice to sent
func (i *Invoice) MarkSent() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be sent")
	}
	i.Status = InvoiceStatusSent
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// MarkPaid marks the invoice as fully paid
func (i *Invoice) MarkPaid() error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled invoices cannot be paid")
	}
	i.Status = InvoiceStatusPaid
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Cancel cancels the invoice
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsPaid returns true when the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// DayOf truncates a timestamp to its calendar date in UTC.
// Transaction dates carry no time-of-day component.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validateDocumentNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	return nil
}
