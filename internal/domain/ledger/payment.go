package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment represents money received against an invoice.
// Its date drives the cash side of every report.
type Payment struct {
	shared.BaseAggregateRoot
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date      time.Time       `gorm:"type:date;not null;index"`
	Method    string          `gorm:"type:varchar(50)"`
	Notes     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment and records the creation event
func NewPayment(invoiceID uuid.UUID, amount decimal.Decimal, date time.Time, method string) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Payment requires an invoice")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		Amount:            amount,
		Date:              DayOf(date),
		Method:            method,
	}

	p.AddDomainEvent(NewPaymentCreatedEvent(p))

	return p, nil
}

// Update changes the payment's amount, date, and method, recording an event
func (p *Payment) Update(amount decimal.Decimal, date time.Time, method, notes string) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	p.Amount = amount
	p.Date = DayOf(date)
	p.Method = method
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentUpdatedEvent(p))

	return nil
}
