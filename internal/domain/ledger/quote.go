package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// Quote represents a price offer made to a customer before invoicing.
// Quotes never feed report figures.
type Quote struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuoteNumber string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Date        time.Time       `gorm:"type:date;not null"`
	ValidUntil  time.Time       `gorm:"type:date;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      QuoteStatus     `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote creates a new quote with required fields
func NewQuote(customerID uuid.UUID, quoteNumber string, date, validUntil time.Time, amount decimal.Decimal) (*Quote, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Quote requires a customer")
	}
	if err := validateDocumentNumber(quoteNumber); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Quote amount cannot be negative")
	}
	if validUntil.Before(date) {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Validity cannot precede the quote date")
	}

	return &Quote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		QuoteNumber:       quoteNumber,
		Date:              DayOf(date),
		ValidUntil:        DayOf(validUntil),
		Amount:            amount,
		Status:            QuoteStatusDraft,
	}, nil
}

// Transition moves the quote to a new status
func (q *Quote) Transition(status QuoteStatus) error {
	switch status {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid quote status")
	}

	q.Status = status
	q.UpdatedAt = time.Now()
	q.IncrementVersion()
	return nil
}

// Update changes the quote's dates and amount
func (q *Quote) Update(date, validUntil time.Time, amount decimal.Decimal, notes string) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Quote amount cannot be negative")
	}
	if validUntil.Before(date) {
		return shared.NewDomainError("INVALID_VALIDITY", "Validity cannot precede the quote date")
	}

	q.Date = DayOf(date)
	q.ValidUntil = DayOf(validUntil)
	q.Amount = amount
	q.Notes = notes
	q.UpdatedAt = time.Now()
	q.IncrementVersion()
	return nil
}
