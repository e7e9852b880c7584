package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle state of a vendor bill
type BillStatus string

const (
	BillStatusDraft     BillStatus = "draft"
	BillStatusOpen      BillStatus = "open"
	BillStatusPaid      BillStatus = "paid"
	BillStatusCancelled BillStatus = "cancelled"
)

// Bill represents an amount the business owes a vendor.
// Its bill date drives the cost side of every report.
type Bill struct {
	shared.BaseAggregateRoot
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillNumber  string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	BillDate    time.Time       `gorm:"type:date;not null;index"`
	DueDate     time.Time       `gorm:"type:date;not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status      BillStatus      `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Bill) TableName() string {
	return "bills"
}

// NewBill creates a new bill and records the creation event
func NewBill(vendorID uuid.UUID, billNumber string, billDate, dueDate time.Time, totalAmount decimal.Decimal) (*Bill, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Bill requires a vendor")
	}
	if err := validateDocumentNumber(billNumber); err != nil {
		return nil, err
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Bill amount cannot be negative")
	}
	if dueDate.Before(billDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the bill date")
	}

	b := &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		BillNumber:        billNumber,
		BillDate:          DayOf(billDate),
		DueDate:           DayOf(dueDate),
		TotalAmount:       totalAmount,
		Status:            BillStatusDraft,
	}

	b.AddDomainEvent(NewBillCreatedEvent(b))

	return b, nil
}

// Update changes the bill's date, due date, and total, recording an event
func (b *Bill) Update(billDate, dueDate time.Time, totalAmount decimal.Decimal, notes string) error {
	if totalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Bill amount cannot be negative")
	}
	if dueDate.Before(billDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede the bill date")
	}

	b.BillDate = DayOf(billDate)
	b.DueDate = DayOf(dueDate)
	b.TotalAmount = totalAmount
	b.Notes = notes
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBillUpdatedEvent(b))

	return nil
}

// MarkOpen moves a draft bill to open
func (b *Bill) MarkOpen() error {
	if b.Status != BillStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft bills can be opened")
	}
	b.Status = BillStatusOpen
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// MarkPaid marks the bill as settled
func (b *Bill) MarkPaid() error {
	if b.Status == BillStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled bills cannot be paid")
	}
	b.Status = BillStatusPaid
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Cancel cancels the bill
func (b *Bill) Cancel() error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Paid bills cannot be cancelled")
	}
	b.Status = BillStatusCancelled
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}
