package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
)

// ChallanStatus represents the lifecycle state of a delivery challan
type ChallanStatus string

const (
	ChallanStatusDraft     ChallanStatus = "draft"
	ChallanStatusDelivered ChallanStatus = "delivered"
	ChallanStatusCancelled ChallanStatus = "cancelled"
)

// DeliveryChallan records goods dispatched to a customer.
// Challans never feed report figures.
type DeliveryChallan struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	ChallanNumber string        `gorm:"type:varchar(50);uniqueIndex;not null"`
	Date          time.Time     `gorm:"type:date;not null"`
	DeliveryDate  time.Time     `gorm:"type:date;not null"`
	Status        ChallanStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes         string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DeliveryChallan) TableName() string {
	return "delivery_challans"
}

// NewDeliveryChallan creates a new delivery challan with required fields
func NewDeliveryChallan(customerID uuid.UUID, challanNumber string, date, deliveryDate time.Time) (*DeliveryChallan, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Delivery challan requires a customer")
	}
	if err := validateDocumentNumber(challanNumber); err != nil {
		return nil, err
	}
	if deliveryDate.Before(date) {
		return nil, shared.NewDomainError("INVALID_DELIVERY_DATE", "Delivery date cannot precede the challan date")
	}

	return &DeliveryChallan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ChallanNumber:     challanNumber,
		Date:              DayOf(date),
		DeliveryDate:      DayOf(deliveryDate),
		Status:            ChallanStatusDraft,
	}, nil
}

// MarkDelivered marks the challan as delivered
func (d *DeliveryChallan) MarkDelivered() error {
	if d.Status == ChallanStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled challans cannot be delivered")
	}
	d.Status = ChallanStatusDelivered
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// Cancel cancels the challan
func (d *DeliveryChallan) Cancel() error {
	if d.Status == ChallanStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Delivered challans cannot be cancelled")
	}
	d.Status = ChallanStatusCancelled
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}
