package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
)

// InventoryAdjustment records a manual stock correction for an item.
type InventoryAdjustment struct {
	shared.BaseAggregateRoot
	ItemID           uuid.UUID `gorm:"type:uuid;not null;index"`
	AdjustmentNumber string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Date             time.Time `gorm:"type:date;not null"`
	Quantity         int       `gorm:"not null"`
	Reason           string    `gorm:"type:varchar(255)"`
	Notes            string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}

// NewInventoryAdjustment creates a new inventory adjustment
func NewInventoryAdjustment(itemID uuid.UUID, adjustmentNumber string, date time.Time, quantity int, reason string) (*InventoryAdjustment, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Adjustment requires an item")
	}
	if err := validateDocumentNumber(adjustmentNumber); err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}

	return &InventoryAdjustment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemID:            itemID,
		AdjustmentNumber:  adjustmentNumber,
		Date:              DayOf(date),
		Quantity:          quantity,
		Reason:            reason,
	}, nil
}
