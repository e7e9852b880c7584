package ledger

import (
	"strings"
	"time"

	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item represents a product or service that can appear on documents.
type Item struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SKU         string          `gorm:"type:varchar(100);uniqueIndex;not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item with required fields
func NewItem(name, sku string, price decimal.Decimal) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               strings.ToUpper(strings.TrimSpace(sku)),
		Price:             price,
	}, nil
}

// Update updates the item's details
func (i *Item) Update(name, description string, price decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	i.Name = name
	i.Description = description
	i.Price = price
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}
