package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var adjustmentSortFields = withSortFields("adjustment_number", "date", "quantity")

// GormAdjustmentRepository implements InventoryAdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByID finds an inventory adjustment by its ID
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.InventoryAdjustment, error) {
	var adjustment ledger.InventoryAdjustment
	if err := r.db.WithContext(ctx).First(&adjustment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &adjustment, nil
}

// FindByItem finds adjustments recorded for one item
func (r *GormAdjustmentRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]ledger.InventoryAdjustment, error) {
	var adjustments []ledger.InventoryAdjustment
	query := applyFilter(
		r.db.WithContext(ctx).Model(&ledger.InventoryAdjustment{}).Where("item_id = ?", itemID),
		filter, adjustmentSortFields, "adjustment_number")
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// FindAll finds all adjustments matching the filter
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.InventoryAdjustment, error) {
	var adjustments []ledger.InventoryAdjustment
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.InventoryAdjustment{}),
		filter, adjustmentSortFields, "adjustment_number", "reason")
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// Save inserts or updates an adjustment
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *ledger.InventoryAdjustment) error {
	return r.db.WithContext(ctx).Save(adjustment).Error
}

// Delete removes an adjustment by ID
func (r *GormAdjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.InventoryAdjustment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts adjustments matching the filter
func (r *GormAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.InventoryAdjustment{}),
		filter, "adjustment_number", "reason")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormAdjustmentRepository implements InventoryAdjustmentRepository
var _ ledger.InventoryAdjustmentRepository = (*GormAdjustmentRepository)(nil)
