package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var challanSortFields = withSortFields("challan_number", "date", "delivery_date", "status")

// GormChallanRepository implements DeliveryChallanRepository using GORM
type GormChallanRepository struct {
	db *gorm.DB
}

// NewGormChallanRepository creates a new GormChallanRepository
func NewGormChallanRepository(db *gorm.DB) *GormChallanRepository {
	return &GormChallanRepository{db: db}
}

// FindByID finds a delivery challan by its ID
func (r *GormChallanRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.DeliveryChallan, error) {
	var challan ledger.DeliveryChallan
	if err := r.db.WithContext(ctx).First(&challan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &challan, nil
}

// FindByNumber finds a delivery challan by its document number
func (r *GormChallanRepository) FindByNumber(ctx context.Context, number string) (*ledger.DeliveryChallan, error) {
	var challan ledger.DeliveryChallan
	if err := r.db.WithContext(ctx).
		First(&challan, "challan_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &challan, nil
}

// ExistsByNumber checks whether a challan with the number exists
func (r *GormChallanRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.DeliveryChallan{}).
		Where("challan_number = ?", number).Count(&count).Error
	return count > 0, err
}

// FindAll finds all delivery challans matching the filter
func (r *GormChallanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.DeliveryChallan, error) {
	var challans []ledger.DeliveryChallan
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.DeliveryChallan{}),
		filter, challanSortFields, "challan_number")
	if err := query.Find(&challans).Error; err != nil {
		return nil, err
	}
	return challans, nil
}

// Save inserts or updates a delivery challan
func (r *GormChallanRepository) Save(ctx context.Context, challan *ledger.DeliveryChallan) error {
	return r.db.WithContext(ctx).Save(challan).Error
}

// Delete removes a delivery challan by ID
func (r *GormChallanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.DeliveryChallan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts delivery challans matching the filter
func (r *GormChallanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.DeliveryChallan{}),
		filter, "challan_number")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormChallanRepository implements DeliveryChallanRepository
var _ ledger.DeliveryChallanRepository = (*GormChallanRepository)(nil)
