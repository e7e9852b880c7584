package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var billSortFields = withSortFields("bill_number", "bill_date", "due_date", "total_amount", "status")

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Bill, error) {
	var bill ledger.Bill
	if err := r.db.WithContext(ctx).First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByNumber finds a bill by its document number
func (r *GormBillRepository) FindByNumber(ctx context.Context, number string) (*ledger.Bill, error) {
	var bill ledger.Bill
	if err := r.db.WithContext(ctx).
		First(&bill, "bill_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByVendor finds bills for one vendor
func (r *GormBillRepository) FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]ledger.Bill, error) {
	var bills []ledger.Bill
	query := applyFilter(
		r.db.WithContext(ctx).Model(&ledger.Bill{}).Where("vendor_id = ?", vendorID),
		filter, billSortFields, "bill_number")
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// ExistsByNumber checks whether a bill with the number exists
func (r *GormBillRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.Bill{}).
		Where("bill_number = ?", number).Count(&count).Error
	return count > 0, err
}

// FindAll finds all bills matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Bill, error) {
	var bills []ledger.Bill
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.Bill{}),
		filter, billSortFields, "bill_number")
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Save inserts or updates a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *ledger.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

// Delete removes a bill by ID
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Bill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bills matching the filter
func (r *GormBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.Bill{}),
		filter, "bill_number")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormBillRepository implements BillRepository
var _ ledger.BillRepository = (*GormBillRepository)(nil)
