package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var proformaSortFields = withSortFields("proforma_number", "date", "due_date", "amount", "status")

// GormProformaRepository implements ProformaInvoiceRepository using GORM
type GormProformaRepository struct {
	db *gorm.DB
}

// NewGormProformaRepository creates a new GormProformaRepository
func NewGormProformaRepository(db *gorm.DB) *GormProformaRepository {
	return &GormProformaRepository{db: db}
}

// FindByID finds a proforma invoice by its ID
func (r *GormProformaRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.ProformaInvoice, error) {
	var proforma ledger.ProformaInvoice
	if err := r.db.WithContext(ctx).First(&proforma, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &proforma, nil
}

// FindByNumber finds a proforma invoice by its document number
func (r *GormProformaRepository) FindByNumber(ctx context.Context, number string) (*ledger.ProformaInvoice, error) {
	var proforma ledger.ProformaInvoice
	if err := r.db.WithContext(ctx).
		First(&proforma, "proforma_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &proforma, nil
}

// ExistsByNumber checks whether a proforma with the number exists
func (r *GormProformaRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.ProformaInvoice{}).
		Where("proforma_number = ?", number).Count(&count).Error
	return count > 0, err
}

// FindAll finds all proforma invoices matching the filter
func (r *GormProformaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.ProformaInvoice, error) {
	var proformas []ledger.ProformaInvoice
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.ProformaInvoice{}),
		filter, proformaSortFields, "proforma_number")
	if err := query.Find(&proformas).Error; err != nil {
		return nil, err
	}
	return proformas, nil
}

// Save inserts or updates a proforma invoice
func (r *GormProformaRepository) Save(ctx context.Context, proforma *ledger.ProformaInvoice) error {
	return r.db.WithContext(ctx).Save(proforma).Error
}

// Delete removes a proforma invoice by ID
func (r *GormProformaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.ProformaInvoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts proforma invoices matching the filter
func (r *GormProformaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.ProformaInvoice{}),
		filter, "proforma_number")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormProformaRepository implements ProformaInvoiceRepository
var _ ledger.ProformaInvoiceRepository = (*GormProformaRepository)(nil)
