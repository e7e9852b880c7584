package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var invoiceSortFields = withSortFields("invoice_number", "invoice_date", "due_date", "total_amount", "status")

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	var invoice ledger.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by its document number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*ledger.Invoice, error) {
	var invoice ledger.Invoice
	if err := r.db.WithContext(ctx).
		First(&invoice, "invoice_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByCustomer finds invoices for one customer
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]ledger.Invoice, error) {
	var invoices []ledger.Invoice
	query := applyFilter(
		r.db.WithContext(ctx).Model(&ledger.Invoice{}).Where("customer_id = ?", customerID),
		filter, invoiceSortFields, "invoice_number")
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// ExistsByNumber checks whether an invoice with the number exists
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.Invoice{}).
		Where("invoice_number = ?", number).Count(&count).Error
	return count > 0, err
}

// FindAll finds all invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Invoice, error) {
	var invoices []ledger.Invoice
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.Invoice{}),
		filter, invoiceSortFields, "invoice_number", "order_number")
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save inserts or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *ledger.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// Delete removes an invoice by ID
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.Invoice{}),
		filter, "invoice_number", "order_number")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ ledger.InvoiceRepository = (*GormInvoiceRepository)(nil)
