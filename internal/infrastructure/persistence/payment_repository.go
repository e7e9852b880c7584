package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var paymentSortFields = withSortFields("date", "amount", "method")

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	var payment ledger.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByInvoice finds payments recorded against one invoice
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID, filter shared.Filter) ([]ledger.Payment, error) {
	var payments []ledger.Payment
	query := applyFilter(
		r.db.WithContext(ctx).Model(&ledger.Payment{}).Where("invoice_id = ?", invoiceID),
		filter, paymentSortFields)
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Payment, error) {
	var payments []ledger.Payment
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.Payment{}),
		filter, paymentSortFields, "method")
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save inserts or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete removes a payment by ID
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Payment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.Payment{}),
		filter, "method")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
