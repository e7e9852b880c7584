package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var quoteSortFields = withSortFields("quote_number", "date", "valid_until", "amount", "status")

// GormQuoteRepository implements QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote by its ID
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Quote, error) {
	var quote ledger.Quote
	if err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindByNumber finds a quote by its document number
func (r *GormQuoteRepository) FindByNumber(ctx context.Context, number string) (*ledger.Quote, error) {
	var quote ledger.Quote
	if err := r.db.WithContext(ctx).
		First(&quote, "quote_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// ExistsByNumber checks whether a quote with the number exists
func (r *GormQuoteRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.Quote{}).
		Where("quote_number = ?", number).Count(&count).Error
	return count > 0, err
}

// FindAll finds all quotes matching the filter
func (r *GormQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Quote, error) {
	var quotes []ledger.Quote
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.Quote{}),
		filter, quoteSortFields, "quote_number")
	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// Save inserts or updates a quote
func (r *GormQuoteRepository) Save(ctx context.Context, quote *ledger.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// Delete removes a quote by ID
func (r *GormQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Quote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts quotes matching the filter
func (r *GormQuoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.Quote{}),
		filter, "quote_number")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormQuoteRepository implements QuoteRepository
var _ ledger.QuoteRepository = (*GormQuoteRepository)(nil)
