package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var itemSortFields = withSortFields("name", "sku", "price")

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Item, error) {
	var item ledger.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindBySKU finds an item by its SKU
func (r *GormItemRepository) FindBySKU(ctx context.Context, sku string) (*ledger.Item, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	var item ledger.Item
	if err := r.db.WithContext(ctx).
		First(&item, "sku = ?", strings.ToUpper(sku)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ExistsBySKU checks whether an item with the SKU exists
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.Item{}).
		Where("sku = ?", strings.ToUpper(sku)).Count(&count).Error
	return count > 0, err
}

// FindAll finds all items matching the filter
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Item, error) {
	var items []ledger.Item
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.Item{}),
		filter, itemSortFields, "name", "sku")
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save inserts or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *ledger.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item by ID
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts items matching the filter
func (r *GormItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.Item{}),
		filter, "name", "sku")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormItemRepository implements ItemRepository
var _ ledger.ItemRepository = (*GormItemRepository)(nil)
