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

var vendorSortFields = withSortFields("name", "company_name", "email")

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Vendor, error) {
	var vendor ledger.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByEmail finds a vendor by email
func (r *GormVendorRepository) FindByEmail(ctx context.Context, email string) (*ledger.Vendor, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var vendor ledger.Vendor
	if err := r.db.WithContext(ctx).
		First(&vendor, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// ExistsByEmail checks whether a vendor with the email exists
func (r *GormVendorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.Vendor{}).
		Where("email = ?", strings.ToLower(email)).Count(&count).Error
	return count > 0, err
}

// FindAll finds all vendors matching the filter
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Vendor, error) {
	var vendors []ledger.Vendor
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.Vendor{}),
		filter, vendorSortFields, "name", "company_name", "email")
	if err := query.Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// Save inserts or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *ledger.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete removes a vendor by ID
func (r *GormVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Vendor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts vendors matching the filter
func (r *GormVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.Vendor{}),
		filter, "name", "company_name", "email")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormVendorRepository implements VendorRepository
var _ ledger.VendorRepository = (*GormVendorRepository)(nil)
