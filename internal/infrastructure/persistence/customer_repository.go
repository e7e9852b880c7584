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

var customerSortFields = withSortFields("display_name", "company_name", "email")

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Customer, error) {
	var customer ledger.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByEmail finds a customer by email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*ledger.Customer, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var customer ledger.Customer
	if err := r.db.WithContext(ctx).
		First(&customer, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// ExistsByEmail checks whether a customer with the email exists
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.Customer{}).
		Where("email = ?", strings.ToLower(email)).Count(&count).Error
	return count > 0, err
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Customer, error) {
	var customers []ledger.Customer
	query := applyFilter(r.db.WithContext(ctx).Model(&ledger.Customer{}),
		filter, customerSortFields, "display_name", "company_name", "email")
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save inserts or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *ledger.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete removes a customer by ID
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&ledger.Customer{}),
		filter, "display_name", "company_name", "email")
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ ledger.CustomerRepository = (*GormCustomerRepository)(nil)
