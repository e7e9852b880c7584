package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo ledger.VendorRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo ledger.VendorRepository) *VendorService {
	return &VendorService{vendorRepo: vendorRepo}
}

// VendorRequest carries the fields for creating or updating a vendor
type VendorRequest struct {
	Name        string
	Email       string
	CompanyName string
	Address     string
	Phone       string
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ToVendorResponse maps a vendor entity to its API representation
func ToVendorResponse(v *ledger.Vendor) VendorResponse {
	return VendorResponse{
		ID:          v.ID.String(),
		Name:        v.Name,
		Email:       v.Email,
		CompanyName: v.CompanyName,
		Address:     v.Address,
		Phone:       v.Phone,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, req VendorRequest) (*VendorResponse, error) {
	exists, err := s.vendorRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this email already exists")
	}

	vendor, err := ledger.NewVendor(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	vendor.CompanyName = req.CompanyName
	vendor.Address = req.Address
	vendor.Phone = req.Phone

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors with pagination
func (s *VendorService) List(ctx context.Context, filter shared.Filter) ([]VendorResponse, int64, error) {
	normalizeFilter(&filter)

	vendors, err := s.vendorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vendorRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}
	return responses, total, nil
}

// Update updates an existing vendor
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req VendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != vendor.Email {
		exists, err := s.vendorRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Vendor with this email already exists")
		}
	}

	if err := vendor.Update(req.Name, req.Email, req.CompanyName, req.Address, req.Phone); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete removes a vendor
func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.vendorRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.vendorRepo.Delete(ctx, id)
}
