package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
)

// ChallanService handles delivery challan operations
type ChallanService struct {
	challanRepo  ledger.DeliveryChallanRepository
	customerRepo ledger.CustomerRepository
}

// NewChallanService creates a new ChallanService
func NewChallanService(challanRepo ledger.DeliveryChallanRepository, customerRepo ledger.CustomerRepository) *ChallanService {
	return &ChallanService{challanRepo: challanRepo, customerRepo: customerRepo}
}

// CreateChallanRequest carries the fields for creating a delivery challan
type CreateChallanRequest struct {
	CustomerID    uuid.UUID
	ChallanNumber string
	Date          time.Time
	DeliveryDate  time.Time
	Notes         string
}

// UpdateChallanRequest carries the status change for a delivery challan
type UpdateChallanRequest struct {
	Status string
	Notes  *string
}

// ChallanResponse represents a delivery challan in API responses
type ChallanResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	ChallanNumber string `json:"challan_number"`
	Date          string `json:"date"`
	DeliveryDate  string `json:"delivery_date"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
	CreatedAt     string `json:"created_at"`
}

// ToChallanResponse maps a challan entity to its API representation
func ToChallanResponse(d *ledger.DeliveryChallan) ChallanResponse {
	return ChallanResponse{
		ID:            d.ID.String(),
		CustomerID:    d.CustomerID.String(),
		ChallanNumber: d.ChallanNumber,
		Date:          d.Date.Format(time.DateOnly),
		DeliveryDate:  d.DeliveryDate.Format(time.DateOnly),
		Status:        string(d.Status),
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a new delivery challan
func (s *ChallanService) Create(ctx context.Context, req CreateChallanRequest) (*ChallanResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	exists, err := s.challanRepo.ExistsByNumber(ctx, req.ChallanNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Delivery challan with this number already exists")
	}

	challan, err := ledger.NewDeliveryChallan(req.CustomerID, req.ChallanNumber, req.Date, req.DeliveryDate)
	if err != nil {
		return nil, err
	}
	challan.Notes = req.Notes

	if err := s.challanRepo.Save(ctx, challan); err != nil {
		return nil, err
	}

	response := ToChallanResponse(challan)
	return &response, nil
}

// GetByID retrieves a delivery challan by ID
func (s *ChallanService) GetByID(ctx context.Context, id uuid.UUID) (*ChallanResponse, error) {
	challan, err := s.challanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToChallanResponse(challan)
	return &response, nil
}

// List retrieves delivery challans with pagination
func (s *ChallanService) List(ctx context.Context, filter shared.Filter) ([]ChallanResponse, int64, error) {
	normalizeFilter(&filter)

	challans, err := s.challanRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.challanRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ChallanResponse, len(challans))
	for i := range challans {
		responses[i] = ToChallanResponse(&challans[i])
	}
	return responses, total, nil
}

// Update applies a status change to a delivery challan
func (s *ChallanService) Update(ctx context.Context, id uuid.UUID, req UpdateChallanRequest) (*ChallanResponse, error) {
	challan, err := s.challanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != "" && req.Status != string(challan.Status) {
		switch ledger.ChallanStatus(req.Status) {
		case ledger.ChallanStatusDelivered:
			err = challan.MarkDelivered()
		case ledger.ChallanStatusCancelled:
			err = challan.Cancel()
		case ledger.ChallanStatusDraft:
			err = shared.NewDomainError("INVALID_STATE", "Challans cannot return to draft")
		default:
			err = shared.NewDomainError("INVALID_STATUS", "Invalid challan status")
		}
		if err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		challan.Notes = *req.Notes
	}

	if err := s.challanRepo.Save(ctx, challan); err != nil {
		return nil, err
	}

	response := ToChallanResponse(challan)
	return &response, nil
}

// Delete removes a delivery challan
func (s *ChallanService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.challanRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.challanRepo.Delete(ctx, id)
}
