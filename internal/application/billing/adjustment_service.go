package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
)

// AdjustmentService handles inventory adjustment operations
type AdjustmentService struct {
	adjustmentRepo ledger.InventoryAdjustmentRepository
	itemRepo       ledger.ItemRepository
}

// NewAdjustmentService creates a new AdjustmentService
func NewAdjustmentService(adjustmentRepo ledger.InventoryAdjustmentRepository, itemRepo ledger.ItemRepository) *AdjustmentService {
	return &AdjustmentService{adjustmentRepo: adjustmentRepo, itemRepo: itemRepo}
}

// CreateAdjustmentRequest carries the fields for recording an adjustment
type CreateAdjustmentRequest struct {
	ItemID           uuid.UUID
	AdjustmentNumber string
	Date             time.Time
	Quantity         int
	Reason           string
	Notes            string
}

// AdjustmentResponse represents an inventory adjustment in API responses
type AdjustmentResponse struct {
	ID               string `json:"id"`
	ItemID           string `json:"item_id"`
	Item             string `json:"item,omitempty"`
	AdjustmentNumber string `json:"adjustment_number"`
	Date             string `json:"date"`
	Quantity         int    `json:"quantity"`
	Reason           string `json:"reason"`
	Notes            string `json:"notes"`
	CreatedAt        string `json:"created_at"`
}

// ToAdjustmentResponse maps an adjustment entity to its API representation
func ToAdjustmentResponse(a *ledger.InventoryAdjustment, itemName string) AdjustmentResponse {
	return AdjustmentResponse{
		ID:               a.ID.String(),
		ItemID:           a.ItemID.String(),
		Item:             itemName,
		AdjustmentNumber: a.AdjustmentNumber,
		Date:             a.Date.Format(time.DateOnly),
		Quantity:         a.Quantity,
		Reason:           a.Reason,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
	}
}

// Create records a new inventory adjustment
func (s *AdjustmentService) Create(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	adjustment, err := ledger.NewInventoryAdjustment(req.ItemID, req.AdjustmentNumber, req.Date, req.Quantity, req.Reason)
	if err != nil {
		return nil, err
	}
	adjustment.Notes = req.Notes

	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}

	response := ToAdjustmentResponse(adjustment, item.Name)
	return &response, nil
}

// GetByID retrieves an inventory adjustment by ID
func (s *AdjustmentService) GetByID(ctx context.Context, id uuid.UUID) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToAdjustmentResponse(adjustment, s.itemName(ctx, adjustment.ItemID))
	return &response, nil
}

// List retrieves adjustments with pagination, optionally for one item
func (s *AdjustmentService) List(ctx context.Context, itemID *uuid.UUID, filter shared.Filter) ([]AdjustmentResponse, int64, error) {
	normalizeFilter(&filter)

	var adjustments []ledger.InventoryAdjustment
	var err error
	if itemID != nil {
		adjustments, err = s.adjustmentRepo.FindByItem(ctx, *itemID, filter)
	} else {
		adjustments, err = s.adjustmentRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.adjustmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = ToAdjustmentResponse(&adjustments[i], s.itemName(ctx, adjustments[i].ItemID))
	}
	return responses, total, nil
}

// Delete removes an inventory adjustment
func (s *AdjustmentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.adjustmentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.adjustmentRepo.Delete(ctx, id)
}

func (s *AdjustmentService) itemName(ctx context.Context, itemID uuid.UUID) string {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return ""
	}
	return item.Name
}
