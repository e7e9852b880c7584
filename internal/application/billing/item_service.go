package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemService handles item-related business operations
type ItemService struct {
	itemRepo ledger.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo ledger.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// CreateItemRequest carries the fields for creating an item
type CreateItemRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
	SKU         string
}

// UpdateItemRequest carries the fields for updating an item
type UpdateItemRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	SKU         string  `json:"sku"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToItemResponse maps an item entity to its API representation
func ToItemResponse(i *ledger.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID.String(),
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price.InexactFloat64(),
		SKU:         i.SKU,
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.Format(time.RFC3339),
	}
}

// Create creates a new item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this SKU already exists")
	}

	item, err := ledger.NewItem(req.Name, req.SKU, req.Price)
	if err != nil {
		return nil, err
	}
	item.Description = req.Description

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with pagination
func (s *ItemService) List(ctx context.Context, filter shared.Filter) ([]ItemResponse, int64, error) {
	normalizeFilter(&filter)

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses, total, nil
}

// Update updates an existing item
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Update(req.Name, req.Description, req.Price); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}
