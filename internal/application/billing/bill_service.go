package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillService handles vendor bill business operations. Like invoices,
// every write publishes a ledger transaction event for report cache
// invalidation.
type BillService struct {
	billRepo   ledger.BillRepository
	vendorRepo ledger.VendorRepository
	eventBus   shared.EventPublisher
	logger     *zap.Logger
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo ledger.BillRepository,
	vendorRepo ledger.VendorRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *BillService {
	return &BillService{
		billRepo:   billRepo,
		vendorRepo: vendorRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// CreateBillRequest carries the fields for creating a bill
type CreateBillRequest struct {
	VendorID    uuid.UUID
	BillNumber  string
	BillDate    time.Time
	DueDate     time.Time
	TotalAmount decimal.Decimal
	Notes       string
}

// UpdateBillRequest carries the fields for updating a bill
type UpdateBillRequest struct {
	BillDate    time.Time
	DueDate     time.Time
	TotalAmount decimal.Decimal
	Notes       string
	Status      string
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID          string  `json:"id"`
	VendorID    string  `json:"vendor_id"`
	Vendor      string  `json:"vendor,omitempty"`
	BillNumber  string  `json:"bill_number"`
	BillDate    string  `json:"bill_date"`
	DueDate     string  `json:"due_date"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// ToBillResponse maps a bill entity to its API representation
func ToBillResponse(b *ledger.Bill, vendorName string) BillResponse {
	return BillResponse{
		ID:          b.ID.String(),
		VendorID:    b.VendorID.String(),
		Vendor:      vendorName,
		BillNumber:  b.BillNumber,
		BillDate:    b.BillDate.Format(time.DateOnly),
		DueDate:     b.DueDate.Format(time.DateOnly),
		TotalAmount: b.TotalAmount.InexactFloat64(),
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a new bill
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}

	exists, err := s.billRepo.ExistsByNumber(ctx, req.BillNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bill with this number already exists")
	}

	bill, err := ledger.NewBill(req.VendorID, req.BillNumber, req.BillDate, req.DueDate, req.TotalAmount)
	if err != nil {
		return nil, err
	}
	bill.Notes = req.Notes

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, bill)

	response := ToBillResponse(bill, vendor.Name)
	return &response, nil
}

// GetByID retrieves a bill by ID
func (s *BillService) GetByID(ctx context.Context, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill, s.vendorName(ctx, bill.VendorID))
	return &response, nil
}

// List retrieves bills with pagination, optionally for one vendor
func (s *BillService) List(ctx context.Context, vendorID *uuid.UUID, filter shared.Filter) ([]BillResponse, int64, error) {
	normalizeFilter(&filter)

	var bills []ledger.Bill
	var err error
	if vendorID != nil {
		bills, err = s.billRepo.FindByVendor(ctx, *vendorID, filter)
	} else {
		bills, err = s.billRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.billRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i], s.vendorName(ctx, bills[i].VendorID))
	}
	return responses, total, nil
}

// Update updates an existing bill
func (s *BillService) Update(ctx context.Context, id uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := bill.Update(req.BillDate, req.DueDate, req.TotalAmount, req.Notes); err != nil {
		return nil, err
	}
	if req.Status != "" && req.Status != string(bill.Status) {
		if err := s.transition(bill, ledger.BillStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, bill)

	response := ToBillResponse(bill, s.vendorName(ctx, bill.VendorID))
	return &response, nil
}

// Delete removes a bill and invalidates dependent reports
func (s *BillService) Delete(ctx context.Context, id uuid.UUID) error {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.billRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.eventBus.Publish(ctx, ledger.NewBillDeletedEvent(bill)); err != nil {
		s.logger.Warn("failed to publish bill deleted event", zap.Error(err))
	}
	return nil
}

func (s *BillService) transition(bill *ledger.Bill, status ledger.BillStatus) error {
	switch status {
	case ledger.BillStatusOpen:
		return bill.MarkOpen()
	case ledger.BillStatusPaid:
		return bill.MarkPaid()
	case ledger.BillStatusCancelled:
		return bill.Cancel()
	case ledger.BillStatusDraft:
		return shared.NewDomainError("INVALID_STATE", "Bills cannot return to draft")
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid bill status")
	}
}

func (s *BillService) vendorName(ctx context.Context, vendorID uuid.UUID) string {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return ""
	}
	return vendor.Name
}

func (s *BillService) publishEvents(ctx context.Context, bill *ledger.Bill) {
	events := bill.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish bill events", zap.Error(err))
	}
	bill.ClearDomainEvents()
}
