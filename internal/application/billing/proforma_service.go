package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProformaService handles proforma invoice operations
type ProformaService struct {
	proformaRepo ledger.ProformaInvoiceRepository
	customerRepo ledger.CustomerRepository
}

// NewProformaService creates a new ProformaService
func NewProformaService(proformaRepo ledger.ProformaInvoiceRepository, customerRepo ledger.CustomerRepository) *ProformaService {
	return &ProformaService{proformaRepo: proformaRepo, customerRepo: customerRepo}
}

// CreateProformaRequest carries the fields for creating a proforma invoice
type CreateProformaRequest struct {
	CustomerID     uuid.UUID
	ProformaNumber string
	Date           time.Time
	DueDate        time.Time
	Amount         decimal.Decimal
	Notes          string
}

// UpdateProformaRequest carries the fields for updating a proforma invoice
type UpdateProformaRequest struct {
	Date    time.Time
	DueDate time.Time
	Amount  decimal.Decimal
	Notes   string
	Status  string
}

// ProformaResponse represents a proforma invoice in API responses
type ProformaResponse struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customer_id"`
	ProformaNumber string  `json:"proforma_number"`
	Date           string  `json:"date"`
	DueDate        string  `json:"due_date"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at"`
}

// ToProformaResponse maps a proforma entity to its API representation
func ToProformaResponse(p *ledger.ProformaInvoice) ProformaResponse {
	return ProformaResponse{
		ID:             p.ID.String(),
		CustomerID:     p.CustomerID.String(),
		ProformaNumber: p.ProformaNumber,
		Date:           p.Date.Format(time.DateOnly),
		DueDate:        p.DueDate.Format(time.DateOnly),
		Amount:         p.Amount.InexactFloat64(),
		Status:         string(p.Status),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a new proforma invoice
func (s *ProformaService) Create(ctx context.Context, req CreateProformaRequest) (*ProformaResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	exists, err := s.proformaRepo.ExistsByNumber(ctx, req.ProformaNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Proforma invoice with this number already exists")
	}

	proforma, err := ledger.NewProformaInvoice(req.CustomerID, req.ProformaNumber, req.Date, req.DueDate, req.Amount)
	if err != nil {
		return nil, err
	}
	proforma.Notes = req.Notes

	if err := s.proformaRepo.Save(ctx, proforma); err != nil {
		return nil, err
	}

	response := ToProformaResponse(proforma)
	return &response, nil
}

// GetByID retrieves a proforma invoice by ID
func (s *ProformaService) GetByID(ctx context.Context, id uuid.UUID) (*ProformaResponse, error) {
	proforma, err := s.proformaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProformaResponse(proforma)
	return &response, nil
}

// List retrieves proforma invoices with pagination
func (s *ProformaService) List(ctx context.Context, filter shared.Filter) ([]ProformaResponse, int64, error) {
	normalizeFilter(&filter)

	proformas, err := s.proformaRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.proformaRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProformaResponse, len(proformas))
	for i := range proformas {
		responses[i] = ToProformaResponse(&proformas[i])
	}
	return responses, total, nil
}

// Update updates an existing proforma invoice
func (s *ProformaService) Update(ctx context.Context, id uuid.UUID, req UpdateProformaRequest) (*ProformaResponse, error) {
	proforma, err := s.proformaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := proforma.Update(req.Date, req.DueDate, req.Amount, req.Notes); err != nil {
		return nil, err
	}
	if req.Status != "" && req.Status != string(proforma.Status) {
		if err := proforma.Transition(ledger.ProformaStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.proformaRepo.Save(ctx, proforma); err != nil {
		return nil, err
	}

	response := ToProformaResponse(proforma)
	return &response, nil
}

// Delete removes a proforma invoice
func (s *ProformaService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.proformaRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.proformaRepo.Delete(ctx, id)
}
