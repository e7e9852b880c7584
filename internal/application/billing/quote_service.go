package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteService handles quote-related business operations. Quotes never
// touch report figures, so no events are published here.
type QuoteService struct {
	quoteRepo    ledger.QuoteRepository
	customerRepo ledger.CustomerRepository
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo ledger.QuoteRepository, customerRepo ledger.CustomerRepository) *QuoteService {
	return &QuoteService{quoteRepo: quoteRepo, customerRepo: customerRepo}
}

// CreateQuoteRequest carries the fields for creating a quote
type CreateQuoteRequest struct {
	CustomerID  uuid.UUID
	QuoteNumber string
	Date        time.Time
	ValidUntil  time.Time
	Amount      decimal.Decimal
	Notes       string
}

// UpdateQuoteRequest carries the fields for updating a quote
type UpdateQuoteRequest struct {
	Date       time.Time
	ValidUntil time.Time
	Amount     decimal.Decimal
	Notes      string
	Status     string
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customer_id"`
	QuoteNumber string  `json:"quote_number"`
	Date        string  `json:"date"`
	ValidUntil  string  `json:"valid_until"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// ToQuoteResponse maps a quote entity to its API representation
func ToQuoteResponse(q *ledger.Quote) QuoteResponse {
	return QuoteResponse{
		ID:          q.ID.String(),
		CustomerID:  q.CustomerID.String(),
		QuoteNumber: q.QuoteNumber,
		Date:        q.Date.Format(time.DateOnly),
		ValidUntil:  q.ValidUntil.Format(time.DateOnly),
		Amount:      q.Amount.InexactFloat64(),
		Status:      string(q.Status),
		Notes:       q.Notes,
		CreatedAt:   q.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a new quote
func (s *QuoteService) Create(ctx context.Context, req CreateQuoteRequest) (*QuoteResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	exists, err := s.quoteRepo.ExistsByNumber(ctx, req.QuoteNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Quote with this number already exists")
	}

	quote, err := ledger.NewQuote(req.CustomerID, req.QuoteNumber, req.Date, req.ValidUntil, req.Amount)
	if err != nil {
		return nil, err
	}
	quote.Notes = req.Notes

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// GetByID retrieves a quote by ID
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes with pagination
func (s *QuoteService) List(ctx context.Context, filter shared.Filter) ([]QuoteResponse, int64, error) {
	normalizeFilter(&filter)

	quotes, err := s.quoteRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quoteRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteResponse(&quotes[i])
	}
	return responses, total, nil
}

// Update updates an existing quote
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := quote.Update(req.Date, req.ValidUntil, req.Amount, req.Notes); err != nil {
		return nil, err
	}
	if req.Status != "" && req.Status != string(quote.Status) {
		if err := quote.Transition(ledger.QuoteStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Delete removes a quote
func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.quoteRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.quoteRepo.Delete(ctx, id)
}
