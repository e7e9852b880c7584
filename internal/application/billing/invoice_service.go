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

// InvoiceService handles invoice-related business operations. Every write
// publishes a ledger transaction event so the report cache drops any
// figures the change could have touched.
type InvoiceService struct {
	invoiceRepo  ledger.InvoiceRepository
	customerRepo ledger.CustomerRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo ledger.InvoiceRepository,
	customerRepo ledger.CustomerRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// CreateInvoiceRequest carries the fields for creating an invoice
type CreateInvoiceRequest struct {
	CustomerID    uuid.UUID
	InvoiceNumber string
	OrderNumber   string
	InvoiceDate   time.Time
	DueDate       time.Time
	TotalAmount   decimal.Decimal
	Notes         string
}

// UpdateInvoiceRequest carries the fields for updating an invoice
type UpdateInvoiceRequest struct {
	InvoiceDate time.Time
	DueDate     time.Time
	TotalAmount decimal.Decimal
	Notes       string
	Status      string
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customer_id"`
	Customer      string  `json:"customer,omitempty"`
	InvoiceNumber string  `json:"invoice_number"`
	OrderNumber   string  `json:"order_number"`
	InvoiceDate   string  `json:"invoice_date"`
	DueDate       string  `json:"due_date"`
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}

// ToInvoiceResponse maps an invoice entity to its API representation
func ToInvoiceResponse(inv *ledger.Invoice, customerName string) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID.String(),
		CustomerID:    inv.CustomerID.String(),
		Customer:      customerName,
		InvoiceNumber: inv.InvoiceNumber,
		OrderNumber:   inv.OrderNumber,
		InvoiceDate:   inv.InvoiceDate.Format(time.DateOnly),
		DueDate:       inv.DueDate.Format(time.DateOnly),
		TotalAmount:   inv.TotalAmount.InexactFloat64(),
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
}

// Create creates a new invoice
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	exists, err := s.invoiceRepo.ExistsByNumber(ctx, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Invoice with this number already exists")
	}

	invoice, err := ledger.NewInvoice(req.CustomerID, req.InvoiceNumber, req.InvoiceDate, req.DueDate, req.TotalAmount)
	if err != nil {
		return nil, err
	}
	invoice.OrderNumber = req.OrderNumber
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice, customer.DisplayName)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, s.customerName(ctx, invoice.CustomerID))
	return &response, nil
}

// List retrieves invoices with pagination, optionally for one customer
func (s *InvoiceService) List(ctx context.Context, customerID *uuid.UUID, filter shared.Filter) ([]InvoiceResponse, int64, error) {
	normalizeFilter(&filter)

	var invoices []ledger.Invoice
	var err error
	if customerID != nil {
		invoices, err = s.invoiceRepo.FindByCustomer(ctx, *customerID, filter)
	} else {
		invoices, err = s.invoiceRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i], s.customerName(ctx, invoices[i].CustomerID))
	}
	return responses, total, nil
}

// Update updates an existing invoice
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.Update(req.InvoiceDate, req.DueDate, req.TotalAmount, req.Notes); err != nil {
		return nil, err
	}
	if req.Status != "" && req.Status != string(invoice.Status) {
		if err := s.transition(invoice, ledger.InvoiceStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice, s.customerName(ctx, invoice.CustomerID))
	return &response, nil
}

// Delete removes an invoice and invalidates dependent reports
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.eventBus.Publish(ctx, ledger.NewInvoiceDeletedEvent(invoice)); err != nil {
		s.logger.Warn("failed to publish invoice deleted event", zap.Error(err))
	}
	return nil
}

func (s *InvoiceService) transition(invoice *ledger.Invoice, status ledger.InvoiceStatus) error {
	switch status {
	case ledger.InvoiceStatusSent:
		return invoice.MarkSent()
	case ledger.InvoiceStatusPaid:
		return invoice.MarkPaid()
	case ledger.InvoiceStatusCancelled:
		return invoice.Cancel()
	case ledger.InvoiceStatusDraft:
		return shared.NewDomainError("INVALID_STATE", "Invoices cannot return to draft")
	default:
		return shared.NewDomainError("INVALID_STATUS", "Invalid invoice status")
	}
}

func (s *InvoiceService) customerName(ctx context.Context, customerID uuid.UUID) string {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return ""
	}
	return customer.DisplayName
}

func (s *InvoiceService) publishEvents(ctx context.Context, invoice *ledger.Invoice) {
	events := invoice.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events", zap.Error(err))
	}
	invoice.ClearDomainEvents()
}
