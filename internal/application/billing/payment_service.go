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

// PaymentService handles payments received against invoices. A payment
// that settles an invoice in full also flips the invoice to paid.
type PaymentService struct {
	paymentRepo ledger.PaymentRepository
	invoiceRepo ledger.InvoiceRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo ledger.PaymentRepository,
	invoiceRepo ledger.InvoiceRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// CreatePaymentRequest carries the fields for recording a payment
type CreatePaymentRequest struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	Method    string
	Notes     string
}

// UpdatePaymentRequest carries the fields for updating a payment
type UpdatePaymentRequest struct {
	Amount decimal.Decimal
	Date   time.Time
	Method string
	Notes  string
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            string  `json:"id"`
	InvoiceID     string  `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Method        string  `json:"method"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}

// ToPaymentResponse maps a payment entity to its API representation
func ToPaymentResponse(p *ledger.Payment, invoiceNumber string) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID.String(),
		InvoiceID:     p.InvoiceID.String(),
		InvoiceNumber: invoiceNumber,
		Amount:        p.Amount.InexactFloat64(),
		Date:          p.Date.Format(time.DateOnly),
		Method:        p.Method,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

// Create records a payment against an invoice. When cumulative payments
// cover the invoice total the invoice is marked paid.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status == ledger.InvoiceStatusCancelled {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot record a payment against a cancelled invoice")
	}

	payment, err := ledger.NewPayment(req.InvoiceID, req.Amount, req.Date, req.Method)
	if err != nil {
		return nil, err
	}
	payment.Notes = req.Notes

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, payment)

	s.settleIfPaid(ctx, invoice)

	response := ToPaymentResponse(payment, invoice.InvoiceNumber)
	return &response, nil
}

// GetByID retrieves a payment by ID
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, s.invoiceNumber(ctx, payment.InvoiceID))
	return &response, nil
}

// List retrieves payments with pagination, optionally for one invoice
func (s *PaymentService) List(ctx context.Context, invoiceID *uuid.UUID, filter shared.Filter) ([]PaymentResponse, int64, error) {
	normalizeFilter(&filter)

	var payments []ledger.Payment
	var err error
	if invoiceID != nil {
		payments, err = s.paymentRepo.FindByInvoice(ctx, *invoiceID, filter)
	} else {
		payments, err = s.paymentRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i], s.invoiceNumber(ctx, payments[i].InvoiceID))
	}
	return responses, total, nil
}

// Update updates an existing payment
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payment.Update(req.Amount, req.Date, req.Method, req.Notes); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, payment)

	response := ToPaymentResponse(payment, s.invoiceNumber(ctx, payment.InvoiceID))
	return &response, nil
}

// Delete removes a payment and invalidates dependent reports
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.eventBus.Publish(ctx, ledger.NewPaymentDeletedEvent(payment)); err != nil {
		s.logger.Warn("failed to publish payment deleted event", zap.Error(err))
	}
	return nil
}

// settleIfPaid flips the invoice to paid once cumulative payments cover
// its total. Failure here never fails the payment itself.
func (s *PaymentService) settleIfPaid(ctx context.Context, invoice *ledger.Invoice) {
	if invoice.Status == ledger.InvoiceStatusPaid {
		return
	}

	payments, err := s.paymentRepo.FindByInvoice(ctx, invoice.ID, shared.Filter{Page: 1, PageSize: 1000})
	if err != nil {
		s.logger.Warn("failed to load payments for settlement check",
			zap.String("invoice_id", invoice.ID.String()), zap.Error(err))
		return
	}

	paid := decimal.Zero
	for i := range payments {
		paid = paid.Add(payments[i].Amount)
	}
	if paid.LessThan(invoice.TotalAmount) {
		return
	}

	if err := invoice.MarkPaid(); err != nil {
		return
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		s.logger.Warn("failed to mark invoice paid",
			zap.String("invoice_id", invoice.ID.String()), zap.Error(err))
	}
}

func (s *PaymentService) invoiceNumber(ctx context.Context, invoiceID uuid.UUID) string {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return ""
	}
	return invoice.InvoiceNumber
}

func (s *PaymentService) publishEvents(ctx context.Context, payment *ledger.Payment) {
	events := payment.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish payment events", zap.Error(err))
	}
	payment.ClearDomainEvents()
}
