package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Save(ctx context.Context, payment *ledger.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPaymentRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPaymentRepo) FindByInvoice(ctx context.Context, invoiceID uuid.UUID, filter shared.Filter) ([]ledger.Payment, error) {
	args := m.Called(ctx, invoiceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

type mockInvoiceRepo struct {
	mock.Mock
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) Save(ctx context.Context, invoice *ledger.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInvoiceRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInvoiceRepo) FindByNumber(ctx context.Context, number string) (*ledger.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]ledger.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, ...shared.DomainEvent) error { return nil }

func testInvoice(t *testing.T, total int64) *ledger.Invoice {
	t.Helper()
	invoice, err := ledger.NewInvoice(uuid.New(), "INV-100",
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(total))
	require.NoError(t, err)
	return invoice
}

func TestPaymentCreate_PartialPaymentLeavesInvoiceOpen(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	invoiceRepo := new(mockInvoiceRepo)
	service := NewPaymentService(paymentRepo, invoiceRepo, noopPublisher{}, zap.NewNop())

	invoice := testInvoice(t, 1000)
	invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Payment")).Return(nil)
	paymentRepo.On("FindByInvoice", mock.Anything, invoice.ID, mock.Anything).
		Return([]ledger.Payment{{Amount: decimal.NewFromInt(400)}}, nil)

	resp, err := service.Create(context.Background(), CreatePaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(400),
		Date:      time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		Method:    "bank_transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, 400.0, resp.Amount)
	assert.Equal(t, "INV-100", resp.InvoiceNumber)
	// Invoice stays below its total, so no settlement write happens.
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.NotEqual(t, ledger.InvoiceStatusPaid, invoice.Status)
}

func TestPaymentCreate_FullPaymentMarksInvoicePaid(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	invoiceRepo := new(mockInvoiceRepo)
	service := NewPaymentService(paymentRepo, invoiceRepo, noopPublisher{}, zap.NewNop())

	invoice := testInvoice(t, 1000)
	invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*ledger.Payment")).Return(nil)
	paymentRepo.On("FindByInvoice", mock.Anything, invoice.ID, mock.Anything).
		Return([]ledger.Payment{
			{Amount: decimal.NewFromInt(400)},
			{Amount: decimal.NewFromInt(600)},
		}, nil)
	invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

	_, err := service.Create(context.Background(), CreatePaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(600),
		Date:      time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
		Method:    "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.InvoiceStatusPaid, invoice.Status)
	invoiceRepo.AssertCalled(t, "Save", mock.Anything, invoice)
}

func TestPaymentCreate_CancelledInvoiceRejected(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	invoiceRepo := new(mockInvoiceRepo)
	service := NewPaymentService(paymentRepo, invoiceRepo, noopPublisher{}, zap.NewNop())

	invoice := testInvoice(t, 500)
	invoice.Status = ledger.InvoiceStatusCancelled
	invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)

	_, err := service.Create(context.Background(), CreatePaymentRequest{
		InvoiceID: invoice.ID,
		Amount:    decimal.NewFromInt(500),
		Date:      time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
