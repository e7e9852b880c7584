package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), "INV-001",
		time.Date(2024, time.June, 1, 15, 4, 5, 0, time.UTC),
		time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(1000))
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	inv := newTestInvoice(t)

	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	// Transaction dates are stored date-only.
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventInvoiceCreated, events[0].EventType())
}

func TestNewInvoice_Validation(t *testing.T) {
	customerID := uuid.New()
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		build    func() (*Invoice, error)
		wantCode string
	}{
		{
			name: "missing customer",
			build: func() (*Invoice, error) {
				return NewInvoice(uuid.Nil, "INV-001", date, due, decimal.NewFromInt(100))
			},
			wantCode: "INVALID_CUSTOMER",
		},
		{
			name: "negative amount",
			build: func() (*Invoice, error) {
				return NewInvoice(customerID, "INV-001", date, due, decimal.NewFromInt(-1))
			},
			wantCode: "INVALID_AMOUNT",
		},
		{
			name: "due date before invoice date",
			build: func() (*Invoice, error) {
				return NewInvoice(customerID, "INV-001", due, date, decimal.NewFromInt(100))
			},
			wantCode: "INVALID_DUE_DATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	t.Run("draft to sent to paid", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.MarkSent())
		require.NoError(t, inv.MarkPaid())
		assert.True(t, inv.IsPaid())
	})

	t.Run("sent invoice cannot be sent again", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.MarkSent())
		assert.Error(t, inv.MarkSent())
	})

	t.Run("cancelled invoice cannot be paid", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.Cancel())
		assert.Error(t, inv.MarkPaid())
	})

	t.Run("paid invoice cannot be cancelled", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.MarkPaid())
		assert.Error(t, inv.Cancel())
	})
}

func TestInvoiceUpdate_PublishesEvent(t *testing.T) {
	inv := newTestInvoice(t)
	inv.ClearDomainEvents()

	err := inv.Update(
		time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(1500), "revised")
	require.NoError(t, err)

	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(1500)))
	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventInvoiceUpdated, events[0].EventType())
}
