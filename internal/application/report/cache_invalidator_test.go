package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/report"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/openbooks/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func transactionEvent(eventType string, date time.Time) *ledger.TransactionEvent {
	return &ledger.TransactionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Invoice", uuid.New()),
		Date:            date,
		Amount:          decimal.NewFromInt(100),
	}
}

func TestCacheInvalidator_DropsReportNamespace(t *testing.T) {
	memory := cache.NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, memory.Set(ctx, report.CacheKeyPrefix+"balance_sheet:Today:Accrual", "{}"))
	require.NoError(t, memory.Set(ctx, report.CacheKeyPrefix+"profit_loss:This Month", "{}"))
	require.NoError(t, memory.Set(ctx, "session:abc", "keep"))

	invalidator := NewCacheInvalidator(memory, zap.NewNop())

	event := transactionEvent(ledger.EventInvoiceCreated, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, invalidator.Handle(ctx, event))

	_, ok, err := memory.Get(ctx, report.CacheKeyPrefix+"balance_sheet:Today:Accrual")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = memory.Get(ctx, report.CacheKeyPrefix+"profit_loss:This Month")
	require.NoError(t, err)
	assert.False(t, ok)

	// Entries outside the report namespace survive.
	value, ok, err := memory.Get(ctx, "session:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "keep", value)
}

func TestCacheInvalidator_ZeroDateIgnored(t *testing.T) {
	memory := cache.NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, memory.Set(ctx, report.CacheKeyPrefix+"balance_sheet:Today:Accrual", "{}"))

	invalidator := NewCacheInvalidator(memory, zap.NewNop())

	event := transactionEvent(ledger.EventInvoiceUpdated, time.Time{})
	require.NoError(t, invalidator.Handle(ctx, event))

	_, ok, err := memory.Get(ctx, report.CacheKeyPrefix+"balance_sheet:Today:Accrual")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCacheInvalidator_NonTransactionEventIgnored(t *testing.T) {
	memory := cache.NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, memory.Set(ctx, report.CacheKeyPrefix+"balance_sheet:Today:Accrual", "{}"))

	invalidator := NewCacheInvalidator(memory, zap.NewNop())

	base := shared.NewBaseDomainEvent("ledger.customer.created", "Customer", uuid.New())
	require.NoError(t, invalidator.Handle(ctx, &base))

	_, ok, err := memory.Get(ctx, report.CacheKeyPrefix+"balance_sheet:Today:Accrual")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCacheInvalidator_EventTypes(t *testing.T) {
	invalidator := NewCacheInvalidator(cache.NewMemoryCache(), zap.NewNop())

	types := invalidator.EventTypes()
	assert.Len(t, types, 9)
	assert.Contains(t, types, ledger.EventInvoiceCreated)
	assert.Contains(t, types, ledger.EventBillDeleted)
	assert.Contains(t, types, ledger.EventPaymentUpdated)
}
