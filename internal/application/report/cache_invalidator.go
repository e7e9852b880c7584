package report

import (
	"context"
	"time"

	"github.com/openbooks/backend/internal/domain/ledger"
	"github.com/openbooks/backend/internal/domain/report"
	"github.com/openbooks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CacheInvalidator subscribes to ledger transaction events and drops the
// entire report cache namespace on every invoice, bill, or payment write.
// The period classifier tells us exactly which cached windows the changed
// date could touch, but invalidation stays coarse on purpose: the whole
// namespace is cleared, and the classified periods are only logged. A
// narrower per-period eviction would be an undocumented behavior change.
type CacheInvalidator struct {
	cache  report.Cache
	logger *zap.Logger
	now    func() time.Time
}

// NewCacheInvalidator creates a new CacheInvalidator
func NewCacheInvalidator(cache report.Cache, logger *zap.Logger) *CacheInvalidator {
	return &CacheInvalidator{
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// EventTypes returns the ledger write events this handler reacts to
func (h *CacheInvalidator) EventTypes() []string {
	return ledger.TransactionEventTypes()
}

// Handle invalidates the report namespace for a ledger write event
func (h *CacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	txn, ok := event.(*ledger.TransactionEvent)
	if !ok {
		return nil
	}
	if txn.TransactionDate().IsZero() {
		// A record without a transaction date cannot have touched any
		// reporting window.
		return nil
	}

	periods := report.PeriodsFor(txn.TransactionDate(), h.now())
	h.logger.Debug("invalidating report cache",
		zap.String("event_type", event.EventType()),
		zap.String("transaction_date", txn.TransactionDate().Format(time.DateOnly)),
		zap.Any("affected_periods", periods),
	)

	return h.cache.InvalidatePrefix(ctx, report.CacheKeyPrefix)
}

// Ensure CacheInvalidator implements EventHandler
var _ shared.EventHandler = (*CacheInvalidator)(nil)
