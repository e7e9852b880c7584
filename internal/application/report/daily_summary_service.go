package report

import (
	"context"
	"time"

	"github.com/openbooks/backend/internal/domain/report"
	"go.uber.org/zap"
)

// DailySummaryService walks the ledger from its earliest transaction date
// to today and upserts one pre-aggregated summary row per day. The walk
// is idempotent: every run fully overwrites each day's totals, so
// re-running never accumulates drift. It is invoked on a daily schedule
// and by an explicit administrative trigger, and is callable
// synchronously in tests.
type DailySummaryService struct {
	store     report.LedgerStore
	summaries report.DailySummaryRepository
	logger    *zap.Logger
	now       func() time.Time
}

// DailySummaryOption configures a DailySummaryService
type DailySummaryOption func(*DailySummaryService)

// WithSummaryClock overrides the service clock, mainly for tests
func WithSummaryClock(now func() time.Time) DailySummaryOption {
	return func(s *DailySummaryService) {
		s.now = now
	}
}

// NewDailySummaryService creates a new DailySummaryService
func NewDailySummaryService(store report.LedgerStore, summaries report.DailySummaryRepository, logger *zap.Logger, opts ...DailySummaryOption) *DailySummaryService {
	s := &DailySummaryService{
		store:     store,
		summaries: summaries,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run aggregates every day from the earliest transaction to today.
// Each missing transaction kind defaults its first date to today, so an
// entirely empty ledger still produces one zero row for today.
func (s *DailySummaryService) Run(ctx context.Context) error {
	today := dayOf(s.now())

	minDate, err := s.earliestTransactionDate(ctx, today)
	if err != nil {
		return err
	}

	days := 0
	for current := minDate; !current.After(today); current = current.AddDate(0, 0, 1) {
		invoicesTotal, err := s.store.SumInvoices(ctx, current, current, nil)
		if err != nil {
			return err
		}
		billsTotal, err := s.store.SumBills(ctx, current, current)
		if err != nil {
			return err
		}
		paymentsTotal, err := s.store.SumPayments(ctx, current, current)
		if err != nil {
			return err
		}

		summary := report.NewDailySummary(current, invoicesTotal, billsTotal, paymentsTotal)
		if err := s.summaries.Upsert(ctx, summary); err != nil {
			return err
		}
		days++
	}

	s.logger.Info("daily summaries aggregated",
		zap.String("from", minDate.Format(time.DateOnly)),
		zap.String("to", today.Format(time.DateOnly)),
		zap.Int("days", days),
	)

	return nil
}

func (s *DailySummaryService) earliestTransactionDate(ctx context.Context, today time.Time) (time.Time, error) {
	min := today

	firsts := []func(context.Context) (*time.Time, error){
		s.store.FirstInvoiceDate,
		s.store.FirstBillDate,
		s.store.FirstPaymentDate,
	}
	for _, first := range firsts {
		d, err := first(ctx)
		if err != nil {
			return time.Time{}, err
		}
		if d != nil && dayOf(*d).Before(min) {
			min = dayOf(*d)
		}
	}

	return min, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
