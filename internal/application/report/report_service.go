package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/report"
	"go.uber.org/zap"
)

const (
	// DefaultBalanceSheetTime is used when no time parameter is given
	DefaultBalanceSheetTime = "Today"
	// DefaultProfitLossTime is used when no time parameter is given
	DefaultProfitLossTime = "This Month"
	// DefaultBasis is used when no basis parameter is given
	DefaultBasis = "Accrual"
)

// ReportService computes balance sheet and profit and loss reports from
// the ledger store, caching rendered payloads under the report namespace.
// Each request recomputes from scratch on a cache miss; there is no other
// cross-request state.
type ReportService struct {
	store  report.LedgerStore
	cache  report.Cache
	logger *zap.Logger
	now    func() time.Time
}

// ReportServiceOption configures a ReportService
type ReportServiceOption func(*ReportService)

// WithClock overrides the service clock, mainly for tests
func WithClock(now func() time.Time) ReportServiceOption {
	return func(s *ReportService) {
		s.now = now
	}
}

// NewReportService creates a new ReportService
func NewReportService(store report.LedgerStore, cache report.Cache, logger *zap.Logger, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		store:  store,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetBalanceSheet computes the balance sheet for the requested window.
// The basis is echoed into the result but never changes the figures.
func (s *ReportService) GetBalanceSheet(ctx context.Context, timeParam, basis string) (*report.BalanceSheet, error) {
	if timeParam == "" {
		timeParam = DefaultBalanceSheetTime
	}
	if basis == "" {
		basis = DefaultBasis
	}

	key := fmt.Sprintf("%sbalance_sheet:%s:%s", report.CacheKeyPrefix, timeParam, basis)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var sheet report.BalanceSheet
		if err := json.Unmarshal([]byte(cached), &sheet); err == nil {
			return &sheet, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	start, end, err := report.ResolveBalanceSheetWindow(timeParam, s.now())
	if err != nil {
		return nil, err
	}

	cashInflows, err := s.store.SumPayments(ctx, start, end)
	if err != nil {
		return nil, err
	}
	totalInvoiced, err := s.store.SumInvoices(ctx, start, end, nil)
	if err != nil {
		return nil, err
	}
	totalBilled, err := s.store.SumBills(ctx, start, end)
	if err != nil {
		return nil, err
	}

	sheet := report.ComputeBalanceSheet(report.BalanceSheetInputs{
		CashInflows:   cashInflows,
		TotalInvoiced: totalInvoiced,
		TotalPaid:     cashInflows,
		TotalBilled:   totalBilled,
	}, timeParam, basis, start, end)

	s.cachePut(ctx, key, sheet)

	return sheet, nil
}

// ProfitLossQuery carries the profit and loss request parameters
type ProfitLossQuery struct {
	Time        string
	Basis       string
	CompareWith string
	CustomerID  *uuid.UUID
	SummaryOnly bool
}

// GetProfitAndLoss computes the profit and loss report for the requested
// window, optionally alongside a second window for comparison. An invalid
// comparison label is ignored rather than rejected; only the primary time
// parameter is validated.
func (s *ReportService) GetProfitAndLoss(ctx context.Context, q ProfitLossQuery) (*report.ProfitLossReport, error) {
	if q.Time == "" {
		q.Time = DefaultProfitLossTime
	}
	if q.Basis == "" {
		q.Basis = DefaultBasis
	}

	key := s.profitLossCacheKey(q)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var result report.ProfitLossReport
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	}

	today := s.now()
	start, end, err := report.ResolveProfitLossWindow(q.Time, today)
	if err != nil {
		return nil, err
	}

	figures, err := s.profitLossFigures(ctx, start, end, q.CustomerID, q.SummaryOnly)
	if err != nil {
		return nil, err
	}

	result := &report.ProfitLossReport{
		Period:    q.Time,
		Basis:     q.Basis,
		StartDate: start.Format(time.DateOnly),
		EndDate:   end.Format(time.DateOnly),
		Report:    figures,
	}

	if q.CompareWith != "" && q.CompareWith != "None" {
		compareStart, compareEnd, err := report.ResolveProfitLossWindow(q.CompareWith, today)
		if err == nil {
			compareFigures, err := s.profitLossFigures(ctx, compareStart, compareEnd, q.CustomerID, q.SummaryOnly)
			if err != nil {
				return nil, err
			}
			result.CompareWith = q.CompareWith
			result.CompareReport = compareFigures
		}
	}

	s.cachePut(ctx, key, result)

	return result, nil
}

// profitLossFigures computes one window's worth of profit and loss lines.
// The customer filter narrows operating income and the invoice breakdown
// only; bills and payments have no customer dimension.
func (s *ReportService) profitLossFigures(ctx context.Context, start, end time.Time, customerID *uuid.UUID, summaryOnly bool) (*report.ProfitLossFigures, error) {
	operatingIncome, err := s.store.SumInvoices(ctx, start, end, customerID)
	if err != nil {
		return nil, err
	}
	costOfGoodsSold, err := s.store.SumBills(ctx, start, end)
	if err != nil {
		return nil, err
	}
	paymentsReceived, err := s.store.SumPayments(ctx, start, end)
	if err != nil {
		return nil, err
	}

	inputs := report.ProfitLossInputs{
		OperatingIncome:  operatingIncome,
		CostOfGoodsSold:  costOfGoodsSold,
		PaymentsReceived: paymentsReceived,
		SummaryOnly:      summaryOnly,
	}

	if !summaryOnly {
		if inputs.Invoices, err = s.store.ListInvoices(ctx, start, end, customerID); err != nil {
			return nil, err
		}
		if inputs.Bills, err = s.store.ListBills(ctx, start, end); err != nil {
			return nil, err
		}
	}

	return report.ComputeProfitLoss(inputs), nil
}

func (s *ReportService) profitLossCacheKey(q ProfitLossQuery) string {
	customer := "all"
	if q.CustomerID != nil {
		customer = q.CustomerID.String()
	}
	compare := q.CompareWith
	if compare == "" {
		compare = "None"
	}
	return fmt.Sprintf("%sprofit_loss:%s:%s:%s:%s:%t",
		report.CacheKeyPrefix, q.Time, q.Basis, compare, customer, q.SummaryOnly)
}

// cacheGet reads a cached payload; cache failures degrade to a miss
func (s *ReportService) cacheGet(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, ok
}

// cachePut stores a rendered payload; cache failures are logged, never
// surfaced, since every figure can be recomputed from the ledger
func (s *ReportService) cachePut(ctx context.Context, key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("report payload not cacheable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data)); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
