package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/report"
	"github.com/openbooks/backend/internal/domain/shared"
	"github.com/openbooks/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLedgerStore holds per-day totals keyed by "2006-01-02" date strings
type fakeLedgerStore struct {
	invoices map[string]decimal.Decimal
	bills    map[string]decimal.Decimal
	payments map[string]decimal.Decimal

	invoiceLines []report.InvoiceLine
	billLines    []report.BillLine

	sumCalls       int
	lastCustomerID *uuid.UUID
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		invoices: make(map[string]decimal.Decimal),
		bills:    make(map[string]decimal.Decimal),
		payments: make(map[string]decimal.Decimal),
	}
}

func sumRange(m map[string]decimal.Decimal, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for k, v := range m {
		d, _ := time.Parse(time.DateOnly, k)
		if !d.Before(start) && !d.After(end) {
			total = total.Add(v)
		}
	}
	return total
}

func firstDate(m map[string]decimal.Decimal) *time.Time {
	var min *time.Time
	for k := range m {
		d, _ := time.Parse(time.DateOnly, k)
		if min == nil || d.Before(*min) {
			day := d
			min = &day
		}
	}
	return min
}

func (s *fakeLedgerStore) SumInvoices(_ context.Context, start, end time.Time, customerID *uuid.UUID) (decimal.Decimal, error) {
	s.sumCalls++
	s.lastCustomerID = customerID
	return sumRange(s.invoices, start, end), nil
}

func (s *fakeLedgerStore) SumBills(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	s.sumCalls++
	return sumRange(s.bills, start, end), nil
}

func (s *fakeLedgerStore) SumPayments(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	s.sumCalls++
	return sumRange(s.payments, start, end), nil
}

func (s *fakeLedgerStore) ListInvoices(_ context.Context, start, end time.Time, _ *uuid.UUID) ([]report.InvoiceLine, error) {
	var lines []report.InvoiceLine
	for _, line := range s.invoiceLines {
		if !line.Date.Before(start) && !line.Date.After(end) {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (s *fakeLedgerStore) ListBills(_ context.Context, start, end time.Time) ([]report.BillLine, error) {
	var lines []report.BillLine
	for _, line := range s.billLines {
		if !line.Date.Before(start) && !line.Date.After(end) {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (s *fakeLedgerStore) FirstInvoiceDate(context.Context) (*time.Time, error) {
	return firstDate(s.invoices), nil
}

func (s *fakeLedgerStore) FirstBillDate(context.Context) (*time.Time, error) {
	return firstDate(s.bills), nil
}

func (s *fakeLedgerStore) FirstPaymentDate(context.Context) (*time.Time, error) {
	return firstDate(s.payments), nil
}

var _ report.LedgerStore = (*fakeLedgerStore)(nil)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time {
		return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
	}
}

func newTestReportService(store *fakeLedgerStore) *ReportService {
	return NewReportService(store, cache.NewMemoryCache(), zap.NewNop(),
		WithClock(fixedClock(2024, time.June, 15)))
}

func TestGetBalanceSheet(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-10"] = decimal.NewFromInt(1000)
	store.payments["2024-06-12"] = decimal.NewFromInt(400)
	store.bills["2024-06-11"] = decimal.NewFromInt(250)

	service := newTestReportService(store)

	sheet, err := service.GetBalanceSheet(context.Background(), "This Month", "Accrual")
	require.NoError(t, err)

	assert.Equal(t, 400.0, sheet.Assets.CurrentAssets.Cash)
	assert.Equal(t, 600.0, sheet.Assets.CurrentAssets.AccountsReceivable)
	assert.Equal(t, 1000.0, sheet.Assets.CurrentAssets.TotalCurrentAssets)
	assert.Equal(t, 250.0, sheet.LiabilitiesAndEquities.Liabilities.TotalLiabilities)
	assert.Equal(t, "2024-06-01", sheet.StartDate)
	assert.Equal(t, "2024-06-15", sheet.EndDate)
}

func TestGetBalanceSheet_Defaults(t *testing.T) {
	store := newFakeLedgerStore()
	service := newTestReportService(store)

	sheet, err := service.GetBalanceSheet(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "Today", sheet.Time)
	assert.Equal(t, "Accrual", sheet.Basis)
	assert.Equal(t, "2024-06-15", sheet.StartDate)
	assert.Equal(t, "2024-06-15", sheet.EndDate)
}

func TestGetBalanceSheet_InvalidTime(t *testing.T) {
	service := newTestReportService(newFakeLedgerStore())

	_, err := service.GetBalanceSheet(context.Background(), "Next Week", "Accrual")
	assert.ErrorIs(t, err, shared.ErrInvalidTimeParam)
}

func TestGetBalanceSheet_CacheHit(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-10"] = decimal.NewFromInt(1000)
	service := newTestReportService(store)

	first, err := service.GetBalanceSheet(context.Background(), "This Month", "Accrual")
	require.NoError(t, err)
	callsAfterFirst := store.sumCalls

	// A later ledger write without invalidation must not be visible.
	store.invoices["2024-06-10"] = decimal.NewFromInt(9999)

	second, err := service.GetBalanceSheet(context.Background(), "This Month", "Accrual")
	require.NoError(t, err)

	assert.Equal(t, first.Assets, second.Assets)
	assert.Equal(t, callsAfterFirst, store.sumCalls)
}

func TestGetProfitAndLoss(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-05"] = decimal.NewFromInt(1000)
	store.bills["2024-06-07"] = decimal.NewFromInt(300)
	store.payments["2024-06-08"] = decimal.NewFromInt(400)
	store.invoiceLines = []report.InvoiceLine{{
		ID:            uuid.New(),
		InvoiceNumber: "INV-001",
		Date:          time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
		Customer:      "Acme Traders",
		TotalAmount:   decimal.NewFromInt(1000),
	}}
	store.billLines = []report.BillLine{{
		ID:          uuid.New(),
		BillNumber:  "BILL-001",
		Date:        time.Date(2024, time.June, 7, 0, 0, 0, 0, time.UTC),
		Vendor:      "Prime Supplies",
		TotalAmount: decimal.NewFromInt(300),
	}}

	service := newTestReportService(store)

	result, err := service.GetProfitAndLoss(context.Background(), ProfitLossQuery{Time: "This Month"})
	require.NoError(t, err)

	assert.Equal(t, "This Month", result.Period)
	assert.Equal(t, "Accrual", result.Basis)
	require.NotNil(t, result.Report)
	assert.Equal(t, 1000.0, result.Report.OperatingIncome)
	assert.Equal(t, 300.0, result.Report.CostOfGoodsSold)
	assert.Equal(t, 700.0, result.Report.NetProfitLoss)
	assert.Equal(t, 400.0, result.Report.PaymentsReceived)
	assert.Len(t, result.Report.InvoiceBreakdown, 1)
	assert.Len(t, result.Report.BillBreakdown, 1)
	assert.Nil(t, result.CompareReport)
}

func TestGetProfitAndLoss_SummaryOnly(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-05"] = decimal.NewFromInt(500)
	store.invoiceLines = []report.InvoiceLine{{
		ID:   uuid.New(),
		Date: time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
	}}

	service := newTestReportService(store)

	result, err := service.GetProfitAndLoss(context.Background(), ProfitLossQuery{
		Time:        "This Month",
		SummaryOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 500.0, result.Report.OperatingIncome)
	assert.Nil(t, result.Report.InvoiceBreakdown)
	assert.Nil(t, result.Report.BillBreakdown)
}

func TestGetProfitAndLoss_CompareWith(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-05"] = decimal.NewFromInt(1000)
	store.invoices["2024-05-20"] = decimal.NewFromInt(800)

	service := newTestReportService(store)

	result, err := service.GetProfitAndLoss(context.Background(), ProfitLossQuery{
		Time:        "This Month",
		CompareWith: "Last Month",
	})
	require.NoError(t, err)

	assert.Equal(t, "Last Month", result.CompareWith)
	require.NotNil(t, result.CompareReport)
	assert.Equal(t, 1000.0, result.Report.OperatingIncome)
	assert.Equal(t, 800.0, result.CompareReport.OperatingIncome)
}

func TestGetProfitAndLoss_InvalidCompareSkipped(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-05"] = decimal.NewFromInt(1000)

	service := newTestReportService(store)

	result, err := service.GetProfitAndLoss(context.Background(), ProfitLossQuery{
		Time:        "This Month",
		CompareWith: "Next Decade",
	})
	require.NoError(t, err)

	assert.Empty(t, result.CompareWith)
	assert.Nil(t, result.CompareReport)
	assert.Equal(t, 1000.0, result.Report.OperatingIncome)
}

func TestGetProfitAndLoss_InvalidTime(t *testing.T) {
	service := newTestReportService(newFakeLedgerStore())

	_, err := service.GetProfitAndLoss(context.Background(), ProfitLossQuery{Time: "Today"})
	assert.ErrorIs(t, err, shared.ErrInvalidTimeParam)
}

func TestGetProfitAndLoss_CustomerFilterReachesStore(t *testing.T) {
	store := newFakeLedgerStore()
	service := newTestReportService(store)

	customerID := uuid.New()
	_, err := service.GetProfitAndLoss(context.Background(), ProfitLossQuery{
		Time:       "This Month",
		CustomerID: &customerID,
	})
	require.NoError(t, err)

	require.NotNil(t, store.lastCustomerID)
	assert.Equal(t, customerID, *store.lastCustomerID)
}
