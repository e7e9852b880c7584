package report

import (
	"context"
	"testing"
	"time"

	"github.com/openbooks/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSummaryRepo keeps one row per date, mirroring the upsert contract
type fakeSummaryRepo struct {
	rows    map[string]*report.DailySummary
	upserts int
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{rows: make(map[string]*report.DailySummary)}
}

func (r *fakeSummaryRepo) Upsert(_ context.Context, summary *report.DailySummary) error {
	r.upserts++
	r.rows[summary.Date.Format(time.DateOnly)] = summary
	return nil
}

func (r *fakeSummaryRepo) FindByDate(_ context.Context, date time.Time) (*report.DailySummary, error) {
	return r.rows[date.Format(time.DateOnly)], nil
}

func (r *fakeSummaryRepo) FindRange(_ context.Context, start, end time.Time) ([]report.DailySummary, error) {
	var out []report.DailySummary
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if row, ok := r.rows[d.Format(time.DateOnly)]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeSummaryRepo) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

var _ report.DailySummaryRepository = (*fakeSummaryRepo)(nil)

func newTestSummaryService(store *fakeLedgerStore, repo *fakeSummaryRepo) *DailySummaryService {
	return NewDailySummaryService(store, repo, zap.NewNop(),
		WithSummaryClock(fixedClock(2024, time.June, 15)))
}

func TestDailySummaryRun_EmptyLedger(t *testing.T) {
	repo := newFakeSummaryRepo()
	service := newTestSummaryService(newFakeLedgerStore(), repo)

	require.NoError(t, service.Run(context.Background()))

	// An empty ledger still yields a single zero row for today.
	require.Len(t, repo.rows, 1)
	row := repo.rows["2024-06-15"]
	require.NotNil(t, row)
	assert.True(t, row.InvoicesTotal.IsZero())
	assert.True(t, row.BillsTotal.IsZero())
	assert.True(t, row.PaymentsTotal.IsZero())
}

func TestDailySummaryRun_WalksFromEarliestTransaction(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-12"] = decimal.NewFromInt(100)
	store.payments["2024-06-13"] = decimal.NewFromInt(40)

	repo := newFakeSummaryRepo()
	service := newTestSummaryService(store, repo)

	require.NoError(t, service.Run(context.Background()))

	// One row per day from the earliest transaction through today.
	require.Len(t, repo.rows, 4)

	assert.True(t, repo.rows["2024-06-12"].InvoicesTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, repo.rows["2024-06-12"].PaymentsTotal.IsZero())
	assert.True(t, repo.rows["2024-06-13"].PaymentsTotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, repo.rows["2024-06-14"].InvoicesTotal.IsZero())
	assert.True(t, repo.rows["2024-06-15"].InvoicesTotal.IsZero())
}

func TestDailySummaryRun_Idempotent(t *testing.T) {
	store := newFakeLedgerStore()
	store.invoices["2024-06-14"] = decimal.NewFromInt(500)

	repo := newFakeSummaryRepo()
	service := newTestSummaryService(store, repo)

	require.NoError(t, service.Run(context.Background()))
	require.NoError(t, service.Run(context.Background()))

	require.Len(t, repo.rows, 2)
	assert.Equal(t, 4, repo.upserts)
	assert.True(t, repo.rows["2024-06-14"].InvoicesTotal.Equal(decimal.NewFromInt(500)))
}
