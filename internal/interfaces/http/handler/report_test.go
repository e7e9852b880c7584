package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/openbooks/backend/internal/application/report"
	"github.com/openbooks/backend/internal/domain/report"
	"github.com/openbooks/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubLedgerStore returns fixed sums for every window
type stubLedgerStore struct {
	invoiced decimal.Decimal
	billed   decimal.Decimal
	paid     decimal.Decimal
}

func (s *stubLedgerStore) SumInvoices(ctx context.Context, start, end time.Time, customerID *uuid.UUID) (decimal.Decimal, error) {
	return s.invoiced, nil
}

func (s *stubLedgerStore) SumBills(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return s.billed, nil
}

func (s *stubLedgerStore) SumPayments(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	return s.paid, nil
}

func (s *stubLedgerStore) ListInvoices(ctx context.Context, start, end time.Time, customerID *uuid.UUID) ([]report.InvoiceLine, error) {
	return []report.InvoiceLine{}, nil
}

func (s *stubLedgerStore) ListBills(ctx context.Context, start, end time.Time) ([]report.BillLine, error) {
	return []report.BillLine{}, nil
}

func (s *stubLedgerStore) FirstInvoiceDate(ctx context.Context) (*time.Time, error) {
	return nil, nil
}

func (s *stubLedgerStore) FirstBillDate(ctx context.Context) (*time.Time, error) {
	return nil, nil
}

func (s *stubLedgerStore) FirstPaymentDate(ctx context.Context) (*time.Time, error) {
	return nil, nil
}

func newReportTestRouter(store *stubLedgerStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := reportapp.NewReportService(store, cache.NewMemoryCache(), zap.NewNop())
	h := NewReportHandler(service, nil)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func TestReportHandler_GetBalanceSheet(t *testing.T) {
	store := &stubLedgerStore{
		invoiced: decimal.NewFromInt(1000),
		billed:   decimal.NewFromInt(200),
		paid:     decimal.NewFromInt(400),
	}
	r := newReportTestRouter(store)

	t.Run("returns the raw report shape", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/balance-sheet?time=Today", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var sheet report.BalanceSheet
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sheet))
		assert.Equal(t, 400.0, sheet.Assets.CurrentAssets.Cash)
		assert.Equal(t, 400.0, sheet.Assets.CurrentAssets.Bank)
		assert.Equal(t, 600.0, sheet.Assets.CurrentAssets.AccountsReceivable)
		assert.Equal(t, 1000.0, sheet.Assets.CurrentAssets.TotalCurrentAssets)
		assert.Equal(t, sheet.Assets.TotalAssets, sheet.Assets.CurrentAssets.TotalCurrentAssets)
		assert.Equal(t, "Today", sheet.Time)

		// No envelope around report payloads
		assert.NotContains(t, w.Body.String(), `"success"`)
	})

	t.Run("invalid time window gets the exact error body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/balance-sheet?time=Next+Week", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "Invalid time parameter."}`, w.Body.String())
	})
}

func TestReportHandler_GetProfitAndLoss(t *testing.T) {
	store := &stubLedgerStore{
		invoiced: decimal.NewFromInt(1000),
		billed:   decimal.NewFromInt(300),
		paid:     decimal.NewFromInt(500),
	}
	r := newReportTestRouter(store)

	t.Run("computes net from income and cost", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/profit-loss?time=This+Month", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var result report.ProfitLossReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		require.NotNil(t, result.Report)
		assert.Equal(t, 1000.0, result.Report.OperatingIncome)
		assert.Equal(t, 300.0, result.Report.CostOfGoodsSold)
		assert.Equal(t, 700.0, result.Report.NetProfitLoss)
		assert.Equal(t, "This Month", result.Period)
	})

	t.Run("invalid time window gets the exact error body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/profit-loss?time=Tomorrow", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "Invalid time parameter."}`, w.Body.String())
	})

	t.Run("invalid compare_with is skipped, not rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/profit-loss?time=This+Month&compare_with=Whenever", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var result report.ProfitLossReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Empty(t, result.CompareWith)
		assert.Nil(t, result.CompareReport)
	})

	t.Run("rejects malformed customer_id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/profit-loss?customer_id=nope", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
