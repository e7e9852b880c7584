package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeBalanceSheet(t *testing.T) {
	// 1000 invoiced, 400 paid: cash 400, receivable 600, assets 1000.
	sheet := ComputeBalanceSheet(BalanceSheetInputs{
		CashInflows:   decimal.NewFromInt(400),
		TotalInvoiced: decimal.NewFromInt(1000),
		TotalPaid:     decimal.NewFromInt(400),
		TotalBilled:   decimal.NewFromInt(250),
	}, "This Month", "accrual", date(2024, time.June, 1), date(2024, time.June, 15))

	ca := sheet.Assets.CurrentAssets
	assert.Equal(t, 400.0, ca.Cash)
	assert.Equal(t, 400.0, ca.Bank)
	assert.Equal(t, 600.0, ca.AccountsReceivable)
	assert.Equal(t, 0.0, ca.OtherCurrentAssets)
	assert.Equal(t, 1000.0, ca.TotalCurrentAssets)
	assert.Equal(t, 1000.0, sheet.Assets.TotalAssets)
	assert.Equal(t, 0.0, sheet.Assets.FixedAssets)

	liab := sheet.LiabilitiesAndEquities
	assert.Equal(t, 250.0, liab.Liabilities.CurrentLiabilities)
	assert.Equal(t, 250.0, liab.Liabilities.TotalLiabilities)
	assert.Equal(t, 0.0, liab.Equities)
	assert.Equal(t, 250.0, liab.TotalLiabilitiesAndEquities)

	assert.Equal(t, "This Month", sheet.Time)
	assert.Equal(t, "accrual", sheet.Basis)
	assert.Equal(t, "2024-06-01", sheet.StartDate)
	assert.Equal(t, "2024-06-15", sheet.EndDate)
}

func TestComputeBalanceSheet_OverpaidReceivableClampsToZero(t *testing.T) {
	sheet := ComputeBalanceSheet(BalanceSheetInputs{
		CashInflows:   decimal.NewFromInt(500),
		TotalInvoiced: decimal.NewFromInt(300),
		TotalPaid:     decimal.NewFromInt(500),
		TotalBilled:   decimal.Zero,
	}, "Today", "cash", date(2024, time.June, 15), date(2024, time.June, 15))

	assert.Equal(t, 0.0, sheet.Assets.CurrentAssets.AccountsReceivable)
	assert.Equal(t, 500.0, sheet.Assets.CurrentAssets.TotalCurrentAssets)
}

func TestComputeBalanceSheet_BasisDoesNotChangeFigures(t *testing.T) {
	in := BalanceSheetInputs{
		CashInflows:   decimal.NewFromInt(120),
		TotalInvoiced: decimal.NewFromInt(200),
		TotalPaid:     decimal.NewFromInt(120),
		TotalBilled:   decimal.NewFromInt(80),
	}
	start, end := date(2024, time.June, 1), date(2024, time.June, 15)

	accrual := ComputeBalanceSheet(in, "This Month", "accrual", start, end)
	cash := ComputeBalanceSheet(in, "This Month", "cash", start, end)

	assert.Equal(t, accrual.Assets, cash.Assets)
	assert.Equal(t, accrual.LiabilitiesAndEquities, cash.LiabilitiesAndEquities)
	assert.Equal(t, "accrual", accrual.Basis)
	assert.Equal(t, "cash", cash.Basis)
}
