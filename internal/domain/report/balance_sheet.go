package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSheetInputs are the ledger sums a balance sheet is computed from
type BalanceSheetInputs struct {
	CashInflows   decimal.Decimal
	TotalInvoiced decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalBilled   decimal.Decimal
}

// CurrentAssets is the current-assets block of a balance sheet
type CurrentAssets struct {
	Cash               float64 `json:"cash"`
	Bank               float64 `json:"bank"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	OtherCurrentAssets float64 `json:"other_current_assets"`
	TotalCurrentAssets float64 `json:"total_current_assets"`
}

// Assets is the assets side of a balance sheet
type Assets struct {
	CurrentAssets CurrentAssets `json:"current_assets"`
	OtherAssets   float64       `json:"other_assets"`
	FixedAssets   float64       `json:"fixed_assets"`
	TotalAssets   float64       `json:"total_assets"`
}

// Liabilities is the liabilities block of a balance sheet
type Liabilities struct {
	CurrentLiabilities  float64 `json:"current_liabilities"`
	LongTermLiabilities float64 `json:"long_term_liabilities"`
	OtherLiabilities    float64 `json:"other_liabilities"`
	TotalLiabilities    float64 `json:"total_liabilities"`
}

// LiabilitiesAndEquities is the liabilities-and-equities side of a balance sheet
type LiabilitiesAndEquities struct {
	Liabilities                 Liabilities `json:"liabilities"`
	Equities                    float64     `json:"equities"`
	TotalLiabilitiesAndEquities float64     `json:"total_liabilities_and_equities"`
}

// BalanceSheet is the full balance sheet response body. Untracked lines
// (other assets, fixed assets, long-term liabilities, equities) are
// explicit zeros rather than omitted fields. Monetary values are exact
// decimals internally and become floats only here, at the JSON boundary.
type BalanceSheet struct {
	Assets                 Assets                 `json:"assets"`
	LiabilitiesAndEquities LiabilitiesAndEquities `json:"liabilities_and_equities"`
	Time                   string                 `json:"time"`
	Basis                  string                 `json:"basis"`
	StartDate              string                 `json:"start_date"`
	EndDate                string                 `json:"end_date"`
}

// ComputeBalanceSheet assembles a balance sheet from ledger sums.
// Cash and bank both carry the full payment inflows (no sub-split is
// tracked), receivables never go negative, and every bill is treated as
// payable because bill payments are not tracked. The basis is echoed but
// never branches the arithmetic; accrual and cash produce identical
// figures (known limitation, kept deliberately).
func ComputeBalanceSheet(in BalanceSheetInputs, timeParam, basis string, start, end time.Time) *BalanceSheet {
	accountsReceivable := in.TotalInvoiced.Sub(in.TotalPaid)
	if accountsReceivable.IsNegative() {
		accountsReceivable = decimal.Zero
	}

	totalCurrentAssets := in.CashInflows.Add(accountsReceivable)
	totalAssets := totalCurrentAssets

	accountsPayable := in.TotalBilled
	totalLiabilities := accountsPayable
	totalLiabilitiesAndEquities := totalLiabilities

	return &BalanceSheet{
		Assets: Assets{
			CurrentAssets: CurrentAssets{
				Cash:               in.CashInflows.InexactFloat64(),
				Bank:               in.CashInflows.InexactFloat64(),
				AccountsReceivable: accountsReceivable.InexactFloat64(),
				OtherCurrentAssets: 0,
				TotalCurrentAssets: totalCurrentAssets.InexactFloat64(),
			},
			OtherAssets: 0,
			FixedAssets: 0,
			TotalAssets: totalAssets.InexactFloat64(),
		},
		LiabilitiesAndEquities: LiabilitiesAndEquities{
			Liabilities: Liabilities{
				CurrentLiabilities:  accountsPayable.InexactFloat64(),
				LongTermLiabilities: 0,
				OtherLiabilities:    0,
				TotalLiabilities:    totalLiabilities.InexactFloat64(),
			},
			Equities:                    0,
			TotalLiabilitiesAndEquities: totalLiabilitiesAndEquities.InexactFloat64(),
		},
		Time:      timeParam,
		Basis:     basis,
		StartDate: start.Format(time.DateOnly),
		EndDate:   end.Format(time.DateOnly),
	}
}
