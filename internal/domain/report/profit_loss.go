package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitLossInputs are the ledger sums and breakdown rows a profit and
// loss report is computed from. Breakdown slices are nil when the caller
// requested a summary-only report.
type ProfitLossInputs struct {
	OperatingIncome  decimal.Decimal
	CostOfGoodsSold  decimal.Decimal
	PaymentsReceived decimal.Decimal
	Invoices         []InvoiceLine
	Bills            []BillLine
	SummaryOnly      bool
}

// InvoiceBreakdownEntry is one invoice row in the profit and loss breakdown
type InvoiceBreakdownEntry struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	Date          string  `json:"date"`
	Customer      string  `json:"customer"`
	TotalAmount   float64 `json:"total_amount"`
}

// BillBreakdownEntry is one bill row in the profit and loss breakdown
type BillBreakdownEntry struct {
	ID          string  `json:"id"`
	BillNumber  string  `json:"bill_number"`
	Date        string  `json:"date"`
	Vendor      string  `json:"vendor"`
	TotalAmount float64 `json:"total_amount"`
}

// ProfitLossFigures is a single period's worth of profit and loss lines.
// Expense and non-operating lines are explicit zeros (untracked). The
// breakdown fields serialize as null for summary-only reports and as
// arrays (possibly empty) otherwise.
type ProfitLossFigures struct {
	OperatingIncome     float64                 `json:"operating_income"`
	CostOfGoodsSold     float64                 `json:"cost_of_goods_sold"`
	GrossProfit         float64                 `json:"gross_profit"`
	OperatingExpense    float64                 `json:"operating_expense"`
	OperatingProfit     float64                 `json:"operating_profit"`
	NonOperatingIncome  float64                 `json:"non_operating_income"`
	NonOperatingExpense float64                 `json:"non_operating_expense"`
	NetProfitLoss       float64                 `json:"net_profit_loss"`
	PaymentsReceived    float64                 `json:"payments_received"`
	InvoiceBreakdown    []InvoiceBreakdownEntry `json:"invoice_breakdown"`
	BillBreakdown       []BillBreakdownEntry    `json:"bill_breakdown"`
}

// ProfitLossReport is the full profit and loss response body, nesting the
// primary period figures and, when a comparison was requested, a second
// set of figures for the comparison window.
type ProfitLossReport struct {
	Period        string             `json:"period"`
	Basis         string             `json:"basis"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Report        *ProfitLossFigures `json:"report"`
	CompareWith   string             `json:"compare_with,omitempty"`
	CompareReport *ProfitLossFigures `json:"compare_report,omitempty"`
}

// ComputeProfitLoss assembles one period's figures from ledger sums.
// Gross profit is income minus cost of goods sold; the expense and
// non-operating lines are zero, so net profit equals gross profit. The
// arithmetic stays in exact decimals until the float conversion here at
// the output boundary.
func ComputeProfitLoss(in ProfitLossInputs) *ProfitLossFigures {
	grossProfit := in.OperatingIncome.Sub(in.CostOfGoodsSold)
	operatingExpense := decimal.Zero
	operatingProfit := grossProfit.Sub(operatingExpense)
	nonOperatingIncome := decimal.Zero
	nonOperatingExpense := decimal.Zero
	netProfitLoss := operatingProfit.Add(nonOperatingIncome).Sub(nonOperatingExpense)

	figures := &ProfitLossFigures{
		OperatingIncome:     in.OperatingIncome.InexactFloat64(),
		CostOfGoodsSold:     in.CostOfGoodsSold.InexactFloat64(),
		GrossProfit:         grossProfit.InexactFloat64(),
		OperatingExpense:    operatingExpense.InexactFloat64(),
		OperatingProfit:     operatingProfit.InexactFloat64(),
		NonOperatingIncome:  nonOperatingIncome.InexactFloat64(),
		NonOperatingExpense: nonOperatingExpense.InexactFloat64(),
		NetProfitLoss:       netProfitLoss.InexactFloat64(),
		PaymentsReceived:    in.PaymentsReceived.InexactFloat64(),
	}

	if !in.SummaryOnly {
		figures.InvoiceBreakdown = make([]InvoiceBreakdownEntry, 0, len(in.Invoices))
		for _, inv := range in.Invoices {
			figures.InvoiceBreakdown = append(figures.InvoiceBreakdown, InvoiceBreakdownEntry{
				ID:            inv.ID.String(),
				InvoiceNumber: inv.InvoiceNumber,
				Date:          inv.Date.Format(time.DateOnly),
				Customer:      inv.Customer,
				TotalAmount:   inv.TotalAmount.InexactFloat64(),
			})
		}
		figures.BillBreakdown = make([]BillBreakdownEntry, 0, len(in.Bills))
		for _, b := range in.Bills {
			figures.BillBreakdown = append(figures.BillBreakdown, BillBreakdownEntry{
				ID:          b.ID.String(),
				BillNumber:  b.BillNumber,
				Date:        b.Date.Format(time.DateOnly),
				Vendor:      b.Vendor,
				TotalAmount: b.TotalAmount.InexactFloat64(),
			})
		}
	}

	return figures
}
