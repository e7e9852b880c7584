package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProfitLoss(t *testing.T) {
	invID := uuid.New()
	billID := uuid.New()

	figures := ComputeProfitLoss(ProfitLossInputs{
		OperatingIncome:  decimal.NewFromInt(1000),
		CostOfGoodsSold:  decimal.NewFromInt(300),
		PaymentsReceived: decimal.NewFromInt(400),
		Invoices: []InvoiceLine{
			{
				ID:            invID,
				InvoiceNumber: "INV-001",
				Date:          date(2024, time.June, 5),
				Customer:      "Acme Traders",
				TotalAmount:   decimal.NewFromInt(1000),
			},
		},
		Bills: []BillLine{
			{
				ID:          billID,
				BillNumber:  "BILL-001",
				Date:        date(2024, time.June, 7),
				Vendor:      "Prime Supplies",
				TotalAmount: decimal.NewFromInt(300),
			},
		},
	})

	assert.Equal(t, 1000.0, figures.OperatingIncome)
	assert.Equal(t, 300.0, figures.CostOfGoodsSold)
	assert.Equal(t, 700.0, figures.GrossProfit)
	assert.Equal(t, 0.0, figures.OperatingExpense)
	assert.Equal(t, 700.0, figures.OperatingProfit)
	assert.Equal(t, 700.0, figures.NetProfitLoss)
	assert.Equal(t, 400.0, figures.PaymentsReceived)

	require.Len(t, figures.InvoiceBreakdown, 1)
	assert.Equal(t, invID.String(), figures.InvoiceBreakdown[0].ID)
	assert.Equal(t, "INV-001", figures.InvoiceBreakdown[0].InvoiceNumber)
	assert.Equal(t, "2024-06-05", figures.InvoiceBreakdown[0].Date)
	assert.Equal(t, "Acme Traders", figures.InvoiceBreakdown[0].Customer)
	assert.Equal(t, 1000.0, figures.InvoiceBreakdown[0].TotalAmount)

	require.Len(t, figures.BillBreakdown, 1)
	assert.Equal(t, "BILL-001", figures.BillBreakdown[0].BillNumber)
	assert.Equal(t, "Prime Supplies", figures.BillBreakdown[0].Vendor)
}

func TestComputeProfitLoss_NegativeNet(t *testing.T) {
	figures := ComputeProfitLoss(ProfitLossInputs{
		OperatingIncome: decimal.NewFromInt(100),
		CostOfGoodsSold: decimal.NewFromInt(250),
		SummaryOnly:     true,
	})

	assert.Equal(t, -150.0, figures.GrossProfit)
	assert.Equal(t, -150.0, figures.NetProfitLoss)
}

func TestComputeProfitLoss_SummaryOnlyNilBreakdowns(t *testing.T) {
	figures := ComputeProfitLoss(ProfitLossInputs{
		OperatingIncome: decimal.NewFromInt(500),
		Invoices:        []InvoiceLine{{ID: uuid.New(), InvoiceNumber: "INV-002", Date: date(2024, time.June, 1)}},
		SummaryOnly:     true,
	})

	assert.Nil(t, figures.InvoiceBreakdown)
	assert.Nil(t, figures.BillBreakdown)
}

func TestComputeProfitLoss_EmptyLedgerBreakdownsAreEmptyNotNil(t *testing.T) {
	figures := ComputeProfitLoss(ProfitLossInputs{})

	assert.NotNil(t, figures.InvoiceBreakdown)
	assert.NotNil(t, figures.BillBreakdown)
	assert.Empty(t, figures.InvoiceBreakdown)
	assert.Empty(t, figures.BillBreakdown)
}
