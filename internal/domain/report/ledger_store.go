package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLine is a single invoice as it appears in a report breakdown
type InvoiceLine struct {
	ID            uuid.UUID
	InvoiceNumber string
	Date          time.Time
	Customer      string
	TotalAmount   decimal.Decimal
}

// BillLine is a single bill as it appears in a report breakdown
type BillLine struct {
	ID          uuid.UUID
	BillNumber  string
	Date        time.Time
	Vendor      string
	TotalAmount decimal.Decimal
}

// LedgerStore provides the aggregate queries the report calculators need.
// All windows are inclusive calendar-date ranges; a day-exact sum is a
// window whose start equals its end. Absence of matching rows is a zero
// sum, never an error.
type LedgerStore interface {
	// SumInvoices sums Invoice.total_amount over the window, optionally
	// restricted to a single customer.
	SumInvoices(ctx context.Context, start, end time.Time, customerID *uuid.UUID) (decimal.Decimal, error)

	// SumBills sums Bill.total_amount over the window.
	SumBills(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// SumPayments sums Payment.amount over the window.
	SumPayments(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// ListInvoices returns the per-invoice breakdown rows for the window,
	// optionally restricted to a single customer.
	ListInvoices(ctx context.Context, start, end time.Time, customerID *uuid.UUID) ([]InvoiceLine, error)

	// ListBills returns the per-bill breakdown rows for the window.
	ListBills(ctx context.Context, start, end time.Time) ([]BillLine, error)

	// FirstInvoiceDate returns the earliest invoice date, or nil when the
	// ledger holds no invoices. Same contract for bills and payments.
	FirstInvoiceDate(ctx context.Context) (*time.Time, error)
	FirstBillDate(ctx context.Context) (*time.Time, error)
	FirstPaymentDate(ctx context.Context) (*time.Time, error)
}
