package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/openbooks/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerStore implements report.LedgerStore with aggregate queries
// over the invoices, bills, and payments tables. Sums run in SQL so the
// calculators never page through raw rows.
type GormLedgerStore struct {
	db *gorm.DB
}

// NewGormLedgerStore creates a new GormLedgerStore
func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{db: db}
}

// SumInvoices sums invoice totals over the window, optionally for one customer
func (s *GormLedgerStore) SumInvoices(ctx context.Context, start, end time.Time, customerID *uuid.UUID) (decimal.Decimal, error) {
	query := s.db.WithContext(ctx).
		Table("invoices").
		Select("COALESCE(SUM(total_amount), 0)").
		Where("invoice_date BETWEEN ? AND ?", day(start), day(end))
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	return scanSum(query)
}

// SumBills sums bill totals over the window
func (s *GormLedgerStore) SumBills(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := s.db.WithContext(ctx).
		Table("bills").
		Select("COALESCE(SUM(total_amount), 0)").
		Where("bill_date BETWEEN ? AND ?", day(start), day(end))
	return scanSum(query)
}

// SumPayments sums payment amounts over the window
func (s *GormLedgerStore) SumPayments(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := s.db.WithContext(ctx).
		Table("payments").
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", day(start), day(end))
	return scanSum(query)
}

// ListInvoices returns breakdown rows for the window, joined with the
// customer's display name.
func (s *GormLedgerStore) ListInvoices(ctx context.Context, start, end time.Time, customerID *uuid.UUID) ([]report.InvoiceLine, error) {
	query := s.db.WithContext(ctx).
		Table("invoices").
		Select("invoices.id, invoices.invoice_number, invoices.invoice_date AS date, customers.display_name AS customer, invoices.total_amount").
		Joins("LEFT JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.invoice_date BETWEEN ? AND ?", day(start), day(end)).
		Order("invoices.invoice_date, invoices.invoice_number")
	if customerID != nil {
		query = query.Where("invoices.customer_id = ?", *customerID)
	}

	var lines []report.InvoiceLine
	if err := query.Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ListBills returns breakdown rows for the window, joined with the
// vendor's name.
func (s *GormLedgerStore) ListBills(ctx context.Context, start, end time.Time) ([]report.BillLine, error) {
	var lines []report.BillLine
	err := s.db.WithContext(ctx).
		Table("bills").
		Select("bills.id, bills.bill_number, bills.bill_date AS date, vendors.name AS vendor, bills.total_amount").
		Joins("LEFT JOIN vendors ON vendors.id = bills.vendor_id").
		Where("bills.bill_date BETWEEN ? AND ?", day(start), day(end)).
		Order("bills.bill_date, bills.bill_number").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// FirstInvoiceDate returns the earliest invoice date, or nil for an
// empty table
func (s *GormLedgerStore) FirstInvoiceDate(ctx context.Context) (*time.Time, error) {
	return s.minDate(ctx, "invoices", "invoice_date")
}

// FirstBillDate returns the earliest bill date, or nil for an empty table
func (s *GormLedgerStore) FirstBillDate(ctx context.Context) (*time.Time, error) {
	return s.minDate(ctx, "bills", "bill_date")
}

// FirstPaymentDate returns the earliest payment date, or nil for an
// empty table
func (s *GormLedgerStore) FirstPaymentDate(ctx context.Context) (*time.Time, error) {
	return s.minDate(ctx, "payments", "date")
}

func (s *GormLedgerStore) minDate(ctx context.Context, table, column string) (*time.Time, error) {
	var min sql.NullTime
	err := s.db.WithContext(ctx).
		Table(table).
		Select("MIN(" + column + ")").
		Row().Scan(&min)
	if err != nil {
		return nil, err
	}
	if !min.Valid {
		return nil, nil
	}
	d := day(min.Time)
	return &d, nil
}

func scanSum(query *gorm.DB) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := query.Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Ensure GormLedgerStore implements report.LedgerStore
var _ report.LedgerStore = (*GormLedgerStore)(nil)
