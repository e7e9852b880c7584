package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockLedgerStore creates a GormLedgerStore with a mocked SQL connection
func newMockLedgerStore(t *testing.T) (*GormLedgerStore, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormLedgerStore(gormDB), mock, mockDB
}

func window() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
}

func TestGormLedgerStore_SumInvoices(t *testing.T) {
	t.Run("sums invoices in window", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		start, end := window()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "invoices" WHERE invoice_date BETWEEN \$1 AND \$2`).
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("1250.50"))

		sum, err := store.SumInvoices(context.Background(), start, end, nil)
		require.NoError(t, err)
		assert.Equal(t, "1250.5", sum.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("restricts to customer when given", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		start, end := window()
		customerID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "invoices" WHERE invoice_date BETWEEN \$1 AND \$2 AND customer_id = \$3`).
			WithArgs(start, end, customerID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("300"))

		sum, err := store.SumInvoices(context.Background(), start, end, &customerID)
		require.NoError(t, err)
		assert.Equal(t, "300", sum.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty window sums to zero", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		start, end := window()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "invoices"`).
			WithArgs(start, end).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

		sum, err := store.SumInvoices(context.Background(), start, end, nil)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestGormLedgerStore_SumPayments(t *testing.T) {
	store, mock, mockDB := newMockLedgerStore(t)
	defer mockDB.Close()

	start, end := window()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE date BETWEEN \$1 AND \$2`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("400.00"))

	sum, err := store.SumPayments(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, "400", sum.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedgerStore_ListInvoices(t *testing.T) {
	store, mock, mockDB := newMockLedgerStore(t)
	defer mockDB.Close()

	start, end := window()
	invoiceID := uuid.New()
	invoiceDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "invoice_number", "date", "customer", "total_amount"}).
		AddRow(invoiceID, "INV-001", invoiceDate, "Acme Corp", "1000.00")
	mock.ExpectQuery(`SELECT .+ FROM "invoices" LEFT JOIN customers ON customers\.id = invoices\.customer_id WHERE invoices\.invoice_date BETWEEN \$1 AND \$2`).
		WithArgs(start, end).
		WillReturnRows(rows)

	lines, err := store.ListInvoices(context.Background(), start, end, nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "INV-001", lines[0].InvoiceNumber)
	assert.Equal(t, "Acme Corp", lines[0].Customer)
	assert.Equal(t, "1000", lines[0].TotalAmount.String())
}

func TestGormLedgerStore_FirstInvoiceDate(t *testing.T) {
	t.Run("returns earliest date", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		earliest := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT MIN\(invoice_date\) FROM "invoices"`).
			WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(earliest))

		got, err := store.FirstInvoiceDate(context.Background())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, earliest, *got)
	})

	t.Run("empty ledger returns nil", func(t *testing.T) {
		store, mock, mockDB := newMockLedgerStore(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT MIN\(invoice_date\) FROM "invoices"`).
			WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))

		got, err := store.FirstInvoiceDate(context.Background())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
