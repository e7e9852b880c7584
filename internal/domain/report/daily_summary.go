package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailySummary is one day's pre-aggregated transaction totals. It is a
// write-only side table today: live reports always recompute from the raw
// ledger, and the summaries exist for a future historical consumer.
type DailySummary struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date          time.Time       `gorm:"type:date;not null;uniqueIndex"`
	InvoicesTotal decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	BillsTotal    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PaymentsTotal decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (DailySummary) TableName() string {
	return "daily_summaries"
}

// NewDailySummary creates a summary row for one day
func NewDailySummary(date time.Time, invoicesTotal, billsTotal, paymentsTotal decimal.Decimal) *DailySummary {
	now := time.Now()
	return &DailySummary{
		ID:            uuid.New(),
		Date:          day(date),
		InvoicesTotal: invoicesTotal,
		BillsTotal:    billsTotal,
		PaymentsTotal: paymentsTotal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// DailySummaryRepository persists daily summary rows
type DailySummaryRepository interface {
	// Upsert atomically inserts or fully overwrites the row for the
	// summary's date. Concurrent upserts for the same date must not lose
	// updates.
	Upsert(ctx context.Context, summary *DailySummary) error

	// FindByDate returns the summary for a date, or nil when absent
	FindByDate(ctx context.Context, date time.Time) (*DailySummary, error)

	// FindRange returns summaries with dates in [start, end], ordered by date
	FindRange(ctx context.Context, start, end time.Time) ([]DailySummary, error)

	// Count returns the number of summary rows
	Count(ctx context.Context) (int64, error)
}
