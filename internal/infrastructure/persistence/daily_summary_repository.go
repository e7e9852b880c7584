package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/openbooks/backend/internal/domain/report"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailySummaryRepository implements report.DailySummaryRepository
// using GORM
type GormDailySummaryRepository struct {
	db *gorm.DB
}

// NewGormDailySummaryRepository creates a new GormDailySummaryRepository
func NewGormDailySummaryRepository(db *gorm.DB) *GormDailySummaryRepository {
	return &GormDailySummaryRepository{db: db}
}

// Upsert inserts the summary or overwrites the totals for its date.
// The unique index on date makes concurrent runs converge on the last
// writer's totals instead of erroring.
func (r *GormDailySummaryRepository) Upsert(ctx context.Context, summary *report.DailySummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"invoices_total", "bills_total", "payments_total", "updated_at",
		}),
	}).Create(summary).Error
}

// FindByDate returns the summary for a date, or nil when absent
func (r *GormDailySummaryRepository) FindByDate(ctx context.Context, date time.Time) (*report.DailySummary, error) {
	var summary report.DailySummary
	err := r.db.WithContext(ctx).First(&summary, "date = ?", day(date)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// FindRange returns summaries with dates in [start, end], ordered by date
func (r *GormDailySummaryRepository) FindRange(ctx context.Context, start, end time.Time) ([]report.DailySummary, error) {
	var summaries []report.DailySummary
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", day(start), day(end)).
		Order("date").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Count returns the number of summary rows
func (r *GormDailySummaryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&report.DailySummary{}).Count(&count).Error
	return count, err
}

// Ensure GormDailySummaryRepository implements DailySummaryRepository
var _ report.DailySummaryRepository = (*GormDailySummaryRepository)(nil)
