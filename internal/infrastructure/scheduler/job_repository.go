package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus is the lifecycle state of an aggregation run
type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailed  JobStatus = "failed"
)

// JobTriggerCron and JobTriggerManual distinguish scheduled runs from
// runs requested through the API.
const (
	JobTriggerCron   = "cron"
	JobTriggerManual = "manual"
)

// AggregationJobRecord is one daily aggregation run, kept for the
// status endpoint and for operators digging into failed runs.
type AggregationJobRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Trigger     string     `gorm:"type:varchar(20);not null"`
	Status      JobStatus  `gorm:"type:varchar(20);not null"`
	Error       string     `gorm:"type:text"`
	StartedAt   time.Time  `gorm:"not null"`
	CompletedAt *time.Time `gorm:""`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (AggregationJobRecord) TableName() string {
	return "aggregation_jobs"
}

// JobRepository persists aggregation run records
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// RecordStart inserts a running record and returns its ID
func (r *JobRepository) RecordStart(ctx context.Context, trigger string) (uuid.UUID, error) {
	now := time.Now()
	record := &AggregationJobRecord{
		ID:        uuid.New(),
		Trigger:   trigger,
		Status:    JobStatusRunning,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

// RecordComplete marks a run as finished
func (r *JobRepository) RecordComplete(ctx context.Context, jobID uuid.UUID, runErr error) error {
	now := time.Now()
	status := JobStatusSuccess
	errMsg := ""
	if runErr != nil {
		status = JobStatusFailed
		errMsg = runErr.Error()
	}
	return r.db.WithContext(ctx).
		Model(&AggregationJobRecord{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":       status,
			"error":        errMsg,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// LastRun returns the most recently started run, or nil when none exist
func (r *JobRepository) LastRun(ctx context.Context) (*AggregationJobRecord, error) {
	var record AggregationJobRecord
	err := r.db.WithContext(ctx).Order("started_at DESC").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
