package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// tickInterval is how often the scheduler checks whether the daily run
// is due
const tickInterval = time.Minute

// AggregationRunner is the unit of work the scheduler drives once a day
type AggregationRunner interface {
	Run(ctx context.Context) error
}

// Config holds daily scheduler configuration
type Config struct {
	Enabled    bool
	CronHour   int
	CronMinute int
	JobTimeout time.Duration
}

// DailyScheduler runs the ledger aggregation once a day at a configured
// time, and on demand through TriggerNow. Every run is recorded so the
// status endpoint can report the last outcome.
type DailyScheduler struct {
	config  Config
	runner  AggregationRunner
	jobRepo *JobRepository
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	nextRunAt time.Time
}

// NewDailyScheduler creates a new DailyScheduler
func NewDailyScheduler(config Config, runner AggregationRunner, jobRepo *JobRepository, logger *zap.Logger) *DailyScheduler {
	if config.JobTimeout == 0 {
		config.JobTimeout = 30 * time.Minute
	}
	return &DailyScheduler{
		config:  config,
		runner:  runner,
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// Start launches the scheduling loop. A disabled scheduler starts as a
// no-op so manual triggers still work.
func (s *DailyScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true

	if !s.config.Enabled {
		s.logger.Info("daily aggregation scheduler disabled")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.nextRunAt = s.nextAfter(time.Now())

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("daily aggregation scheduler started",
		zap.Int("hour", s.config.CronHour),
		zap.Int("minute", s.config.CronMinute),
		zap.Time("next_run_at", s.nextRunAt),
	)
	return nil
}

// Stop stops the scheduling loop and waits for an in-flight run
func (s *DailyScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("daily aggregation scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("daily aggregation scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerNow runs the aggregation immediately, recording it as a manual
// run. It blocks until the run finishes.
func (s *DailyScheduler) TriggerNow(ctx context.Context) error {
	return s.runOnce(ctx, JobTriggerManual)
}

// LastRun returns the most recent run record
func (s *DailyScheduler) LastRun(ctx context.Context) (*AggregationJobRecord, error) {
	return s.jobRepo.LastRun(ctx)
}

// NextRunAt returns when the next scheduled run is due; zero when the
// scheduler is disabled.
func (s *DailyScheduler) NextRunAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}

func (s *DailyScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.mu.Lock()
			due := !now.Before(s.nextRunAt)
			if due {
				s.nextRunAt = s.nextAfter(now)
			}
			s.mu.Unlock()

			if due {
				if err := s.runOnce(ctx, JobTriggerCron); err != nil {
					s.logger.Error("scheduled aggregation failed", zap.Error(err))
				}
			}
		}
	}
}

func (s *DailyScheduler) runOnce(ctx context.Context, trigger string) error {
	runCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	jobID, err := s.jobRepo.RecordStart(runCtx, trigger)
	if err != nil {
		return err
	}

	runErr := s.runner.Run(runCtx)
	if err := s.jobRepo.RecordComplete(runCtx, jobID, runErr); err != nil {
		s.logger.Warn("failed to record aggregation completion",
			zap.String("job_id", jobID.String()), zap.Error(err))
	}
	return runErr
}

// nextAfter computes the next scheduled time strictly after t
func (s *DailyScheduler) nextAfter(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), s.config.CronHour, s.config.CronMinute, 0, 0, t.Location())
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
