package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCronSchedule(t *testing.T) {
	t.Run("parses minute and hour", func(t *testing.T) {
		hour, minute, err := ParseCronSchedule("30 4 * * *")
		require.NoError(t, err)
		assert.Equal(t, 4, hour)
		assert.Equal(t, 30, minute)
	})

	t.Run("empty expression defaults to 02:00", func(t *testing.T) {
		hour, minute, err := ParseCronSchedule("")
		require.NoError(t, err)
		assert.Equal(t, 2, hour)
		assert.Equal(t, 0, minute)
	})

	t.Run("wildcards keep defaults", func(t *testing.T) {
		hour, minute, err := ParseCronSchedule("* * * * *")
		require.NoError(t, err)
		assert.Equal(t, 2, hour)
		assert.Equal(t, 0, minute)
	})

	t.Run("rejects out-of-range hour", func(t *testing.T) {
		_, _, err := ParseCronSchedule("0 24 * * *")
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range minute", func(t *testing.T) {
		_, _, err := ParseCronSchedule("60 2 * * *")
		assert.Error(t, err)
	})
}

func TestDailySchedulerNextAfter(t *testing.T) {
	s := &DailyScheduler{config: Config{CronHour: 2, CronMinute: 0}}

	t.Run("same day when before schedule time", func(t *testing.T) {
		now := time.Date(2026, 8, 28, 1, 30, 0, 0, time.UTC)
		next := s.nextAfter(now)
		assert.Equal(t, time.Date(2026, 8, 28, 2, 0, 0, 0, time.UTC), next)
	})

	t.Run("next day when past schedule time", func(t *testing.T) {
		now := time.Date(2026, 8, 28, 2, 0, 0, 0, time.UTC)
		next := s.nextAfter(now)
		assert.Equal(t, time.Date(2026, 8, 29, 2, 0, 0, 0, time.UTC), next)
	})

	t.Run("rolls over month boundary", func(t *testing.T) {
		now := time.Date(2026, 8, 31, 3, 0, 0, 0, time.UTC)
		next := s.nextAfter(now)
		assert.Equal(t, time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC), next)
	})
}
