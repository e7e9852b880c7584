package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCronSchedule parses a "minute hour * * *" cron expression down to
// the daily hour and minute the scheduler supports. Empty or partial
// expressions fall back to 02:00.
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 2
	minute = 0

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := strconv.Atoi(parts[0]); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := strconv.Atoi(parts[1]); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 2, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 2, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}
	return hour, minute, nil
}
