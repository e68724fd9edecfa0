package schedule

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for schedule dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for wall-clock times of day.
	TimeLayout = "15:04"
)

// Billing cycles understood by BillingEndDate.
const (
	CycleMonthly   = "monthly"
	CycleQuarterly = "quarterly"
	CycleAnnually  = "annually"
)

// EndTime adds durationMinutes to a wall-clock start time and returns the
// resulting time of day. The result wraps modulo 24h: an end time earlier
// than the start means the engagement runs past midnight into the next day.
func EndTime(startTime string, durationMinutes int) (string, error) {
	t, err := time.Parse(TimeLayout, startTime)
	if err != nil {
		return "", fmt.Errorf("parse start time %q: %w", startTime, err)
	}
	return t.Add(time.Duration(durationMinutes) * time.Minute).Format(TimeLayout), nil
}

// At combines a calendar date with a wall-clock time of day into a single
// instant in the date's location.
func At(date time.Time, timeOfDay string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time of day %q: %w", timeOfDay, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// HoursUntil reports how many hours remain until the scheduled date and time,
// negative if the moment is already in the past.
func HoursUntil(date time.Time, timeOfDay string, now time.Time) (float64, error) {
	at, err := At(date, timeOfDay)
	if err != nil {
		return 0, err
	}
	return at.Sub(now).Hours(), nil
}

// BillingEndDate advances a subscription start date by one billing interval:
// monthly +1 calendar month, quarterly +3, annually +1 year.
func BillingEndDate(start time.Time, cycle string) (time.Time, error) {
	switch cycle {
	case CycleMonthly:
		return addMonths(start, 1), nil
	case CycleQuarterly:
		return addMonths(start, 3), nil
	case CycleAnnually:
		return addMonths(start, 12), nil
	default:
		return time.Time{}, fmt.Errorf("unknown billing cycle %q", cycle)
	}
}

// addMonths advances t by n calendar months, clamping the day of month to the
// last valid day of the target month. time.AddDate normalizes overflow
// (Jan 31 + 1 month = Mar 2/3), which is the wrong rule for billing periods:
// a cycle started Jan 31 must end on the last day of February.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	y += total / 12
	m = time.Month(total%12 + 1)
	if last := daysIn(y, m); d > last {
		d = last
	}
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
