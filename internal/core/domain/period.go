package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// WeekStart is the first day of a Weekly period. Week keys follow ISO-8601
// week numbering, which always starts on Monday.
const WeekStart = time.Monday

// DateOf strips the time of day, keeping the calendar date as seen in t's
// location. The result is midnight UTC so dates compare with ==.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// PeriodKey identifies the cadence window containing date: the calendar date
// for Daily, the ISO week ("2024-W01") for Weekly.
func PeriodKey(date time.Time, f Frequency) string {
	switch f {
	case FrequencyWeekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return FormatDate(date)
	}
}

// nextPeriodKey is the key of the period right after the one containing date.
func nextPeriodKey(date time.Time, f Frequency) string {
	switch f {
	case FrequencyWeekly:
		return PeriodKey(date.AddDate(0, 0, 7), f)
	default:
		return PeriodKey(date.AddDate(0, 0, 1), f)
	}
}

// SamePeriod reports whether a and b fall in the same cadence window.
func SamePeriod(a, b time.Time, f Frequency) bool {
	return PeriodKey(a, f) == PeriodKey(b, f)
}
