package timehelper

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DateString formats t as 'YYYY-MM-DD'.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// NextWeekday returns midnight of the first day at or after from that falls
// on weekday, in from's location.
func NextWeekday(from time.Time, weekday time.Weekday) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	offset := (int(weekday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// WeeklyDates returns count dates, 7 days apart, starting at the first
// occurrence of weekday at or after from.
func WeeklyDates(from time.Time, weekday time.Weekday, count int) []string {
	first := NextWeekday(from, weekday)
	dates := make([]string, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, DateString(first.AddDate(0, 0, 7*i)))
	}
	return dates
}

// ParseWeekday resolves an English weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return time.Sunday, false
}
