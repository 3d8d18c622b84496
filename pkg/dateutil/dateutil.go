package dateutil

import (
	"time"
)

const (
	// DaysPerYear is the year length used for approximate age buckets
	DaysPerYear = 365

	// DaysPerMonth is the month length used for approximate age buckets
	DaysPerMonth = 30

	// MaxResidualMonths is the largest residual month bucket
	MaxResidualMonths = 11
)

// Date returns midnight UTC on the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from fromDate to toDate.
// Both dates are truncated to their UTC calendar day first.
func DaysBetween(fromDate, toDate time.Time) int {
	from := truncateDay(fromDate)
	to := truncateDay(toDate)
	return int(to.Sub(from).Hours() / 24)
}

// AddDays adds a number of days to a date
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

// ApproximateAge splits the day distance between birthDate and atDate into
// whole 365-day years and a residual bucket of 30-day months. The residual
// is capped at MaxResidualMonths since 360-364 leftover days would otherwise
// yield a thirteenth bucket. This is not calendar-accurate month arithmetic.
func ApproximateAge(birthDate, atDate time.Time) (years, months int) {
	days := DaysBetween(birthDate, atDate)
	if days < 0 {
		return 0, 0
	}
	years = days / DaysPerYear
	months = (days % DaysPerYear) / DaysPerMonth
	if months > MaxResidualMonths {
		months = MaxResidualMonths
	}
	return years, months
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
