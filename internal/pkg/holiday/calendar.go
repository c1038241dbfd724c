package holiday

import (
	"time"
)

const dateLayout = "2006-01-02"

// Checker answers whether a date is a public holiday.
type Checker interface {
	IsPublicHoliday(date time.Time) bool
}

// Set is an in-memory public holiday calendar keyed by YYYY-MM-DD.
type Set map[string]string

// NewSet builds a Set from date/name pairs.
func NewSet(holidays map[time.Time]string) Set {
	s := make(Set, len(holidays))
	for d, name := range holidays {
		s[d.Format(dateLayout)] = name
	}
	return s
}

// Add registers a holiday.
func (s Set) Add(date time.Time, name string) {
	s[date.Format(dateLayout)] = name
}

// IsPublicHoliday implements Checker.
func (s Set) IsPublicHoliday(date time.Time) bool {
	_, ok := s[date.Format(dateLayout)]
	return ok
}

// Name returns the holiday name or "".
func (s Set) Name(date time.Time) string {
	return s[date.Format(dateLayout)]
}

// IsWeekend reports Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsFixedHoliday reports the company year-end/New-Year closure, Dec 30 through Jan 4.
func IsFixedHoliday(date time.Time) bool {
	switch date.Month() {
	case time.December:
		return date.Day() >= 30
	case time.January:
		return date.Day() <= 4
	}
	return false
}

// IsLegalHoliday reports a statutory rest day: weekend, public holiday or fixed holiday.
func IsLegalHoliday(date time.Time, c Checker) bool {
	if IsWeekend(date) || IsFixedHoliday(date) {
		return true
	}
	return c != nil && c.IsPublicHoliday(date)
}

// IsBusinessDay is the complement of IsLegalHoliday.
func IsBusinessDay(date time.Time, c Checker) bool {
	return !IsLegalHoliday(date, c)
}

// MonthDays returns every day of the month containing month, at midnight UTC.
func MonthDays(month time.Time) []time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// BusinessDays returns the business days of the month containing month.
func BusinessDays(month time.Time, c Checker) []time.Time {
	var days []time.Time
	for _, d := range MonthDays(month) {
		if IsBusinessDay(d, c) {
			days = append(days, d)
		}
	}
	return days
}
