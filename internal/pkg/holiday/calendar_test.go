package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsFixedHoliday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want bool
	}{
		{date(2024, time.December, 29), false},
		{date(2024, time.December, 30), true},
		{date(2024, time.December, 31), true},
		{date(2025, time.January, 1), true},
		{date(2025, time.January, 4), true},
		{date(2025, time.January, 5), false},
		{date(2025, time.May, 1), false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsFixedHoliday(c.in), c.in.Format(dateLayout))
	}
}

func TestIsLegalHoliday(t *testing.T) {
	set := Set{}
	set.Add(date(2024, time.October, 14), "Sports Day")

	assert.True(t, IsLegalHoliday(date(2024, time.October, 12), set), "saturday")
	assert.True(t, IsLegalHoliday(date(2024, time.October, 13), set), "sunday")
	assert.True(t, IsLegalHoliday(date(2024, time.October, 14), set), "public holiday")
	assert.False(t, IsLegalHoliday(date(2024, time.October, 15), set))
	assert.False(t, IsLegalHoliday(date(2024, time.October, 14), nil), "nil checker ignores public holidays")
	assert.Equal(t, "Sports Day", set.Name(date(2024, time.October, 14)))
}

func TestBusinessDays(t *testing.T) {
	set := NewSet(map[time.Time]string{date(2024, time.October, 14): "Sports Day"})

	days := BusinessDays(date(2024, time.October, 20), set)

	// October 2024: 23 weekdays, minus the 14th.
	assert.Len(t, days, 22)
	assert.Equal(t, date(2024, time.October, 1), days[0])
	for _, d := range days {
		assert.NotEqual(t, date(2024, time.October, 14), d)
	}
}

func TestMonthDays(t *testing.T) {
	assert.Len(t, MonthDays(date(2024, time.February, 10)), 29)
	assert.Len(t, MonthDays(date(2025, time.February, 1)), 28)
}
