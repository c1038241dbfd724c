package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo []holiday.Holiday

func (s stubRepo) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range s {
		if !h.Date.Before(from) && h.Date.Before(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func TestCalendar(t *testing.T) {
	sportsDay := time.Date(2024, 10, 14, 0, 0, 0, 0, time.UTC)
	svc := NewHolidayService(stubRepo{
		{Date: sportsDay, Name: "Sports Day"},
		{Date: time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC), Name: "Culture Day"},
	})

	cal, err := svc.Calendar(context.Background(), time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, cal.IsPublicHoliday(sportsDay))
	assert.Equal(t, "Sports Day", cal.Name(sportsDay))
	assert.False(t, cal.IsPublicHoliday(time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)))
}
