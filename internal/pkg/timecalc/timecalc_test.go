package timecalc

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func num(f float64) *float64 { return &f }

func tuesday() time.Time { return time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC) }

func saturday() time.Time { return time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC) }

func hoursOf(p *float64) float64 {
	if p == nil {
		return -1
	}
	return *p
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"26:30", 26*60 + 30, false},
		{"9:05", 545, false},
		{"48:00", 0, true},
		{"09:60", 0, true},
		{"0900", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestActiveTime(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want *float64
	}{
		{"regular day", Input{Date: tuesday(), StartTime: str("09:00"), EndTime: str("18:00"), Rest: num(1)}, num(8)},
		{"no rest", Input{Date: tuesday(), StartTime: str("09:00"), EndTime: str("12:30")}, num(3.5)},
		{"start equals end", Input{Date: tuesday(), StartTime: str("09:00"), EndTime: str("09:00")}, num(0)},
		{"end before start", Input{Date: tuesday(), StartTime: str("18:00"), EndTime: str("09:00")}, num(0)},
		{"rest exceeds span", Input{Date: tuesday(), StartTime: str("09:00"), EndTime: str("10:00"), Rest: num(2)}, num(0)},
		{"missing end", Input{Date: tuesday(), StartTime: str("09:00")}, nil},
		{"missing start", Input{Date: tuesday(), EndTime: str("18:00")}, nil},
		{"empty strings", Input{Date: tuesday(), StartTime: str(""), EndTime: str("")}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ActiveTime(c.in)
			if c.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *c.want, *got, 1e-9)
		})
	}
}

func TestOverTime(t *testing.T) {
	in := Input{Date: tuesday(), StartTime: str("09:00"), EndTime: str("20:30"), Rest: num(1)}
	assert.InDelta(t, 2.5, hoursOf(OverTime(in, DefaultPolicy, nil)), 1e-9)

	in.EndTime = str("17:00")
	assert.InDelta(t, 0, hoursOf(OverTime(in, DefaultPolicy, nil)), 1e-9)

	weekend := Input{Date: saturday(), StartTime: str("09:00"), EndTime: str("20:00"), Rest: num(1)}
	assert.InDelta(t, 0, hoursOf(OverTime(weekend, DefaultPolicy, nil)), 1e-9, "legal holidays have no overtime")

	assert.Nil(t, OverTime(Input{Date: tuesday()}, DefaultPolicy, nil))
}

func TestLateNightOverTime(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		rest  float64
		want  float64
	}{
		{"day shift", "09:00", "18:00", 1, 0},
		{"until 23:30", "13:00", "23:30", 1, 1.5},
		{"overnight", "20:00", "27:00", 1, 5},
		{"early morning", "04:00", "09:00", 0, 1},
		{"past window end", "21:00", "30:00", 0, 7},
		{"capped by active", "22:00", "23:00", 0.5, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := Input{Date: tuesday(), StartTime: str(c.start), EndTime: str(c.end), Rest: num(c.rest)}
			assert.InDelta(t, c.want, hoursOf(LateNightOverTime(in, DefaultPolicy)), 1e-9)
		})
	}
	assert.Nil(t, LateNightOverTime(Input{Date: tuesday(), StartTime: str("22:00")}, DefaultPolicy))
}

func TestLateNightOverTime_WindowWithinDay(t *testing.T) {
	early := Policy{StandardHours: 8, LateNightStart: 0, LateNightEnd: 5 * 60}
	cases := []struct {
		name  string
		start string
		end   string
		rest  float64
		want  float64
	}{
		{"day shift", "09:00", "18:00", 1, 0},
		{"early morning", "03:00", "10:00", 0, 2},
		{"overnight", "22:00", "27:00", 0, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := Input{Date: tuesday(), StartTime: str(c.start), EndTime: str(c.end), Rest: num(c.rest)}
			assert.InDelta(t, c.want, hoursOf(LateNightOverTime(in, early)), 1e-9)
		})
	}
}

func TestLateNightOverTime_EmptyWindow(t *testing.T) {
	none := Policy{StandardHours: 8, LateNightStart: 22 * 60, LateNightEnd: 22 * 60}
	in := Input{Date: tuesday(), StartTime: str("20:00"), EndTime: str("27:00"), Rest: num(1)}
	assert.InDelta(t, 0, hoursOf(LateNightOverTime(in, none)), 1e-9)
}

func TestLegalHolidayActiveTime(t *testing.T) {
	cal := holiday.Set{}
	cal.Add(time.Date(2024, time.October, 14, 0, 0, 0, 0, time.UTC), "Sports Day")

	in := Input{StartTime: str("10:00"), EndTime: str("15:00"), Rest: num(1)}

	in.Date = tuesday()
	assert.InDelta(t, 0, hoursOf(LegalHolidayActiveTime(in, cal)), 1e-9)

	in.Date = saturday()
	assert.InDelta(t, 4, hoursOf(LegalHolidayActiveTime(in, cal)), 1e-9)

	in.Date = time.Date(2024, time.October, 14, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 4, hoursOf(LegalHolidayActiveTime(in, cal)), 1e-9)

	in.Date = time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 4, hoursOf(LegalHolidayActiveTime(in, cal)), 1e-9, "year-end closure")
}

func TestCalculate_MissingTimesAreNil(t *testing.T) {
	r := Calculate(Input{Date: tuesday(), Rest: num(1)}, DefaultPolicy, nil)
	assert.Nil(t, r.ActiveTime)
	assert.Nil(t, r.OverTime)
	assert.Nil(t, r.LateNightOverTime)
	assert.Nil(t, r.LegalHolidayActiveTime)
}

func TestCalculate_NeverNegative(t *testing.T) {
	starts := []string{"00:00", "05:00", "09:00", "22:00", "30:00"}
	ends := []string{"00:00", "04:59", "09:00", "18:00", "23:59", "29:00", "47:59"}
	rests := []float64{0, 0.5, 1, 12}
	for _, s := range starts {
		for _, e := range ends {
			for _, r := range rests {
				res := Calculate(Input{Date: saturday(), StartTime: str(s), EndTime: str(e), Rest: num(r)}, DefaultPolicy, nil)
				for _, v := range []*float64{res.ActiveTime, res.OverTime, res.LateNightOverTime, res.LegalHolidayActiveTime} {
					require.NotNil(t, v)
					assert.GreaterOrEqual(t, *v, 0.0, "%s-%s rest %v", s, e, r)
				}
				assert.LessOrEqual(t, *res.LateNightOverTime, *res.ActiveTime)
			}
		}
	}
}
