// Package timecalc derives worked hours from a day's start, end and rest.
//
// All results are hours as *float64. A nil result means the day has no
// start/end pair, which callers must keep distinct from "worked zero hours".
package timecalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
)

const minutesPerDay = 24 * 60

// Policy holds the company working-time rules.
type Policy struct {
	StandardHours float64
	// LateNightStart and LateNightEnd are minutes since midnight. The window
	// wraps past midnight when start > end (22:00 -> 05:00 by default); equal
	// values mean no late-night window.
	LateNightStart int
	LateNightEnd   int
}

// DefaultPolicy is an 8 hour day with a 22:00-05:00 late-night window.
var DefaultPolicy = Policy{
	StandardHours:  8,
	LateNightStart: 22 * 60,
	LateNightEnd:   5 * 60,
}

// Input is the subset of an attendance record the calculations need.
type Input struct {
	Date      time.Time
	StartTime *string
	EndTime   *string
	Rest      *float64
}

// Result groups the four derived values of one day.
type Result struct {
	ActiveTime             *float64
	OverTime               *float64
	LateNightOverTime      *float64
	LegalHolidayActiveTime *float64
}

// ParseClock parses "HH:MM" into minutes since midnight of the worked day.
// Hours up to 47 are accepted so an overnight end can be written as "26:30".
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 47 {
		return 0, fmt.Errorf("invalid clock hour %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock minute %q", s)
	}
	return h*60 + m, nil
}

// span returns start and end in minutes, ok=false when either is missing or malformed.
func span(in Input) (start, end int, ok bool) {
	if in.StartTime == nil || in.EndTime == nil || *in.StartTime == "" || *in.EndTime == "" {
		return 0, 0, false
	}
	start, err := ParseClock(*in.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = ParseClock(*in.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func restMinutes(in Input) int {
	if in.Rest == nil || *in.Rest < 0 {
		return 0
	}
	return int(math.Round(*in.Rest * 60))
}

func activeMinutes(in Input) (int, bool) {
	start, end, ok := span(in)
	if !ok {
		return 0, false
	}
	worked := end - start - restMinutes(in)
	if worked < 0 {
		worked = 0
	}
	return worked, true
}

func hours(minutes int) *float64 {
	h := float64(minutes) / 60
	return &h
}

// ActiveTime is (end - start) - rest, never negative.
func ActiveTime(in Input) *float64 {
	m, ok := activeMinutes(in)
	if !ok {
		return nil
	}
	return hours(m)
}

// OverTime is the active time above the standard day. Legal holidays have none:
// their hours are reported by LegalHolidayActiveTime instead.
func OverTime(in Input, p Policy, cal holiday.Checker) *float64 {
	m, ok := activeMinutes(in)
	if !ok {
		return nil
	}
	if holiday.IsLegalHoliday(in.Date, cal) {
		return hours(0)
	}
	over := m - int(math.Round(p.StandardHours*60))
	if over < 0 {
		over = 0
	}
	return hours(over)
}

// LateNightOverTime is the part of [start, end] inside the late-night window,
// capped by the active time.
func LateNightOverTime(in Input, p Policy) *float64 {
	start, end, ok := span(in)
	if !ok {
		return nil
	}
	active, _ := activeMinutes(in)
	if end <= start {
		return hours(0)
	}

	if p.LateNightStart == p.LateNightEnd {
		return hours(0)
	}
	// A window with start > end wraps past midnight into the next day.
	wrap := 0
	if p.LateNightStart > p.LateNightEnd {
		wrap = minutesPerDay
	}

	night := 0
	// Windows of the previous, current and next night relative to the worked day.
	for d := -1; d <= 1; d++ {
		wStart := d*minutesPerDay + p.LateNightStart
		wEnd := d*minutesPerDay + wrap + p.LateNightEnd
		night += overlap(start, end, wStart, wEnd)
	}
	if night > active {
		night = active
	}
	return hours(night)
}

// LegalHolidayActiveTime is the active time when the date is a legal holiday, else 0.
func LegalHolidayActiveTime(in Input, cal holiday.Checker) *float64 {
	m, ok := activeMinutes(in)
	if !ok {
		return nil
	}
	if !holiday.IsLegalHoliday(in.Date, cal) {
		return hours(0)
	}
	return hours(m)
}

// Calculate computes all four values.
func Calculate(in Input, p Policy, cal holiday.Checker) Result {
	return Result{
		ActiveTime:             ActiveTime(in),
		OverTime:               OverTime(in, p, cal),
		LateNightOverTime:      LateNightOverTime(in, p),
		LegalHolidayActiveTime: LegalHolidayActiveTime(in, cal),
	}
}

func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
