package settlement

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/displayorder"
)

func displayNo(r *Record) *int { return &r.DisplayNo }

// NextDisplayNo is the position of a line appended to sameDay.
func NextDisplayNo(sameDay []Record) int {
	positions := make([]int, len(sameDay))
	for i, r := range sameDay {
		positions[i] = r.DisplayNo
	}
	return displayorder.Next(positions)
}

// CompactDay re-sorts the remaining lines of one day by DisplayNo, assigns
// 1..N and returns the lines whose DisplayNo changed.
func CompactDay(sameDay []Record) []Record {
	changed := displayorder.Compact(sameDay, displayNo)
	out := make([]Record, 0, len(changed))
	for _, i := range changed {
		out = append(out, sameDay[i])
	}
	return out
}

// Swap exchanges the positions of two adjacent lines of the same day.
func Swap(a, b *Record) error {
	if !a.SameDay(*b) {
		return ErrSwapDifferentDay
	}
	if !displayorder.Adjacent(a.DisplayNo, b.DisplayNo) {
		return ErrSwapNotAdjacent
	}
	a.DisplayNo, b.DisplayNo = b.DisplayNo, a.DisplayNo
	return nil
}
