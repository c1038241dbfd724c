package reimbursement

import (
	"slices"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/displayorder"
)

func displayNo(r *Record) *int { return &r.DisplayNo }

// compareLines orders by date, then puts lines without a creation time ahead
// of stored ones, then stored lines by creation time.
//
// New-first on a same-date tie is intentional: lines entered in the current
// request take the lowest display numbers for that day, and stored lines keep
// their relative order behind them.
func compareLines(a, b Record) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	switch {
	case a.IsNew() && !b.IsNew():
		return -1
	case !a.IsNew() && b.IsNew():
		return 1
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

// RenumberMonth merges added into existing, sorts the whole month and
// assigns DisplayNo 1..N. Every line is returned in its new order; equal
// keys keep their input order.
func RenumberMonth(existing, added []Record) []Record {
	all := make([]Record, 0, len(existing)+len(added))
	all = append(all, existing...)
	all = append(all, added...)
	slices.SortStableFunc(all, compareLines)
	displayorder.Renumber(all, displayNo)
	return all
}

// CompactMonth closes the gaps left by a deletion and returns the lines whose
// DisplayNo changed.
func CompactMonth(remaining []Record) []Record {
	changed := displayorder.Compact(remaining, displayNo)
	out := make([]Record, 0, len(changed))
	for _, i := range changed {
		out = append(out, remaining[i])
	}
	return out
}
