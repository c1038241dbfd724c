package reimbursement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(day int) time.Time {
	return time.Date(2024, time.October, day, 0, 0, 0, 0, time.UTC)
}

func created(hour int) time.Time {
	return time.Date(2024, time.October, 20, hour, 0, 0, 0, time.UTC)
}

func tnos(rs []Record) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.TNo
	}
	return out
}

func displayNos(rs []Record) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.DisplayNo
	}
	return out
}

func TestRenumberMonth_SortsByDate(t *testing.T) {
	existing := []Record{
		{TNo: 1, Date: d(10), DisplayNo: 1, CreatedAt: created(1)},
		{TNo: 2, Date: d(20), DisplayNo: 2, CreatedAt: created(2)},
	}
	added := []Record{{Contents: "taxi", Date: d(15)}}

	out := RenumberMonth(existing, added)

	require.Len(t, out, 3)
	assert.Equal(t, []int64{1, 0, 2}, tnos(out))
	assert.Equal(t, []int{1, 2, 3}, displayNos(out))
}

// New lines sort ahead of stored lines with the same date.
func TestRenumberMonth_NewLinesFirstOnSameDate(t *testing.T) {
	existing := []Record{
		{TNo: 5, Date: d(3), DisplayNo: 1, CreatedAt: created(9)},
		{TNo: 4, Date: d(3), DisplayNo: 2, CreatedAt: created(10)},
	}
	added := []Record{
		{Contents: "first new", Date: d(3)},
		{Contents: "second new", Date: d(3)},
	}

	out := RenumberMonth(existing, added)

	assert.Equal(t, "first new", out[0].Contents)
	assert.Equal(t, "second new", out[1].Contents)
	assert.Equal(t, []int64{0, 0, 5, 4}, tnos(out))
	assert.Equal(t, []int{1, 2, 3, 4}, displayNos(out))
}

func TestRenumberMonth_ExistingByCreatedAt(t *testing.T) {
	existing := []Record{
		{TNo: 8, Date: d(3), DisplayNo: 1, CreatedAt: created(12)},
		{TNo: 7, Date: d(3), DisplayNo: 2, CreatedAt: created(8)},
	}

	out := RenumberMonth(existing, nil)

	assert.Equal(t, []int64{7, 8}, tnos(out))
	assert.Equal(t, []int{1, 2}, displayNos(out))
}

func TestRenumberMonth_Idempotent(t *testing.T) {
	existing := []Record{
		{TNo: 1, Date: d(1), DisplayNo: 1, CreatedAt: created(1)},
		{TNo: 2, Date: d(2), DisplayNo: 2, CreatedAt: created(2)},
	}
	once := RenumberMonth(existing, nil)
	twice := RenumberMonth(once, nil)
	assert.Equal(t, once, twice)
}

func TestRenumberMonth_StableOnEqualKeys(t *testing.T) {
	same := created(5)
	existing := []Record{
		{TNo: 3, Date: d(1), CreatedAt: same},
		{TNo: 1, Date: d(1), CreatedAt: same},
		{TNo: 2, Date: d(1), CreatedAt: same},
	}
	assert.Equal(t, []int64{3, 1, 2}, tnos(RenumberMonth(existing, nil)))
}

func TestCompactMonth(t *testing.T) {
	remaining := []Record{
		{TNo: 1, DisplayNo: 1},
		{TNo: 3, DisplayNo: 3},
		{TNo: 4, DisplayNo: 4},
	}

	changed := CompactMonth(remaining)

	assert.Equal(t, []int{1, 2, 3}, displayNos(remaining))
	assert.Equal(t, []int64{3, 4}, tnos(changed))
}
