package displayorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	name string
	no   int
}

func rowPos(r *row) *int { return &r.no }

func TestNext(t *testing.T) {
	assert.Equal(t, 1, Next(nil))
	assert.Equal(t, 4, Next([]int{1, 3, 2}))
	assert.Equal(t, 8, Next([]int{7}))
}

func TestCompact_ClosesGap(t *testing.T) {
	rows := []row{{"c", 3}, {"a", 1}}

	changed := Compact(rows, rowPos)

	assert.Equal(t, []row{{"a", 1}, {"c", 2}}, rows)
	assert.Equal(t, []int{1}, changed)
}

func TestCompact_Idempotent(t *testing.T) {
	rows := []row{{"a", 1}, {"b", 2}, {"c", 3}}

	changed := Compact(rows, rowPos)

	assert.Empty(t, changed)
	assert.Equal(t, []row{{"a", 1}, {"b", 2}, {"c", 3}}, rows)

	assert.Empty(t, Compact(rows, rowPos), "second pass changes nothing")
}

func TestCompact_StableOnDuplicates(t *testing.T) {
	rows := []row{{"x", 2}, {"y", 2}, {"z", 1}}

	Compact(rows, rowPos)

	assert.Equal(t, []row{{"z", 1}, {"x", 2}, {"y", 3}}, rows)
}

func TestRenumber(t *testing.T) {
	rows := []row{{"a", 5}, {"b", 2}, {"c", 9}}

	changed := Renumber(rows, rowPos)

	assert.Equal(t, []int{0, 2}, changed)
	assert.Equal(t, []row{{"a", 1}, {"b", 2}, {"c", 3}}, rows)
}

func TestAdjacent(t *testing.T) {
	assert.True(t, Adjacent(1, 2))
	assert.True(t, Adjacent(3, 2))
	assert.False(t, Adjacent(1, 3))
	assert.False(t, Adjacent(2, 2))
}
