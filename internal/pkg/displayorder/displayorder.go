// Package displayorder keeps 1-based contiguous display positions.
package displayorder

import (
	"slices"
)

// Position returns a pointer to the display position stored in an item.
type Position[T any] func(item *T) *int

// Next returns the position for an appended item: max + 1, or 1 for an empty list.
func Next(positions []int) int {
	if len(positions) == 0 {
		return 1
	}
	return slices.Max(positions) + 1
}

// Renumber assigns 1..N in slice order and returns the indexes whose position changed.
func Renumber[T any](items []T, pos Position[T]) []int {
	var changed []int
	for i := range items {
		p := pos(&items[i])
		if *p != i+1 {
			*p = i + 1
			changed = append(changed, i)
		}
	}
	return changed
}

// Compact sorts items by their current position (stable) and renumbers them.
// Gaps left by a deletion close up without changing relative order.
func Compact[T any](items []T, pos Position[T]) []int {
	slices.SortStableFunc(items, func(a, b T) int {
		return *pos(&a) - *pos(&b)
	})
	return Renumber(items, pos)
}

// Adjacent reports whether a and b are neighbouring positions.
func Adjacent(a, b int) bool {
	return a-b == 1 || b-a == 1
}
