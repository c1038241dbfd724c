package settlement

import "errors"

var (
	ErrSettlementNotFound = errors.New("settlement record not found")
	ErrSwapDifferentDay   = errors.New("only records of the same employee and day can be swapped")
	ErrSwapNotAdjacent    = errors.New("only adjacent records can be swapped")
)
