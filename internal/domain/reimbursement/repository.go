package reimbursement

import (
	"context"
	"time"
)

type ReimbursementRepository interface {
	// ListByEmployee returns lines in [from, to) ordered by display number.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]Record, error)
	GetByTNo(ctx context.Context, tno int64) (Record, error)
	Create(ctx context.Context, r Record) (Record, error)
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, tno int64) error
	UpdateDisplayNos(ctx context.Context, records []Record) error
}
