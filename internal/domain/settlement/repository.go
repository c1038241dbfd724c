package settlement

import (
	"context"
	"time"
)

type SettlementRepository interface {
	// ListByEmployee returns lines in [from, to) ordered by date and display number.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]Record, error)
	ListByDay(ctx context.Context, employeeID string, date time.Time) ([]Record, error)
	GetByTNo(ctx context.Context, tno int64) (Record, error)
	Create(ctx context.Context, r Record) (Record, error)
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, tno int64) error
	// UpdateDisplayNos persists the DisplayNo of every given line in one batch.
	UpdateDisplayNos(ctx context.Context, records []Record) error
	CountByEmployee(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}
