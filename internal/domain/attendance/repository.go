package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// ListByEmployee returns records in [from, to) ordered by date.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	// ListByPeriod returns every employee's records in [from, to) ordered by employee and date.
	ListByPeriod(ctx context.Context, from, to time.Time) ([]Record, error)
	Get(ctx context.Context, employeeID string, date time.Time) (Record, error)
	UpsertBatch(ctx context.Context, records []Record) error
	Delete(ctx context.Context, employeeID string, date time.Time) error
	CountByEmployee(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}
