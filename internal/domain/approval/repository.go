package approval

import "context"

// Repository is the approvals table plus its event history.
type Repository interface {
	// EnsureExists inserts a noInput row if none exists for the key.
	EnsureExists(ctx context.Context, employeeID, yearMonth string) error
	Get(ctx context.Context, employeeID, yearMonth string) (Record, error)
	// GetForUpdate locks the row for the surrounding transaction.
	GetForUpdate(ctx context.Context, employeeID, yearMonth string) (Record, error)
	UpdateStatus(ctx context.Context, employeeID, yearMonth string, rt ReportType, status Status) error
	UpdateTotalActive(ctx context.Context, employeeID, yearMonth string, total float64) error
	ListByYearMonth(ctx context.Context, yearMonth string) ([]Record, error)

	AddEvent(ctx context.Context, event Event) error
	ListEvents(ctx context.Context, employeeID, yearMonth string) ([]Event, error)
}
