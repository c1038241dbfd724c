package attendance

import "context"

type AttendanceService interface {
	GetMonth(ctx context.Context, req MonthRequest) (MonthResponse, error)
	Save(ctx context.Context, req SaveRequest) (MonthResponse, error)
	Delete(ctx context.Context, req DeleteRequest) (MonthResponse, error)
	// ValidateForSubmit re-runs the input checks over the whole month and
	// returns an *InputError for the first problem found.
	ValidateForSubmit(ctx context.Context, employeeID, yearMonth string) error
}
