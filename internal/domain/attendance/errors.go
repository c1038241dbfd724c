package attendance

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDateOutsideMonth   = errors.New("date is outside the requested month")
)

// InputError carries an EM000xx code from the input checks.
type InputError struct {
	Code string
	Date *time.Time
}

func (e *InputError) Error() string {
	if e.Date != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Code, CodeMessage(e.Code), e.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s: %s", e.Code, CodeMessage(e.Code))
}

// Message returns the user-facing text of the code.
func (e *InputError) Message() string {
	return CodeMessage(e.Code)
}
