package employee

import "time"

type Employee struct {
	ID          string
	FullName    string
	Email       *string
	Department  *string
	SlackUserID *string
	// TrainerID is the employee who first-reviews this employee's daily reports.
	TrainerID *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTraineeOf reports whether trainerID is assigned as this employee's trainer.
func (e Employee) IsTraineeOf(trainerID string) bool {
	return e.TrainerID != nil && *e.TrainerID == trainerID
}
