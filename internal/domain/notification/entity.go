package notification

import "context"

// Audience selects who receives a message.
type Audience string

const (
	AudienceAdmins   Audience = "admins"
	AudienceEmployee Audience = "employee"
)

// Type identifies why a message was sent.
type Type string

const (
	TypeReportResubmitted   Type = "report_resubmitted"
	TypeReportRejected      Type = "report_rejected"
	TypeDailyReportRejected Type = "daily_report_rejected"
	TypeSubmissionReminder  Type = "submission_reminder"
)

// Message is a free-text notification for one audience.
type Message struct {
	Type       Type
	Audience   Audience
	EmployeeID string
	Text       string
}

// Payload is the JSON body of a streamed notification.
type Payload struct {
	Type       Type   `json:"type"`
	EmployeeID string `json:"employeeId,omitempty"`
	Text       string `json:"text"`
}

// Notifier accepts messages without reporting delivery failures to the
// caller. Implementations log what they could not send.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// Sink delivers a single message to an external channel.
type Sink interface {
	Deliver(ctx context.Context, msg Message) error
}
