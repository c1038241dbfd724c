package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/sse"
)

// ChatPoster is the part of the Slack client the sink needs.
type ChatPoster interface {
	PostToAdmins(ctx context.Context, text string) error
	PostToUser(ctx context.Context, slackUserID, text string) error
}

type slackSink struct {
	chat      ChatPoster
	employees employee.EmployeeRepository
}

// NewSlackSink posts admin messages to the admin channel and employee
// messages as a direct message to the employee's Slack user.
func NewSlackSink(chat ChatPoster, employees employee.EmployeeRepository) notification.Sink {
	return &slackSink{chat: chat, employees: employees}
}

func (s *slackSink) Deliver(ctx context.Context, msg notification.Message) error {
	switch msg.Audience {
	case notification.AudienceAdmins:
		return s.chat.PostToAdmins(ctx, msg.Text)
	case notification.AudienceEmployee:
		emp, err := s.employees.GetByID(ctx, msg.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee %s: %w", msg.EmployeeID, err)
		}
		if emp.SlackUserID == nil || *emp.SlackUserID == "" {
			return fmt.Errorf("%w: %s", notification.ErrRecipientUnknown, msg.EmployeeID)
		}
		return s.chat.PostToUser(ctx, *emp.SlackUserID, msg.Text)
	}
	return fmt.Errorf("unknown audience %q", msg.Audience)
}

type logSink struct{}

// NewLogSink writes messages to the application log. It is used when no
// Slack token is configured.
func NewLogSink() notification.Sink {
	return logSink{}
}

func (logSink) Deliver(ctx context.Context, msg notification.Message) error {
	slog.InfoContext(ctx, "notification",
		"type", msg.Type,
		"audience", msg.Audience,
		"employee_id", msg.EmployeeID,
		"text", msg.Text,
	)
	return nil
}

type hubSink struct {
	hub *sse.Hub
}

// NewHubSink pushes messages to connected browsers. Nobody listening is not
// an error.
func NewHubSink(hub *sse.Hub) notification.Sink {
	return hubSink{hub: hub}
}

func (s hubSink) Deliver(ctx context.Context, msg notification.Message) error {
	topic := sse.AdminTopic
	if msg.Audience == notification.AudienceEmployee {
		topic = msg.EmployeeID
	}
	s.hub.Publish(topic, sse.Event{
		Name: string(msg.Type),
		Data: notification.Payload{Type: msg.Type, EmployeeID: msg.EmployeeID, Text: msg.Text},
	})
	return nil
}

type multiSink []notification.Sink

// NewMultiSink delivers every message to each sink in turn.
func NewMultiSink(sinks ...notification.Sink) notification.Sink {
	return multiSink(sinks)
}

func (m multiSink) Deliver(ctx context.Context, msg notification.Message) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Deliver(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
