package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu   sync.Mutex
	got  []notification.Message
	fail bool
}

func (s *recordingSink) Deliver(ctx context.Context, msg notification.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, msg)
	if s.fail {
		return errors.New("chat unavailable")
	}
	return nil
}

func TestDispatcher_DeliversBeforeStopReturns(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, Config{WorkerCount: 3, QueueSize: 2})

	for i := 0; i < 10; i++ {
		d.Notify(context.Background(), notification.Message{Type: notification.TypeReportRejected, EmployeeID: "E001"})
	}
	d.Stop()

	assert.Len(t, sink.got, 10)
}

func TestDispatcher_AfterStop(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, Config{})
	d.Stop()
	d.Stop()

	d.Notify(context.Background(), notification.Message{Type: notification.TypeReportRejected})
	assert.Empty(t, sink.got)
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	sink := &recordingSink{fail: true}
	d := NewDispatcher(sink, Config{WorkerCount: 1})
	d.Notify(context.Background(), notification.Message{Audience: notification.AudienceAdmins})
	d.Stop()
	assert.Len(t, sink.got, 1)
}

type fakeChat struct {
	admin []string
	users map[string][]string
}

func (c *fakeChat) PostToAdmins(ctx context.Context, text string) error {
	c.admin = append(c.admin, text)
	return nil
}

func (c *fakeChat) PostToUser(ctx context.Context, slackUserID, text string) error {
	if c.users == nil {
		c.users = make(map[string][]string)
	}
	c.users[slackUserID] = append(c.users[slackUserID], text)
	return nil
}

func TestSlackSink(t *testing.T) {
	slackID := "U123"
	chat := &fakeChat{}
	emps := servicetest.NewEmployeeRepo(
		employee.Employee{ID: "E001", FullName: "Sato", SlackUserID: &slackID, IsActive: true},
		employee.Employee{ID: "E002", FullName: "Suzuki", IsActive: true},
	)
	sink := NewSlackSink(chat, emps)
	ctx := context.Background()

	require.NoError(t, sink.Deliver(ctx, notification.Message{Audience: notification.AudienceAdmins, Text: "resubmitted"}))
	require.NoError(t, sink.Deliver(ctx, notification.Message{Audience: notification.AudienceEmployee, EmployeeID: "E001", Text: "rejected"}))
	assert.Equal(t, []string{"resubmitted"}, chat.admin)
	assert.Equal(t, []string{"rejected"}, chat.users["U123"])

	err := sink.Deliver(ctx, notification.Message{Audience: notification.AudienceEmployee, EmployeeID: "E002"})
	assert.ErrorIs(t, err, notification.ErrRecipientUnknown)

	err = sink.Deliver(ctx, notification.Message{Audience: notification.AudienceEmployee, EmployeeID: "E999"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLogSink(t *testing.T) {
	assert.NoError(t, NewLogSink().Deliver(context.Background(), notification.Message{Text: "hello"}))
}

func TestHubSink(t *testing.T) {
	hub := sse.NewHub()
	employeeEvents, cancelEmployee := hub.Subscribe("E001")
	adminEvents, cancelAdmin := hub.Subscribe(sse.AdminTopic)
	defer cancelEmployee()
	defer cancelAdmin()
	sink := NewHubSink(hub)
	ctx := context.Background()

	require.NoError(t, sink.Deliver(ctx, notification.Message{
		Type:       notification.TypeReportRejected,
		Audience:   notification.AudienceEmployee,
		EmployeeID: "E001",
		Text:       "rejected",
	}))
	require.NoError(t, sink.Deliver(ctx, notification.Message{
		Type:     notification.TypeReportResubmitted,
		Audience: notification.AudienceAdmins,
		Text:     "resubmitted",
	}))

	ev := <-employeeEvents
	assert.Equal(t, "report_rejected", ev.Name)
	assert.Equal(t, notification.Payload{Type: notification.TypeReportRejected, EmployeeID: "E001", Text: "rejected"}, ev.Data)
	assert.Equal(t, "report_resubmitted", (<-adminEvents).Name)
	assert.Empty(t, employeeEvents)
}

func TestMultiSink(t *testing.T) {
	ok := &recordingSink{}
	broken := &recordingSink{fail: true}
	sink := NewMultiSink(broken, ok)

	err := sink.Deliver(context.Background(), notification.Message{Text: "hello"})
	assert.Error(t, err)
	require.Len(t, ok.got, 1)
	assert.Equal(t, "hello", ok.got[0].Text)
}
