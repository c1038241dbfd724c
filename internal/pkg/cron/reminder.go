package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
)

// ReminderJobs chases employees whose previous month is still open.
type ReminderJobs struct {
	approvals approval.Repository
	employees employee.EmployeeRepository
	notifier  notification.Notifier
	hour      int
	days      int
}

// NewReminderJobs reminds during hour on each of the first days of a month.
func NewReminderJobs(
	approvals approval.Repository,
	employees employee.EmployeeRepository,
	notifier notification.Notifier,
	hour, days int,
) *ReminderJobs {
	return &ReminderJobs{
		approvals: approvals,
		employees: employees,
		notifier:  notifier,
		hour:      hour,
		days:      days,
	}
}

func (j *ReminderJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("submission_reminder", time.Hour, j.RemindUnsubmitted)
}

// RemindUnsubmitted sends each active employee the list of last month's
// reports that are not yet submitted, then a summary to the admins.
func (j *ReminderJobs) RemindUnsubmitted(ctx context.Context, now time.Time) error {
	if now.Day() > j.days || now.Hour() != j.hour {
		return nil
	}

	yearMonth := approval.PreviousYearMonth(now)
	emps, err := j.employees.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := j.approvals.ListByYearMonth(ctx, yearMonth)
	if err != nil {
		return fmt.Errorf("failed to list approvals for %s: %w", yearMonth, err)
	}
	byEmployee := make(map[string]approval.Record, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec
	}

	var late []string
	for _, emp := range emps {
		rec, ok := byEmployee[emp.ID]
		if !ok {
			rec = approval.NewRecord(emp.ID, yearMonth)
		}
		open := openReports(rec)
		if len(open) == 0 {
			continue
		}
		late = append(late, emp.ID)
		j.notifier.Notify(ctx, notification.Message{
			Type:       notification.TypeSubmissionReminder,
			Audience:   notification.AudienceEmployee,
			EmployeeID: emp.ID,
			Text:       fmt.Sprintf("Reminder: %s for %s not submitted yet.", strings.Join(open, ", "), yearMonth),
		})
	}

	if len(late) > 0 {
		j.notifier.Notify(ctx, notification.Message{
			Type:     notification.TypeSubmissionReminder,
			Audience: notification.AudienceAdmins,
			Text:     fmt.Sprintf("%d employee(s) have open reports for %s: %s", len(late), yearMonth, strings.Join(late, ", ")),
		})
	}
	slog.Info("submission reminders sent", "year_month", yearMonth, "employees", len(late))
	return nil
}

// openReports lists the labels of reports still waiting on the employee.
// Travel settlement and reimbursement may legitimately stay in noInput.
func openReports(rec approval.Record) []string {
	var open []string
	for _, rt := range []approval.ReportType{approval.ReportAttendance, approval.ReportSettlement, approval.ReportReimbursement} {
		switch rec.Status(rt) {
		case approval.StatusInput, approval.StatusReinput:
			open = append(open, rt.Label())
		case approval.StatusNoInput:
			if rt == approval.ReportAttendance {
				open = append(open, rt.Label())
			}
		}
	}
	return open
}
