// Package servicetest provides in-memory repositories for service tests.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
)

// Epoch is the base of the fake clocks handed out by the repositories.
var Epoch = time.Date(2024, 10, 1, 9, 0, 0, 0, time.UTC)

// AsActor returns ctx carrying an actor.
func AsActor(ctx context.Context, employeeID string, role user.Role) context.Context {
	return user.WithActor(ctx, user.Actor{EmployeeID: employeeID, Role: role})
}

// TxRunner runs fn directly and counts the units of work.
type TxRunner struct {
	Calls int
}

func (t *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// clock hands out strictly increasing timestamps.
type clock struct {
	n int
}

func (c *clock) next() time.Time {
	c.n++
	return Epoch.Add(time.Duration(c.n) * time.Second)
}

type ApprovalRepo struct {
	mu      sync.Mutex
	clock   clock
	Records map[string]approval.Record
	Events  []approval.Event
	Locks   int
}

func NewApprovalRepo() *ApprovalRepo {
	return &ApprovalRepo{Records: make(map[string]approval.Record)}
}

func approvalKey(employeeID, yearMonth string) string {
	return employeeID + "/" + yearMonth
}

// Seed stores rec as is.
func (r *ApprovalRepo) Seed(rec approval.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records[approvalKey(rec.EmployeeID, rec.YearMonth)] = rec
}

func (r *ApprovalRepo) EnsureExists(ctx context.Context, employeeID, yearMonth string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := approvalKey(employeeID, yearMonth)
	if _, ok := r.Records[key]; !ok {
		rec := approval.NewRecord(employeeID, yearMonth)
		rec.CreatedAt = r.clock.next()
		rec.UpdatedAt = rec.CreatedAt
		r.Records[key] = rec
	}
	return nil
}

func (r *ApprovalRepo) Get(ctx context.Context, employeeID, yearMonth string) (approval.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Records[approvalKey(employeeID, yearMonth)]
	if !ok {
		return approval.Record{}, approval.ErrApprovalNotFound
	}
	return rec, nil
}

func (r *ApprovalRepo) GetForUpdate(ctx context.Context, employeeID, yearMonth string) (approval.Record, error) {
	r.mu.Lock()
	r.Locks++
	r.mu.Unlock()
	return r.Get(ctx, employeeID, yearMonth)
}

func (r *ApprovalRepo) UpdateStatus(ctx context.Context, employeeID, yearMonth string, rt approval.ReportType, status approval.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := approvalKey(employeeID, yearMonth)
	rec, ok := r.Records[key]
	if !ok {
		return approval.ErrApprovalNotFound
	}
	rec.SetStatus(rt, status)
	rec.UpdatedAt = r.clock.next()
	r.Records[key] = rec
	return nil
}

func (r *ApprovalRepo) UpdateTotalActive(ctx context.Context, employeeID, yearMonth string, total float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := approvalKey(employeeID, yearMonth)
	rec, ok := r.Records[key]
	if !ok {
		return approval.ErrApprovalNotFound
	}
	rec.TotalActive = total
	r.Records[key] = rec
	return nil
}

func (r *ApprovalRepo) ListByYearMonth(ctx context.Context, yearMonth string) ([]approval.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []approval.Record
	for _, rec := range r.Records {
		if rec.YearMonth == yearMonth {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *ApprovalRepo) AddEvent(ctx context.Context, event approval.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = int64(len(r.Events) + 1)
	event.CreatedAt = r.clock.next()
	r.Events = append(r.Events, event)
	return nil
}

func (r *ApprovalRepo) ListEvents(ctx context.Context, employeeID, yearMonth string) ([]approval.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []approval.Event
	for _, e := range r.Events {
		if e.EmployeeID == employeeID && e.YearMonth == yearMonth {
			out = append(out, e)
		}
	}
	return out, nil
}

// Status returns the stored status or StatusUnknown when no row exists.
func (r *ApprovalRepo) Status(employeeID, yearMonth string, rt approval.ReportType) approval.Status {
	rec, err := r.Get(context.Background(), employeeID, yearMonth)
	if err != nil {
		return approval.StatusUnknown
	}
	return rec.Status(rt)
}

type EmployeeRepo struct {
	Employees map[string]employee.Employee
}

func NewEmployeeRepo(emps ...employee.Employee) *EmployeeRepo {
	r := &EmployeeRepo{Employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		r.Employees[e.ID] = e
	}
	return r
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.Employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.Employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Holidays is a fixed calendar.
type Holidays struct {
	Set holiday.Set
}

func (h Holidays) Calendar(ctx context.Context, from, to time.Time) (holiday.Set, error) {
	if h.Set == nil {
		return holiday.Set{}, nil
	}
	return h.Set, nil
}

// Notifier records every message.
type Notifier struct {
	mu       sync.Mutex
	Messages []notification.Message
}

func (n *Notifier) Notify(ctx context.Context, msg notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, msg)
}
