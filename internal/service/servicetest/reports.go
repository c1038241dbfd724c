package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/dailyreport"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/settlement"
)

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && d.Before(to)
}

type AttendanceRepo struct {
	mu      sync.Mutex
	clock   clock
	Records map[string]attendance.Record
}

func NewAttendanceRepo() *AttendanceRepo {
	return &AttendanceRepo{Records: make(map[string]attendance.Record)}
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (r *AttendanceRepo) list(match func(attendance.Record) bool) []attendance.Record {
	var out []attendance.Record
	for _, rec := range r.Records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (r *AttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(rec attendance.Record) bool {
		return rec.EmployeeID == employeeID && inRange(rec.Date, from, to)
	}), nil
}

func (r *AttendanceRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(rec attendance.Record) bool { return inRange(rec.Date, from, to) }), nil
}

func (r *AttendanceRepo) Get(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Records[attendanceKey(employeeID, date)]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *AttendanceRepo) UpsertBatch(ctx context.Context, records []attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		key := attendanceKey(rec.EmployeeID, rec.Date)
		now := r.clock.next()
		if old, ok := r.Records[key]; ok {
			rec.CreatedAt = old.CreatedAt
		} else {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		r.Records[key] = rec
	}
	return nil
}

func (r *AttendanceRepo) Delete(ctx context.Context, employeeID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := attendanceKey(employeeID, date)
	if _, ok := r.Records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.Records, key)
	return nil
}

func (r *AttendanceRepo) CountByEmployee(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	recs, _ := r.ListByEmployee(ctx, employeeID, from, to)
	return len(recs), nil
}

type SettlementRepo struct {
	mu      sync.Mutex
	clock   clock
	nextTNo int64
	Records map[int64]settlement.Record
}

func NewSettlementRepo() *SettlementRepo {
	return &SettlementRepo{Records: make(map[int64]settlement.Record)}
}

func (r *SettlementRepo) list(match func(settlement.Record) bool) []settlement.Record {
	var out []settlement.Record
	for _, rec := range r.Records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.DisplayNo < b.DisplayNo
	})
	return out
}

func (r *SettlementRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]settlement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(rec settlement.Record) bool {
		return rec.EmployeeID == employeeID && inRange(rec.Date, from, to)
	}), nil
}

func (r *SettlementRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]settlement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(rec settlement.Record) bool { return inRange(rec.Date, from, to) }), nil
}

func (r *SettlementRepo) ListByDay(ctx context.Context, employeeID string, date time.Time) ([]settlement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(rec settlement.Record) bool {
		return rec.EmployeeID == employeeID && rec.Date.Equal(date)
	}), nil
}

func (r *SettlementRepo) GetByTNo(ctx context.Context, tno int64) (settlement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Records[tno]
	if !ok {
		return settlement.Record{}, settlement.ErrSettlementNotFound
	}
	return rec, nil
}

func (r *SettlementRepo) Create(ctx context.Context, rec settlement.Record) (settlement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextTNo++
	rec.TNo = r.nextTNo
	rec.CreatedAt = r.clock.next()
	rec.UpdatedAt = rec.CreatedAt
	r.Records[rec.TNo] = rec
	return rec, nil
}

func (r *SettlementRepo) Update(ctx context.Context, rec settlement.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Records[rec.TNo]; !ok {
		return settlement.ErrSettlementNotFound
	}
	rec.UpdatedAt = r.clock.next()
	r.Records[rec.TNo] = rec
	return nil
}

func (r *SettlementRepo) Delete(ctx context.Context, tno int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Records[tno]; !ok {
		return settlement.ErrSettlementNotFound
	}
	delete(r.Records, tno)
	return nil
}

func (r *SettlementRepo) UpdateDisplayNos(ctx context.Context, records []settlement.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		stored, ok := r.Records[rec.TNo]
		if !ok {
			return settlement.ErrSettlementNotFound
		}
		stored.DisplayNo = rec.DisplayNo
		r.Records[rec.TNo] = stored
	}
	return nil
}

func (r *SettlementRepo) CountByEmployee(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	recs, _ := r.ListByEmployee(ctx, employeeID, from, to)
	return len(recs), nil
}

type ReimbursementRepo struct {
	mu      sync.Mutex
	clock   clock
	nextTNo int64
	Records map[int64]reimbursement.Record
}

func NewReimbursementRepo() *ReimbursementRepo {
	return &ReimbursementRepo{Records: make(map[int64]reimbursement.Record)}
}

func (r *ReimbursementRepo) list(match func(reimbursement.Record) bool) []reimbursement.Record {
	var out []reimbursement.Record
	for _, rec := range r.Records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].DisplayNo < out[j].DisplayNo
	})
	return out
}

func (r *ReimbursementRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]reimbursement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(rec reimbursement.Record) bool {
		return rec.EmployeeID == employeeID && inRange(rec.Date, from, to)
	}), nil
}

func (r *ReimbursementRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]reimbursement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(rec reimbursement.Record) bool { return inRange(rec.Date, from, to) }), nil
}

func (r *ReimbursementRepo) GetByTNo(ctx context.Context, tno int64) (reimbursement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Records[tno]
	if !ok {
		return reimbursement.Record{}, reimbursement.ErrReimbursementNotFound
	}
	return rec, nil
}

func (r *ReimbursementRepo) Create(ctx context.Context, rec reimbursement.Record) (reimbursement.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextTNo++
	rec.TNo = r.nextTNo
	rec.CreatedAt = r.clock.next()
	rec.UpdatedAt = rec.CreatedAt
	r.Records[rec.TNo] = rec
	return rec, nil
}

func (r *ReimbursementRepo) Update(ctx context.Context, rec reimbursement.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Records[rec.TNo]; !ok {
		return reimbursement.ErrReimbursementNotFound
	}
	rec.UpdatedAt = r.clock.next()
	r.Records[rec.TNo] = rec
	return nil
}

func (r *ReimbursementRepo) Delete(ctx context.Context, tno int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Records[tno]; !ok {
		return reimbursement.ErrReimbursementNotFound
	}
	delete(r.Records, tno)
	return nil
}

func (r *ReimbursementRepo) UpdateDisplayNos(ctx context.Context, records []reimbursement.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		stored, ok := r.Records[rec.TNo]
		if !ok {
			return reimbursement.ErrReimbursementNotFound
		}
		stored.DisplayNo = rec.DisplayNo
		r.Records[rec.TNo] = stored
	}
	return nil
}

type DailyReportRepo struct {
	mu    sync.Mutex
	clock clock
	Posts map[string]dailyreport.Post
}

func NewDailyReportRepo() *DailyReportRepo {
	return &DailyReportRepo{Posts: make(map[string]dailyreport.Post)}
}

func (r *DailyReportRepo) CreatePost(ctx context.Context, post dailyreport.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock.next()
	post.CreatedAt, post.UpdatedAt = now, now
	sections := make([]dailyreport.Section, len(post.Sections))
	for i, s := range post.Sections {
		s.PostID = post.ID
		s.CreatedAt, s.UpdatedAt = now, now
		sections[i] = s
	}
	post.Sections = sections
	r.Posts[post.ID] = post
	return nil
}

func (r *DailyReportRepo) GetPost(ctx context.Context, id string) (dailyreport.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Posts[id]
	if !ok {
		return dailyreport.Post{}, dailyreport.ErrPostNotFound
	}
	return p, nil
}

func (r *DailyReportRepo) ListPosts(ctx context.Context, f dailyreport.Filter) ([]dailyreport.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dailyreport.Post
	for _, p := range r.Posts {
		if p.Date.Before(f.From) || p.Date.After(f.To) {
			continue
		}
		if f.EmployeeID != nil && p.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.RoomID != nil && p.RoomID != *f.RoomID {
			continue
		}
		if f.Kind != nil && p.Kind != *f.Kind {
			continue
		}
		if f.Status != nil && p.Progress()[*f.Status] == 0 {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *DailyReportRepo) GetSectionForUpdate(ctx context.Context, id string) (dailyreport.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Posts {
		for _, s := range p.Sections {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return dailyreport.Section{}, dailyreport.ErrSectionNotFound
}

func (r *DailyReportRepo) UpdateSection(ctx context.Context, s dailyreport.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Posts[s.PostID]
	if !ok {
		return dailyreport.ErrSectionNotFound
	}
	for i := range p.Sections {
		if p.Sections[i].ID == s.ID {
			s.UpdatedAt = r.clock.next()
			p.Sections[i] = s
			r.Posts[p.ID] = p
			return nil
		}
	}
	return dailyreport.ErrSectionNotFound
}
