package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `employee_id, date, start_time, end_time, rest, work_style, absent_code, note,
	created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var style, absent string
	err := row.Scan(
		&rec.EmployeeID, &rec.Date, &rec.StartTime, &rec.EndTime, &rec.Rest,
		&style, &absent, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.WorkStyle = attendance.ParseWorkStyle(style)
	rec.AbsentCode = attendance.ParseAbsenceCode(absent)
	return rec, nil
}

func (a *attendanceRepository) list(ctx context.Context, query string, args ...any) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var out []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`
	return a.list(ctx, query, employeeID, from, to)
}

// ListByPeriod implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE date >= $1 AND date < $2
		ORDER BY employee_id, date
	`
	return a.list(ctx, query, from, to)
}

// Get implements attendance.AttendanceRepository.
func (a *attendanceRepository) Get(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// UpsertBatch implements attendance.AttendanceRepository. All rows go out in
// one round trip; the first failing row aborts the batch.
func (a *attendanceRepository) UpsertBatch(ctx context.Context, records []attendance.Record) error {
	if len(records) == 0 {
		return nil
	}
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, start_time, end_time, rest, work_style, absent_code, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			rest = EXCLUDED.rest,
			work_style = EXCLUDED.work_style,
			absent_code = EXCLUDED.absent_code,
			note = EXCLUDED.note,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(query,
			r.EmployeeID, r.Date, r.StartTime, r.EndTime, r.Rest,
			string(r.WorkStyle), string(r.AbsentCode), r.Note,
		)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for _, r := range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert attendance %s: %w", r.Date.Format("2006-01-02"), err)
		}
	}
	return br.Close()
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1 AND date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// CountByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByEmployee(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, a.db)

	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE employee_id = $1 AND date >= $2 AND date < $3`,
		employeeID, from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return n, nil
}
