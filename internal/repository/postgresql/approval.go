package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type approvalRepository struct {
	db *database.DB
}

func NewApprovalRepository(db *database.DB) approval.Repository {
	return &approvalRepository{db: db}
}

const approvalColumns = `employee_id, year_month, attendance_status, settlement_status, reimbursement_status,
	total_active, created_at, updated_at`

func scanApproval(row pgx.Row) (approval.Record, error) {
	var rec approval.Record
	var attendance, settle, reimburse string
	err := row.Scan(
		&rec.EmployeeID, &rec.YearMonth, &attendance, &settle, &reimburse,
		&rec.TotalActive, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return approval.Record{}, err
	}
	rec.AttendanceStatus = approval.ParseStatus(attendance)
	rec.SettlementStatus = approval.ParseStatus(settle)
	rec.ReimbursementStatus = approval.ParseStatus(reimburse)
	return rec, nil
}

// EnsureExists implements approval.Repository.
func (r *approvalRepository) EnsureExists(ctx context.Context, employeeID, yearMonth string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approvals (employee_id, year_month, attendance_status, settlement_status, reimbursement_status)
		VALUES ($1, $2, $3, $3, $3)
		ON CONFLICT (employee_id, year_month) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, employeeID, yearMonth, string(approval.StatusNoInput)); err != nil {
		return fmt.Errorf("failed to ensure approval %s/%s: %w", employeeID, yearMonth, err)
	}
	return nil
}

// Get implements approval.Repository.
func (r *approvalRepository) Get(ctx context.Context, employeeID, yearMonth string) (approval.Record, error) {
	return r.get(ctx, employeeID, yearMonth, "")
}

// GetForUpdate implements approval.Repository.
func (r *approvalRepository) GetForUpdate(ctx context.Context, employeeID, yearMonth string) (approval.Record, error) {
	return r.get(ctx, employeeID, yearMonth, " FOR UPDATE")
}

func (r *approvalRepository) get(ctx context.Context, employeeID, yearMonth, lock string) (approval.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE employee_id = $1 AND year_month = $2` + lock

	rec, err := scanApproval(q.QueryRow(ctx, query, employeeID, yearMonth))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Record{}, approval.ErrApprovalNotFound
		}
		return approval.Record{}, fmt.Errorf("failed to get approval: %w", err)
	}
	return rec, nil
}

var statusColumns = map[approval.ReportType]string{
	approval.ReportAttendance:    "attendance_status",
	approval.ReportSettlement:    "settlement_status",
	approval.ReportReimbursement: "reimbursement_status",
}

// UpdateStatus implements approval.Repository.
func (r *approvalRepository) UpdateStatus(ctx context.Context, employeeID, yearMonth string, rt approval.ReportType, status approval.Status) error {
	column, ok := statusColumns[rt]
	if !ok {
		return approval.ErrInvalidReportType
	}
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE approvals SET %s = $1, updated_at = NOW()
		WHERE employee_id = $2 AND year_month = $3
	`, column)

	tag, err := q.Exec(ctx, query, string(status), employeeID, yearMonth)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrApprovalNotFound
	}
	return nil
}

// UpdateTotalActive implements approval.Repository.
func (r *approvalRepository) UpdateTotalActive(ctx context.Context, employeeID, yearMonth string, total float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approvals SET total_active = $1, updated_at = NOW()
		WHERE employee_id = $2 AND year_month = $3
	`
	tag, err := q.Exec(ctx, query, total, employeeID, yearMonth)
	if err != nil {
		return fmt.Errorf("failed to update total active time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrApprovalNotFound
	}
	return nil
}

// ListByYearMonth implements approval.Repository.
func (r *approvalRepository) ListByYearMonth(ctx context.Context, yearMonth string) ([]approval.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE year_month = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var out []approval.Record
	for rows.Next() {
		rec, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AddEvent implements approval.Repository.
func (r *approvalRepository) AddEvent(ctx context.Context, event approval.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_events (employee_id, year_month, report_type, action, from_status, to_status, actor_id, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query,
		event.EmployeeID, event.YearMonth, string(event.ReportType), event.Action,
		string(event.From), string(event.To), event.ActorID, event.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to add approval event: %w", err)
	}
	return nil
}

// ListEvents implements approval.Repository.
func (r *approvalRepository) ListEvents(ctx context.Context, employeeID, yearMonth string) ([]approval.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year_month, report_type, action, from_status, to_status, actor_id, reason, created_at
		FROM approval_events
		WHERE employee_id = $1 AND year_month = $2
		ORDER BY id
	`
	rows, err := q.Query(ctx, query, employeeID, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval events: %w", err)
	}
	defer rows.Close()

	var out []approval.Event
	for rows.Next() {
		var e approval.Event
		var rt, from, to string
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.YearMonth, &rt, &e.Action, &from, &to, &e.ActorID, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan approval event: %w", err)
		}
		e.ReportType = approval.ReportType(rt)
		e.From = approval.ParseStatus(from)
		e.To = approval.ParseStatus(to)
		out = append(out, e)
	}
	return out, rows.Err()
}
