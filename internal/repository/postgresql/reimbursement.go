package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reimbursementRepository struct {
	db *database.DB
}

func NewReimbursementRepository(db *database.DB) reimbursement.ReimbursementRepository {
	return &reimbursementRepository{db: db}
}

const reimbursementColumns = `t_no, employee_id, display_no, date, contents, paid_to, cost, invoice_flg, note,
	created_at, updated_at`

func scanReimbursement(row pgx.Row) (reimbursement.Record, error) {
	var rec reimbursement.Record
	err := row.Scan(
		&rec.TNo, &rec.EmployeeID, &rec.DisplayNo, &rec.Date, &rec.Contents, &rec.PaidTo,
		&rec.Cost, &rec.InvoiceFlg, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *reimbursementRepository) list(ctx context.Context, where string, args ...any) ([]reimbursement.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE ` + where +
		` ORDER BY employee_id, display_no, t_no`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reimbursements: %w", err)
	}
	defer rows.Close()

	var out []reimbursement.Record
	for rows.Next() {
		rec, err := scanReimbursement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reimbursement: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListByEmployee implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]reimbursement.Record, error) {
	return r.list(ctx, `employee_id = $1 AND date >= $2 AND date < $3`, employeeID, from, to)
}

// ListByPeriod implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]reimbursement.Record, error) {
	return r.list(ctx, `date >= $1 AND date < $2`, from, to)
}

// GetByTNo implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepository) GetByTNo(ctx context.Context, tno int64) (reimbursement.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanReimbursement(q.QueryRow(ctx, `SELECT `+reimbursementColumns+` FROM reimbursements WHERE t_no = $1`, tno))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reimbursement.Record{}, reimbursement.ErrReimbursementNotFound
		}
		return reimbursement.Record{}, fmt.Errorf("failed to get reimbursement %d: %w", tno, err)
	}
	return rec, nil
}

// Create implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepository) Create(ctx context.Context, rec reimbursement.Record) (reimbursement.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reimbursements (employee_id, display_no, date, contents, paid_to, cost, invoice_flg, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING t_no, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.DisplayNo, rec.Date, rec.Contents, rec.PaidTo, rec.Cost, rec.InvoiceFlg, rec.Note,
	).Scan(&rec.TNo, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return reimbursement.Record{}, fmt.Errorf("failed to create reimbursement: %w", err)
	}
	return rec, nil
}

// Update implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepository) Update(ctx context.Context, rec reimbursement.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reimbursements SET
			display_no = $2, date = $3, contents = $4, paid_to = $5, cost = $6,
			invoice_flg = $7, note = $8, updated_at = NOW()
		WHERE t_no = $1
	`
	tag, err := q.Exec(ctx, query,
		rec.TNo, rec.DisplayNo, rec.Date, rec.Contents, rec.PaidTo, rec.Cost, rec.InvoiceFlg, rec.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update reimbursement %d: %w", rec.TNo, err)
	}
	if tag.RowsAffected() == 0 {
		return reimbursement.ErrReimbursementNotFound
	}
	return nil
}

// Delete implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepository) Delete(ctx context.Context, tno int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM reimbursements WHERE t_no = $1`, tno)
	if err != nil {
		return fmt.Errorf("failed to delete reimbursement %d: %w", tno, err)
	}
	if tag.RowsAffected() == 0 {
		return reimbursement.ErrReimbursementNotFound
	}
	return nil
}

// UpdateDisplayNos implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepository) UpdateDisplayNos(ctx context.Context, records []reimbursement.Record) error {
	nos := make([]displayNo, len(records))
	for i, rec := range records {
		nos[i] = displayNo{tno: rec.TNo, no: rec.DisplayNo}
	}
	return updateDisplayNos(ctx, GetQuerier(ctx, r.db), "reimbursements", nos)
}
