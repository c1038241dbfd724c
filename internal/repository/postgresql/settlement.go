package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/settlement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settlementRepository struct {
	db *database.DB
}

func NewSettlementRepository(db *database.DB) settlement.SettlementRepository {
	return &settlementRepository{db: db}
}

const settlementColumns = `t_no, employee_id, display_no, date, form, method, departure, arrival,
	transportation, cost, total, note, created_at, updated_at`

func scanSettlement(row pgx.Row) (settlement.Record, error) {
	var rec settlement.Record
	var form, method string
	err := row.Scan(
		&rec.TNo, &rec.EmployeeID, &rec.DisplayNo, &rec.Date, &form, &method,
		&rec.Departure, &rec.Arrival, &rec.Transportation, &rec.Cost, &rec.Total,
		&rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return settlement.Record{}, err
	}
	rec.Form = settlement.ParseForm(form)
	rec.Method = settlement.ParseMethod(method)
	return rec, nil
}

func (s *settlementRepository) list(ctx context.Context, where string, args ...any) ([]settlement.Record, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE ` + where +
		` ORDER BY employee_id, date, display_no, t_no`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var out []settlement.Record
	for rows.Next() {
		rec, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListByEmployee implements settlement.SettlementRepository.
func (s *settlementRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]settlement.Record, error) {
	return s.list(ctx, `employee_id = $1 AND date >= $2 AND date < $3`, employeeID, from, to)
}

// ListByPeriod implements settlement.SettlementRepository.
func (s *settlementRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]settlement.Record, error) {
	return s.list(ctx, `date >= $1 AND date < $2`, from, to)
}

// ListByDay implements settlement.SettlementRepository.
func (s *settlementRepository) ListByDay(ctx context.Context, employeeID string, date time.Time) ([]settlement.Record, error) {
	return s.list(ctx, `employee_id = $1 AND date = $2`, employeeID, date)
}

// GetByTNo implements settlement.SettlementRepository.
func (s *settlementRepository) GetByTNo(ctx context.Context, tno int64) (settlement.Record, error) {
	q := GetQuerier(ctx, s.db)

	rec, err := scanSettlement(q.QueryRow(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE t_no = $1`, tno))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settlement.Record{}, settlement.ErrSettlementNotFound
		}
		return settlement.Record{}, fmt.Errorf("failed to get settlement %d: %w", tno, err)
	}
	return rec, nil
}

// Create implements settlement.SettlementRepository.
func (s *settlementRepository) Create(ctx context.Context, r settlement.Record) (settlement.Record, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO settlements (
			employee_id, display_no, date, form, method, departure, arrival,
			transportation, cost, total, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING t_no, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		r.EmployeeID, r.DisplayNo, r.Date, string(r.Form), string(r.Method),
		r.Departure, r.Arrival, r.Transportation, r.Cost, r.Total, r.Note,
	).Scan(&r.TNo, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return settlement.Record{}, fmt.Errorf("failed to create settlement: %w", err)
	}
	return r, nil
}

// Update implements settlement.SettlementRepository.
func (s *settlementRepository) Update(ctx context.Context, r settlement.Record) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE settlements SET
			display_no = $2, date = $3, form = $4, method = $5, departure = $6, arrival = $7,
			transportation = $8, cost = $9, total = $10, note = $11, updated_at = NOW()
		WHERE t_no = $1
	`
	tag, err := q.Exec(ctx, query,
		r.TNo, r.DisplayNo, r.Date, string(r.Form), string(r.Method), r.Departure, r.Arrival,
		r.Transportation, r.Cost, r.Total, r.Note,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement %d: %w", r.TNo, err)
	}
	if tag.RowsAffected() == 0 {
		return settlement.ErrSettlementNotFound
	}
	return nil
}

// Delete implements settlement.SettlementRepository.
func (s *settlementRepository) Delete(ctx context.Context, tno int64) error {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM settlements WHERE t_no = $1`, tno)
	if err != nil {
		return fmt.Errorf("failed to delete settlement %d: %w", tno, err)
	}
	if tag.RowsAffected() == 0 {
		return settlement.ErrSettlementNotFound
	}
	return nil
}

// UpdateDisplayNos implements settlement.SettlementRepository.
func (s *settlementRepository) UpdateDisplayNos(ctx context.Context, records []settlement.Record) error {
	nos := make([]displayNo, len(records))
	for i, r := range records {
		nos[i] = displayNo{tno: r.TNo, no: r.DisplayNo}
	}
	return updateDisplayNos(ctx, GetQuerier(ctx, s.db), "settlements", nos)
}

// CountByEmployee implements settlement.SettlementRepository.
func (s *settlementRepository) CountByEmployee(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, s.db)

	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM settlements WHERE employee_id = $1 AND date >= $2 AND date < $3`,
		employeeID, from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count settlements: %w", err)
	}
	return n, nil
}

type displayNo struct {
	tno int64
	no  int
}

// updateDisplayNos rewrites display numbers of table rows in one batch.
func updateDisplayNos(ctx context.Context, q database.Querier, table string, nos []displayNo) error {
	if len(nos) == 0 {
		return nil
	}
	query := fmt.Sprintf(`UPDATE %s SET display_no = $1, updated_at = NOW() WHERE t_no = $2`, table)

	batch := &pgx.Batch{}
	for _, n := range nos {
		batch.Queue(query, n.no, n.tno)
	}
	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for _, n := range nos {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to renumber %s %d: %w", table, n.tno, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("failed to renumber %s %d: row is gone", table, n.tno)
		}
	}
	return br.Close()
}
