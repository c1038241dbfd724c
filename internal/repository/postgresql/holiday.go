package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// ListBetween implements holiday.HolidayRepository.
func (h *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	rows, err := q.Query(ctx, `SELECT date, name FROM holidays WHERE date >= $1 AND date < $2 ORDER BY date`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var out []holiday.Holiday
	for rows.Next() {
		var d holiday.Holiday
		if err := rows.Scan(&d.Date, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
