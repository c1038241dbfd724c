package holiday

import (
	"context"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
)

type HolidayRepository interface {
	// ListBetween returns holidays in [from, to) ordered by date.
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
}

// Provider supplies the public holiday calendar for a period.
type Provider interface {
	Calendar(ctx context.Context, from, to time.Time) (holiday.Set, error)
}
