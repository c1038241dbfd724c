package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/holiday"
	calendar "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/holiday"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

// NewHolidayService builds calendars from the holidays table.
func NewHolidayService(repo holiday.HolidayRepository) holiday.Provider {
	return &HolidayServiceImpl{HolidayRepository: repo}
}

// Calendar implements holiday.Provider.
func (s *HolidayServiceImpl) Calendar(ctx context.Context, from, to time.Time) (calendar.Set, error) {
	holidays, err := s.HolidayRepository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	set := calendar.Set{}
	for _, h := range holidays {
		set.Add(h.Date, h.Name)
	}
	return set, nil
}
