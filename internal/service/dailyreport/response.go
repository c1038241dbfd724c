package dailyreport

import (
	"context"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/dailyreport"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (s *DailyReportServiceImpl) toResponse(ctx context.Context, actor user.Actor, p dailyreport.Post) dailyreport.PostResponse {
	resp := dailyreport.PostResponse{
		ID:         p.ID,
		RoomID:     p.RoomID,
		EmployeeID: p.EmployeeID,
		Kind:       string(p.Kind),
		Date:       p.Date.Format("2006-01-02"),
		Sections:   make([]dailyreport.SectionResponse, 0, len(p.Sections)),
		CreatedAt:  p.CreatedAt,
	}
	for _, sec := range p.Sections {
		resp.Sections = append(resp.Sections, s.sectionResponse(ctx, actor, p, sec))
	}
	return resp
}

func (s *DailyReportServiceImpl) sectionResponse(ctx context.Context, actor user.Actor, p dailyreport.Post, sec dailyreport.Section) dailyreport.SectionResponse {
	return dailyreport.SectionResponse{
		ID:            sec.ID,
		SortNo:        sec.SortNo,
		Title:         sec.Title,
		Content:       sec.Content,
		Status:        string(sec.Status),
		StatusCaption: sec.Status.Caption(),
		RejectReason:  sec.RejectReason,
		Actions:       s.actionsFor(ctx, actor, p.EmployeeID, sec.Status),
	}
}
