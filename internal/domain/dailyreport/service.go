package dailyreport

import "context"

type DailyReportService interface {
	List(ctx context.Context, req ListRequest) ([]PostResponse, error)
	Create(ctx context.Context, req CreateRequest) (PostResponse, error)
	UpdateSection(ctx context.Context, req UpdateSectionRequest) (SectionResponse, error)
	TransitionSection(ctx context.Context, req TransitionRequest) (SectionResponse, error)
}
