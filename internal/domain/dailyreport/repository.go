package dailyreport

import "context"

type DailyReportRepository interface {
	// CreatePost stores the post and its sections together.
	CreatePost(ctx context.Context, post Post) error
	GetPost(ctx context.Context, id string) (Post, error)
	ListPosts(ctx context.Context, filter Filter) ([]Post, error)
	// GetSectionForUpdate locks the section row for the surrounding transaction.
	GetSectionForUpdate(ctx context.Context, id string) (Section, error)
	UpdateSection(ctx context.Context, s Section) error
}
