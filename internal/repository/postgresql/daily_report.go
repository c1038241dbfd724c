package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/dailyreport"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyReportRepository struct {
	db *database.DB
}

func NewDailyReportRepository(db *database.DB) dailyreport.DailyReportRepository {
	return &dailyReportRepository{db: db}
}

const sectionColumns = `id, post_id, sort_no, title, content, status, reject_reason, reviewed_by, created_at, updated_at`

func scanSection(row pgx.Row) (dailyreport.Section, error) {
	var s dailyreport.Section
	var status string
	err := row.Scan(
		&s.ID, &s.PostID, &s.SortNo, &s.Title, &s.Content, &status,
		&s.RejectReason, &s.ReviewedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return dailyreport.Section{}, err
	}
	s.Status = dailyreport.ParseStatus(status)
	return s, nil
}

// CreatePost implements dailyreport.DailyReportRepository.
func (d *dailyReportRepository) CreatePost(ctx context.Context, post dailyreport.Post) error {
	q := GetQuerier(ctx, d.db)

	_, err := q.Exec(ctx, `
		INSERT INTO daily_report_posts (id, room_id, employee_id, kind, date)
		VALUES ($1, $2, $3, $4, $5)
	`, post.ID, post.RoomID, post.EmployeeID, string(post.Kind), post.Date)
	if err != nil {
		return fmt.Errorf("failed to create daily report post: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range post.Sections {
		batch.Queue(`
			INSERT INTO daily_report_sections (id, post_id, sort_no, title, content, status, reject_reason, reviewed_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, s.ID, post.ID, s.SortNo, s.Title, s.Content, string(s.Status), s.RejectReason, s.ReviewedBy)
	}
	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for _, s := range post.Sections {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to create section %q: %w", s.Title, err)
		}
	}
	return br.Close()
}

// GetPost implements dailyreport.DailyReportRepository.
func (d *dailyReportRepository) GetPost(ctx context.Context, id string) (dailyreport.Post, error) {
	posts, err := d.queryPosts(ctx, `p.id = $1`, id)
	if err != nil {
		return dailyreport.Post{}, err
	}
	if len(posts) == 0 {
		return dailyreport.Post{}, dailyreport.ErrPostNotFound
	}
	return posts[0], nil
}

// ListPosts implements dailyreport.DailyReportRepository.
func (d *dailyReportRepository) ListPosts(ctx context.Context, f dailyreport.Filter) ([]dailyreport.Post, error) {
	where := []string{"p.date >= $1", "p.date <= $2"}
	args := []any{f.From, f.To}
	argIdx := 3

	if f.EmployeeID != nil {
		where = append(where, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *f.EmployeeID)
		argIdx++
	}
	if f.RoomID != nil {
		where = append(where, fmt.Sprintf("p.room_id = $%d", argIdx))
		args = append(args, *f.RoomID)
		argIdx++
	}
	if f.Kind != nil {
		where = append(where, fmt.Sprintf("p.kind = $%d", argIdx))
		args = append(args, string(*f.Kind))
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM daily_report_sections s WHERE s.post_id = p.id AND s.status = $%d)", argIdx))
		args = append(args, string(*f.Status))
	}

	return d.queryPosts(ctx, strings.Join(where, " AND "), args...)
}

// queryPosts loads the matching posts, then all their sections in one query.
func (d *dailyReportRepository) queryPosts(ctx context.Context, where string, args ...any) ([]dailyreport.Post, error) {
	q := GetQuerier(ctx, d.db)

	rows, err := q.Query(ctx, `
		SELECT p.id, p.room_id, p.employee_id, p.kind, p.date, p.created_at, p.updated_at
		FROM daily_report_posts p
		WHERE `+where+`
		ORDER BY p.date, p.id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily report posts: %w", err)
	}

	var (
		posts []dailyreport.Post
		ids   []string
		index = map[string]int{}
	)
	for rows.Next() {
		var p dailyreport.Post
		var kind string
		if err := rows.Scan(&p.ID, &p.RoomID, &p.EmployeeID, &kind, &p.Date, &p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan daily report post: %w", err)
		}
		p.Kind = dailyreport.Kind(kind)
		index[p.ID] = len(posts)
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list daily report posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, nil
	}

	srows, err := q.Query(ctx, `
		SELECT `+sectionColumns+`
		FROM daily_report_sections
		WHERE post_id = ANY($1::uuid[])
		ORDER BY post_id, sort_no
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily report sections: %w", err)
	}
	defer srows.Close()
	for srows.Next() {
		s, err := scanSection(srows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily report section: %w", err)
		}
		i := index[s.PostID]
		posts[i].Sections = append(posts[i].Sections, s)
	}
	return posts, srows.Err()
}

// GetSectionForUpdate implements dailyreport.DailyReportRepository.
func (d *dailyReportRepository) GetSectionForUpdate(ctx context.Context, id string) (dailyreport.Section, error) {
	q := GetQuerier(ctx, d.db)

	s, err := scanSection(q.QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM daily_report_sections WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dailyreport.Section{}, dailyreport.ErrSectionNotFound
		}
		return dailyreport.Section{}, fmt.Errorf("failed to get daily report section: %w", err)
	}
	return s, nil
}

// UpdateSection implements dailyreport.DailyReportRepository.
func (d *dailyReportRepository) UpdateSection(ctx context.Context, s dailyreport.Section) error {
	q := GetQuerier(ctx, d.db)

	tag, err := q.Exec(ctx, `
		UPDATE daily_report_sections SET
			title = $2, content = $3, status = $4, reject_reason = $5, reviewed_by = $6, updated_at = NOW()
		WHERE id = $1
	`, s.ID, s.Title, s.Content, string(s.Status), s.RejectReason, s.ReviewedBy)
	if err != nil {
		return fmt.Errorf("failed to update daily report section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dailyreport.ErrSectionNotFound
	}
	return nil
}
