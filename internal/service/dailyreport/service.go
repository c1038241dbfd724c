package dailyreport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/dailyreport"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
	"github.com/google/uuid"
)

type DailyReportServiceImpl struct {
	tx database.TxRunner
	dailyreport.DailyReportRepository
	employee.EmployeeRepository
	notifier notification.Notifier
}

func NewDailyReportService(
	tx database.TxRunner,
	reportRepo dailyreport.DailyReportRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Notifier,
) dailyreport.DailyReportService {
	return &DailyReportServiceImpl{
		tx:                    tx,
		DailyReportRepository: reportRepo,
		EmployeeRepository:    employeeRepo,
		notifier:              notifier,
	}
}

// List implements dailyreport.DailyReportService. Callers without a review
// or view-all permission only see their own posts.
func (s *DailyReportServiceImpl) List(ctx context.Context, req dailyreport.ListRequest) ([]dailyreport.PostResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !canReadOthers(actor) {
		if req.EmployeeID != nil && *req.EmployeeID != actor.EmployeeID {
			return nil, user.ErrNotOwnRecord
		}
		req.EmployeeID = &actor.EmployeeID
	}

	posts, err := s.DailyReportRepository.ListPosts(ctx, req.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to list daily reports: %w", err)
	}
	out := make([]dailyreport.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.toResponse(ctx, actor, p))
	}
	return out, nil
}

func canReadOthers(a user.Actor) bool {
	return user.HasPermission(a.Role, user.PermissionReportViewAll) ||
		user.HasPermission(a.Role, user.PermissionDailyReportFirstReview) ||
		user.HasPermission(a.Role, user.PermissionDailyReportSecondReview)
}

// Create implements dailyreport.DailyReportService.
func (s *DailyReportServiceImpl) Create(ctx context.Context, req dailyreport.CreateRequest) (dailyreport.PostResponse, error) {
	if err := req.Validate(); err != nil {
		return dailyreport.PostResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return dailyreport.PostResponse{}, err
	}
	if !actor.IsSelf(req.EmployeeID) {
		return dailyreport.PostResponse{}, user.ErrNotOwnRecord
	}

	action := dailyreport.ActionSave
	if req.Submit {
		action = dailyreport.ActionSubmit
	}
	status, err := dailyreport.Next(dailyreport.StatusNoInput, action, dailyreport.RoleSelf)
	if err != nil {
		return dailyreport.PostResponse{}, err
	}

	postID, err := uuid.NewV7()
	if err != nil {
		return dailyreport.PostResponse{}, fmt.Errorf("failed to generate post id: %w", err)
	}
	post := dailyreport.Post{
		ID:         postID.String(),
		RoomID:     req.RoomID,
		EmployeeID: req.EmployeeID,
		Kind:       dailyreport.Kind(req.Kind),
		Sections:   make([]dailyreport.Section, 0, len(req.Sections)),
	}
	post.Date, _ = parseDate(req.Date)
	for i, in := range req.Sections {
		id, err := uuid.NewV7()
		if err != nil {
			return dailyreport.PostResponse{}, fmt.Errorf("failed to generate section id: %w", err)
		}
		post.Sections = append(post.Sections, dailyreport.Section{
			ID:      id.String(),
			PostID:  post.ID,
			SortNo:  i + 1,
			Title:   in.Title,
			Content: in.Content,
			Status:  status,
		})
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.DailyReportRepository.CreatePost(ctx, post); err != nil {
			return fmt.Errorf("failed to create daily report: %w", err)
		}
		post, err = s.DailyReportRepository.GetPost(ctx, post.ID)
		return err
	})
	if err != nil {
		return dailyreport.PostResponse{}, err
	}
	return s.toResponse(ctx, actor, post), nil
}

// UpdateSection implements dailyreport.DailyReportService. Only the author
// edits; with Submit set the section is also sent for review.
func (s *DailyReportServiceImpl) UpdateSection(ctx context.Context, req dailyreport.UpdateSectionRequest) (dailyreport.SectionResponse, error) {
	if err := req.Validate(); err != nil {
		return dailyreport.SectionResponse{}, err
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return dailyreport.SectionResponse{}, err
	}

	var (
		sec  dailyreport.Section
		post dailyreport.Post
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sec, post, err = s.lockSection(ctx, req.SectionID)
		if err != nil {
			return err
		}
		if !actor.IsSelf(post.EmployeeID) {
			return dailyreport.ErrNotAuthor
		}

		action := dailyreport.ActionSave
		if req.Submit {
			action = dailyreport.SubmitAction(sec.Status)
		}
		to, err := dailyreport.Next(sec.Status, action, dailyreport.RoleSelf)
		if err != nil {
			return err
		}
		sec.Title = req.Title
		sec.Content = req.Content
		if to != sec.Status {
			sec.RejectReason = nil
		}
		sec.Status = to
		if err := s.DailyReportRepository.UpdateSection(ctx, sec); err != nil {
			return fmt.Errorf("failed to update section: %w", err)
		}
		return nil
	})
	if err != nil {
		return dailyreport.SectionResponse{}, err
	}
	return s.sectionResponse(ctx, actor, post, sec), nil
}

// TransitionSection implements dailyreport.DailyReportService.
func (s *DailyReportServiceImpl) TransitionSection(ctx context.Context, req dailyreport.TransitionRequest) (dailyreport.SectionResponse, error) {
	if err := req.Validate(); err != nil {
		return dailyreport.SectionResponse{}, err
	}
	action := workflow.Action(req.Action)
	if action == dailyreport.ActionReject && (req.Reason == nil || strings.TrimSpace(*req.Reason) == "") {
		return dailyreport.SectionResponse{}, dailyreport.ErrRejectReasonEmpty
	}
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return dailyreport.SectionResponse{}, err
	}

	var (
		sec  dailyreport.Section
		post dailyreport.Post
		from dailyreport.Status
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sec, post, err = s.lockSection(ctx, req.SectionID)
		if err != nil {
			return err
		}
		role, err := s.roleFor(ctx, actor, post, sec.Status, action)
		if err != nil {
			return err
		}
		to, err := dailyreport.Next(sec.Status, action, role)
		if err != nil {
			return err
		}

		from = sec.Status
		sec.Status = to
		switch action {
		case dailyreport.ActionReject:
			sec.RejectReason = req.Reason
			sec.ReviewedBy = &actor.EmployeeID
		case dailyreport.ActionApprove:
			sec.RejectReason = nil
			sec.ReviewedBy = &actor.EmployeeID
		default:
			sec.RejectReason = nil
		}
		if err := s.DailyReportRepository.UpdateSection(ctx, sec); err != nil {
			return fmt.Errorf("failed to update section: %w", err)
		}
		return nil
	})
	if err != nil {
		return dailyreport.SectionResponse{}, err
	}

	slog.Info("daily report transition",
		"section_id", sec.ID,
		"post_id", post.ID,
		"action", action,
		"from", from,
		"to", sec.Status,
		"actor_id", actor.EmployeeID,
	)
	if action == dailyreport.ActionReject && s.notifier != nil {
		s.notifier.Notify(ctx, notification.Message{
			Type:       notification.TypeDailyReportRejected,
			Audience:   notification.AudienceEmployee,
			EmployeeID: post.EmployeeID,
			Text: fmt.Sprintf("Your %s report for %s (%s) was returned.\nReason: %s",
				post.Kind, post.Date.Format("2006-01-02"), sec.Title, *req.Reason),
		})
	}
	return s.sectionResponse(ctx, actor, post, sec), nil
}

func (s *DailyReportServiceImpl) lockSection(ctx context.Context, sectionID string) (dailyreport.Section, dailyreport.Post, error) {
	sec, err := s.DailyReportRepository.GetSectionForUpdate(ctx, sectionID)
	if err != nil {
		return dailyreport.Section{}, dailyreport.Post{}, err
	}
	post, err := s.DailyReportRepository.GetPost(ctx, sec.PostID)
	if err != nil {
		return dailyreport.Section{}, dailyreport.Post{}, err
	}
	return sec, post, nil
}
