package dailyreport

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/dailyreport"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
)

// roleFor resolves the capacity in which actor acts on a section of post.
// The author acts as self. A reviewer acts as trainer on submitted sections
// of their own trainees and as office staff on first-approved ones; admins
// may act in either capacity for anyone.
func (s *DailyReportServiceImpl) roleFor(ctx context.Context, actor user.Actor, post dailyreport.Post, current dailyreport.Status, action workflow.Action) (workflow.Role, error) {
	if actor.IsSelf(post.EmployeeID) {
		return dailyreport.RoleSelf, nil
	}

	candidates, err := s.reviewerRoles(ctx, actor, post.EmployeeID)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", dailyreport.ErrNotReviewer
	}
	for _, role := range candidates {
		if dailyreport.Machine.Can(workflow.State(current), action, role) {
			return role, nil
		}
	}
	// No capacity fits; let the machine report the transition error.
	return candidates[0], nil
}

func (s *DailyReportServiceImpl) reviewerRoles(ctx context.Context, actor user.Actor, authorID string) ([]workflow.Role, error) {
	var roles []workflow.Role
	if user.HasPermission(actor.Role, user.PermissionDailyReportFirstReview) {
		ok := actor.Role == user.RoleAdmin
		if !ok {
			author, err := s.EmployeeRepository.GetByID(ctx, authorID)
			if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, fmt.Errorf("failed to get author: %w", err)
			}
			ok = err == nil && author.IsTraineeOf(actor.EmployeeID)
		}
		if ok {
			roles = append(roles, dailyreport.RoleTrainer)
		}
	}
	if user.HasPermission(actor.Role, user.PermissionDailyReportSecondReview) {
		roles = append(roles, dailyreport.RoleOfficeStaff)
	}
	return roles, nil
}

// actionsFor lists what actor may do next with a section in current.
func (s *DailyReportServiceImpl) actionsFor(ctx context.Context, actor user.Actor, authorID string, current dailyreport.Status) []string {
	out := []string{}
	var roles []workflow.Role
	if actor.IsSelf(authorID) {
		roles = []workflow.Role{dailyreport.RoleSelf}
	} else {
		var err error
		roles, err = s.reviewerRoles(ctx, actor, authorID)
		if err != nil {
			return out
		}
	}
	seen := make(map[workflow.Action]bool)
	for _, role := range roles {
		for _, a := range dailyreport.Permitted(current, role) {
			if !seen[a] {
				seen[a] = true
				out = append(out, string(a))
			}
		}
	}
	return out
}
