package usecase

import (
	"context"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

type ActivityQuery struct {
	UserID    *uint
	Category  string
	Action    string
	StartDate string
	EndDate   string
	repository.Page
}

type ActivityUsecase struct {
	repo   repository.ActivityRepository
	policy *access.Policy
}

func NewActivityUsecase(repo repository.ActivityRepository, policy *access.Policy) *ActivityUsecase {
	return &ActivityUsecase{repo: repo, policy: policy}
}

// List returns audit entries, newest first. EndDate is inclusive.
func (u *ActivityUsecase) List(ctx context.Context, caller *access.Caller, q ActivityQuery) ([]model.ActivityLog, int64, error) {
	if err := u.policy.Authorize(caller, access.ActivityView, nil); err != nil {
		return nil, 0, err
	}
	f := repository.ActivityFilter{
		UserID:   q.UserID,
		Category: q.Category,
		Action:   q.Action,
		Page:     q.Page,
	}
	if q.StartDate != "" {
		since, err := parseDate("start_date", q.StartDate)
		if err != nil {
			return nil, 0, err
		}
		f.Since = &since
	}
	if q.EndDate != "" {
		end, err := parseDate("end_date", q.EndDate)
		if err != nil {
			return nil, 0, err
		}
		until := end.AddDate(0, 0, 1)
		f.Until = &until
	}
	return u.repo.List(ctx, f)
}
