package usecase

import (
	"context"
	"time"

	"employee-management-backend/internal/access"
	"employee-management-backend/internal/model"
	"employee-management-backend/internal/repository"
)

type NotificationUsecase struct {
	repo   repository.NotificationRepository
	policy *access.Policy
	now    func() time.Time
}

func NewNotificationUsecase(repo repository.NotificationRepository, policy *access.Policy) *NotificationUsecase {
	return &NotificationUsecase{repo: repo, policy: policy, now: time.Now}
}

func recipient(caller *access.Caller) repository.Recipient {
	return repository.Recipient{UserID: caller.UserID, Role: caller.Role}
}

// List returns notifications addressed to the caller, the caller's role, or everyone.
func (u *NotificationUsecase) List(ctx context.Context, caller *access.Caller, unreadOnly bool, page repository.Page) ([]model.Notification, int64, error) {
	if err := u.policy.Authorize(caller, access.NotificationRead, nil); err != nil {
		return nil, 0, err
	}
	return u.repo.List(ctx, recipient(caller), unreadOnly, page)
}

func (u *NotificationUsecase) UnreadCount(ctx context.Context, caller *access.Caller) (int64, error) {
	if err := u.policy.Authorize(caller, access.NotificationRead, nil); err != nil {
		return 0, err
	}
	return u.repo.CountUnread(ctx, recipient(caller))
}

// MarkRead flips one notification visible to the caller.
func (u *NotificationUsecase) MarkRead(ctx context.Context, caller *access.Caller, id uint) error {
	if err := u.policy.Authorize(caller, access.NotificationRead, nil); err != nil {
		return err
	}
	ok, err := u.repo.MarkRead(ctx, id, recipient(caller), u.now())
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrNotFound("notification not found")
	}
	return nil
}

// MarkAllRead flips the caller's rows. Admin and hr also clear rows sent to their role.
func (u *NotificationUsecase) MarkAllRead(ctx context.Context, caller *access.Caller) (int64, error) {
	if err := u.policy.Authorize(caller, access.NotificationRead, nil); err != nil {
		return 0, err
	}
	return u.repo.MarkAllRead(ctx, recipient(caller), caller.Role.Privileged(), u.now())
}
