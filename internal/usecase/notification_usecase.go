package usecase

import (
	"context"

	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
}

func NewNotificationUsecase(notificationRepo domain.NotificationRepository) domain.NotificationUsecase {
	return &notificationUsecase{notificationRepo: notificationRepo}
}

func (u *notificationUsecase) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	notifications, err := u.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notifications, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, id, userID string) error {
	if err := u.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
