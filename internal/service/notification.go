package service

import (
	"context"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

const defaultNotificationLimit = 50

type notificationService struct {
	notifRepo repository.NotificationRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) List(ctx context.Context, memberID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return s.notifRepo.List(ctx, memberID, limit)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, memberID string) error {
	return s.notifRepo.MarkAsRead(ctx, id, memberID)
}
