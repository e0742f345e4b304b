package service

import (
	"context"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) List(ctx context.Context, tenantID, userID, page, pageSize int64) ([]domain.Notification, int64, error) {
	notes, total, err := s.noteRepo.ListByUser(ctx, tenantID, userID, page, pageSize)
	if err != nil {
		return nil, 0, mapRepoErr(err, "notifications")
	}
	return notes, total, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, tenantID, userID, id int64) error {
	return mapRepoErr(s.noteRepo.MarkAsRead(ctx, tenantID, userID, id), "notification")
}
