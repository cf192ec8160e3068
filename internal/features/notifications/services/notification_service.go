package notifications_services

import (
	"fmt"

	"taskhive/internal/apperrors"
	"taskhive/internal/features/access"
	notifications_dto "taskhive/internal/features/notifications/dto"
	notifications_repositories "taskhive/internal/features/notifications/repositories"
	users_models "taskhive/internal/features/users/models"

	"github.com/google/uuid"
)

type NotificationService struct {
	notificationRepository *notifications_repositories.NotificationRepository
}

func (s *NotificationService) ListNotifications(
	request *notifications_dto.ListNotificationsRequestDTO,
	user *users_models.User,
) (*notifications_dto.ListNotificationsResponseDTO, error) {
	limit := request.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := max(request.Offset, 0)

	notifications, total, err := s.notificationRepository.GetNotificationsByRecipientID(user.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := s.notificationRepository.CountUnread(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &notifications_dto.ListNotificationsResponseDTO{
		Notifications: notifications,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) MarkRead(notificationID uuid.UUID, user *users_models.User) error {
	if err := s.authorize(notificationID, user, access.OpNotificationUpdate); err != nil {
		return err
	}

	return s.notificationRepository.MarkRead(notificationID)
}

func (s *NotificationService) MarkAllRead(user *users_models.User) error {
	return s.notificationRepository.MarkAllRead(user.ID)
}

func (s *NotificationService) DeleteNotification(notificationID uuid.UUID, user *users_models.User) error {
	if err := s.authorize(notificationID, user, access.OpNotificationDelete); err != nil {
		return err
	}

	return s.notificationRepository.DeleteNotification(notificationID)
}

// authorize resolves the notification and runs the recipient-only gate.
func (s *NotificationService) authorize(
	notificationID uuid.UUID,
	user *users_models.User,
	op access.Operation,
) error {
	notification, err := s.notificationRepository.GetNotificationByID(notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notification == nil {
		return apperrors.NotFound("notification not found")
	}

	decision := access.Evaluate(user, access.Target{RecipientID: &notification.RecipientID}, op)
	if !decision.Allowed {
		return apperrors.Forbidden(decision.Reason)
	}

	return nil
}
