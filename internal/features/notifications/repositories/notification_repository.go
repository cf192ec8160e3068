package notifications_repositories

import (
	"errors"
	"time"

	notifications_models "taskhive/internal/features/notifications/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository struct{}

func (r *NotificationRepository) CreateNotification(notification *notifications_models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(notification).Error
}

func (r *NotificationRepository) GetNotificationByID(
	notificationID uuid.UUID,
) (*notifications_models.Notification, error) {
	var notification notifications_models.Notification

	err := storage.GetDb().
		Where("id = ?", notificationID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &notification, nil
}

func (r *NotificationRepository) GetNotificationsByRecipientID(
	recipientID uuid.UUID,
	limit int,
	offset int,
) ([]*notifications_models.Notification, int64, error) {
	var notifications []*notifications_models.Notification
	var total int64

	err := storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = storage.GetDb().
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *NotificationRepository) CountUnread(recipientID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error

	return count, err
}

func (r *NotificationRepository) MarkRead(notificationID uuid.UUID) error {
	return storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(recipientID uuid.UUID) error {
	return storage.GetDb().
		Model(&notifications_models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) DeleteNotification(notificationID uuid.UUID) error {
	return storage.GetDb().
		Where("id = ?", notificationID).
		Delete(&notifications_models.Notification{}).Error
}
