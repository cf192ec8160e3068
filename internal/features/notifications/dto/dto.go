package notifications_dto

import (
	notifications_models "taskhive/internal/features/notifications/models"
)

type ListNotificationsRequestDTO struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

type ListNotificationsResponseDTO struct {
	Notifications []*notifications_models.Notification `json:"notifications"`
	Total         int64                                `json:"total"`
	UnreadCount   int64                                `json:"unreadCount"`
}
