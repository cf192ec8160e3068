package notifications_services

import (
	notifications_repositories "taskhive/internal/features/notifications/repositories"
	"taskhive/internal/util/logger"
)

var notificationRepository = &notifications_repositories.NotificationRepository{}

var notificationService = &NotificationService{
	notificationRepository,
}

var gateway = &Gateway{
	notificationRepository: notificationRepository,
	logger:                 logger.GetLogger(),
}

func GetNotificationService() *NotificationService {
	return notificationService
}

func GetGateway() *Gateway {
	return gateway
}
