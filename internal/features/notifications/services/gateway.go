package notifications_services

import (
	"log/slog"

	"taskhive/internal/events"
	notifications_models "taskhive/internal/features/notifications/models"
	notifications_repositories "taskhive/internal/features/notifications/repositories"
)

// Gateway turns lifecycle events into persisted notifications and
// real-time fan-out messages. It never fails the originating mutation:
// every error here is logged and dropped.
type Gateway struct {
	notificationRepository *notifications_repositories.NotificationRepository
	dispatcher             events.Dispatcher
	logger                 *slog.Logger
}

func (g *Gateway) SetDispatcher(dispatcher events.Dispatcher) {
	g.dispatcher = dispatcher
}

func (g *Gateway) HandleEvent(event events.Event) {
	severity := severityFor(event.Type)

	for _, recipientID := range event.Recipients {
		notification := &notifications_models.Notification{
			RecipientID: recipientID,
			Severity:    severity,
			Message:     event.Message,
			ProjectID:   event.ProjectID,
			TaskID:      event.TaskID,
			CreatedAt:   event.OccurredAt,
		}

		if err := g.notificationRepository.CreateNotification(notification); err != nil {
			g.logger.Error("failed to persist notification",
				"recipientId", recipientID.String(),
				"eventType", string(event.Type),
				"error", err)
			continue
		}

		if g.dispatcher != nil {
			g.dispatcher.Publish(events.UserChannel(recipientID), event)
		}
	}

	if g.dispatcher != nil && event.ProjectID != nil {
		g.dispatcher.Publish(events.ProjectChannel(*event.ProjectID), event)
	}
}

func severityFor(eventType events.Type) notifications_models.NotificationSeverity {
	switch eventType {
	case events.MemberAdded:
		return notifications_models.SeveritySuccess
	case events.TaskDeleted, events.MemberRemoved:
		return notifications_models.SeverityWarning
	default:
		return notifications_models.SeverityInfo
	}
}
