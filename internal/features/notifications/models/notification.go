package notifications_models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeveritySuccess NotificationSeverity = "success"
	SeverityWarning NotificationSeverity = "warning"
	SeverityError   NotificationSeverity = "error"
)

type Notification struct {
	ID          uuid.UUID            `json:"id"          gorm:"column:id"`
	RecipientID uuid.UUID            `json:"recipientId" gorm:"column:recipient_id;index"`
	Severity    NotificationSeverity `json:"severity"    gorm:"column:severity"`
	Message     string               `json:"message"     gorm:"column:message"`
	IsRead      bool                 `json:"isRead"      gorm:"column:is_read"`
	ProjectID   *uuid.UUID           `json:"projectId"   gorm:"column:project_id"`
	TaskID      *uuid.UUID           `json:"taskId"      gorm:"column:task_id"`
	CreatedAt   time.Time            `json:"createdAt"   gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
