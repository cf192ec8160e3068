package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

// Comments are append-only; there is no update or delete path.
type TaskComment struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	TaskID    uuid.UUID `json:"taskId"    gorm:"column:task_id;index"`
	AuthorID  uuid.UUID `json:"authorId"  gorm:"column:author_id"`
	Text      string    `json:"text"      gorm:"column:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (TaskComment) TableName() string {
	return "task_comments"
}
