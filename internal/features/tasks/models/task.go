package tasks_models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// Any status is reachable from any status; the workflow order exists
// for display only.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	default:
		return false
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID             uuid.UUID    `json:"id"             gorm:"column:id"`
	Title          string       `json:"title"          gorm:"column:title"`
	Description    string       `json:"description"    gorm:"column:description"`
	ProjectID      uuid.UUID    `json:"projectId"      gorm:"column:project_id;index"`
	SprintID       *uuid.UUID   `json:"sprintId"       gorm:"column:sprint_id;index"`
	Status         TaskStatus   `json:"status"         gorm:"column:status"`
	Priority       TaskPriority `json:"priority"       gorm:"column:priority"`
	AssigneeID     *uuid.UUID   `json:"assigneeId"     gorm:"column:assignee_id;index"`
	CreatorID      uuid.UUID    `json:"creatorId"      gorm:"column:creator_id"`
	DueDate        *time.Time   `json:"dueDate"        gorm:"column:due_date"`
	EstimatedHours float64      `json:"estimatedHours" gorm:"column:estimated_hours"`
	ActualHours    float64      `json:"actualHours"    gorm:"column:actual_hours"`
	Position       int          `json:"position"       gorm:"column:position"`
	IsActive       bool         `json:"isActive"       gorm:"column:is_active"`
	CreatedAt      time.Time    `json:"createdAt"      gorm:"column:created_at"`
	UpdatedAt      time.Time    `json:"updatedAt"      gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
