package tasks_dto

import (
	"time"

	tasks_models "taskhive/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title          string                     `json:"title" binding:"required,min=1,max=300"`
	Description    string                     `json:"description" binding:"max=5000"`
	SprintID       *uuid.UUID                 `json:"sprintId"`
	Status         *tasks_models.TaskStatus   `json:"status"`
	Priority       *tasks_models.TaskPriority `json:"priority"`
	AssigneeID     *uuid.UUID                 `json:"assigneeId"`
	DueDate        *time.Time                 `json:"dueDate"`
	EstimatedHours *float64                   `json:"estimatedHours"`
}

type UpdateTaskRequestDTO struct {
	Title          *string                    `json:"title" binding:"omitempty,min=1,max=300"`
	Description    *string                    `json:"description" binding:"omitempty,max=5000"`
	SprintID       *uuid.UUID                 `json:"sprintId"`
	ClearSprint    bool                       `json:"clearSprint"`
	Status         *tasks_models.TaskStatus   `json:"status"`
	Priority       *tasks_models.TaskPriority `json:"priority"`
	AssigneeID     *uuid.UUID                 `json:"assigneeId"`
	ClearAssignee  bool                       `json:"clearAssignee"`
	DueDate        *time.Time                 `json:"dueDate"`
	EstimatedHours *float64                   `json:"estimatedHours"`
	ActualHours    *float64                   `json:"actualHours"`
}

type UpdateTaskStatusRequestDTO struct {
	Status   tasks_models.TaskStatus `json:"status" binding:"required"`
	Position *int                    `json:"position"`
}

type BulkPositionItemDTO struct {
	TaskID   uuid.UUID                `json:"taskId" binding:"required"`
	Position int                      `json:"position"`
	Status   *tasks_models.TaskStatus `json:"status"`
}

type BulkUpdatePositionsRequestDTO struct {
	Updates []BulkPositionItemDTO `json:"updates" binding:"required,min=1"`
}

type BulkUpdateFailureDTO struct {
	TaskID uuid.UUID `json:"taskId"`
	Reason string    `json:"reason"`
}

// Items are applied independently; one failure never reverts another
// item's update.
type BulkUpdatePositionsResponseDTO struct {
	Applied []uuid.UUID            `json:"applied"`
	Failed  []BulkUpdateFailureDTO `json:"failed"`
}

type AddCommentRequestDTO struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

type CommentResponseDTO struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TaskResponseDTO struct {
	ID             uuid.UUID                 `json:"id"`
	Title          string                    `json:"title"`
	Description    string                    `json:"description"`
	ProjectID      uuid.UUID                 `json:"projectId"`
	SprintID       *uuid.UUID                `json:"sprintId"`
	Status         tasks_models.TaskStatus   `json:"status"`
	Priority       tasks_models.TaskPriority `json:"priority"`
	AssigneeID     *uuid.UUID                `json:"assigneeId"`
	CreatorID      uuid.UUID                 `json:"creatorId"`
	DueDate        *time.Time                `json:"dueDate"`
	EstimatedHours float64                   `json:"estimatedHours"`
	ActualHours    float64                   `json:"actualHours"`
	Position       int                       `json:"position"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
	Comments       []CommentResponseDTO      `json:"comments,omitempty"`
}

type ListTasksResponseDTO struct {
	Tasks []TaskResponseDTO `json:"tasks"`
	Total int64             `json:"total"`
}
