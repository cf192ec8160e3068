package sprints_dto

import (
	"time"

	sprints_models "taskhive/internal/features/sprints/models"

	"github.com/google/uuid"
)

type CreateSprintRequestDTO struct {
	Name        string    `json:"name" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	Goal        string    `json:"goal" binding:"max=2000"`
}

type UpdateSprintRequestDTO struct {
	Name        *string                      `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string                      `json:"description" binding:"omitempty,max=2000"`
	StartDate   *time.Time                   `json:"startDate"`
	EndDate     *time.Time                   `json:"endDate"`
	Goal        *string                      `json:"goal" binding:"omitempty,max=2000"`
	Status      *sprints_models.SprintStatus `json:"status"`
}

type SprintResponseDTO struct {
	ID          uuid.UUID                   `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	ProjectID   uuid.UUID                   `json:"projectId"`
	StartDate   time.Time                   `json:"startDate"`
	EndDate     time.Time                   `json:"endDate"`
	Goal        string                      `json:"goal"`
	Status      sprints_models.SprintStatus `json:"status"`
	CreatorID   uuid.UUID                   `json:"creatorId"`
	CreatedAt   time.Time                   `json:"createdAt"`
}

type ListSprintsResponseDTO struct {
	Sprints []SprintResponseDTO `json:"sprints"`
	Total   int64               `json:"total"`
}

// TimeProgress and CompletionRate are independent signals: one is
// driven purely by the calendar, the other purely by task statuses.
type SprintStatsResponseDTO struct {
	SprintID       uuid.UUID `json:"sprintId"`
	TotalTasks     int       `json:"totalTasks"`
	CompletedTasks int       `json:"completedTasks"`
	TimeProgress   float64   `json:"timeProgress"`
	CompletionRate float64   `json:"completionRate"`
}
