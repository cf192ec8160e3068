package ai_dto

import (
	tasks_models "taskhive/internal/features/tasks/models"

	"github.com/google/uuid"
)

type GenerateTasksRequestDTO struct {
	ProjectID   uuid.UUID `json:"projectId"   binding:"required"`
	Description string    `json:"description" binding:"required,min=3,max=2000"`
	Count       int       `json:"count"       binding:"omitempty,min=1,max=20"`
}

type GeneratedTaskDTO struct {
	Title          string                    `json:"title"`
	Description    string                    `json:"description"`
	Priority       tasks_models.TaskPriority `json:"priority"`
	EstimatedHours float64                   `json:"estimatedHours"`
}

type GenerateTasksResponseDTO struct {
	Tasks []GeneratedTaskDTO `json:"tasks"`
}

type SuggestPriorityRequestDTO struct {
	Title       string `json:"title"       binding:"required,min=1,max=500"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

type SuggestPriorityResponseDTO struct {
	Priority tasks_models.TaskPriority `json:"priority"`
	// Degraded marks a fallback answer produced without the provider.
	Degraded bool `json:"degraded,omitempty"`
}

type GenerateSprintPlanRequestDTO struct {
	ProjectID    uuid.UUID `json:"projectId"    binding:"required"`
	Goal         string    `json:"goal"         binding:"required,min=3,max=2000"`
	DurationDays int       `json:"durationDays" binding:"omitempty,min=1,max=90"`
}

type SprintPlanResponseDTO struct {
	Name  string             `json:"name"`
	Goal  string             `json:"goal"`
	Tasks []GeneratedTaskDTO `json:"tasks"`
}

type ProjectSummaryResponseDTO struct {
	Summary string `json:"summary"`
}

type DetectIssuesResponseDTO struct {
	Issues []string `json:"issues"`
}

type ChatRequestDTO struct {
	Message   string     `json:"message"   binding:"required,min=1,max=4000"`
	ProjectID *uuid.UUID `json:"projectId" binding:"omitempty"`
}

type ChatResponseDTO struct {
	Reply string `json:"reply"`
}
