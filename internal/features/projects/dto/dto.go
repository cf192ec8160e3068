package projects_dto

import (
	"time"

	projects_models "taskhive/internal/features/projects/models"
	users_enums "taskhive/internal/features/users/enums"

	"github.com/google/uuid"
)

type CreateProjectRequestDTO struct {
	Name        string      `json:"name" binding:"required,min=1,max=200"`
	Description string      `json:"description" binding:"max=2000"`
	StartDate   *time.Time  `json:"startDate"`
	EndDate     *time.Time  `json:"endDate"`
	MemberIDs   []uuid.UUID `json:"memberIds"`
}

type UpdateProjectRequestDTO struct {
	Name        *string                        `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string                        `json:"description" binding:"omitempty,max=2000"`
	Status      *projects_models.ProjectStatus `json:"status"`
	StartDate   *time.Time                     `json:"startDate"`
	EndDate     *time.Time                     `json:"endDate"`
}

type MemberResponseDTO struct {
	UserID   uuid.UUID               `json:"userId"`
	Name     string                  `json:"name"`
	Email    string                  `json:"email"`
	Role     users_enums.ProjectRole `json:"role"`
	JoinedAt time.Time               `json:"joinedAt"`
}

type ProjectResponseDTO struct {
	ID          uuid.UUID                     `json:"id"`
	Name        string                        `json:"name"`
	Description string                        `json:"description"`
	CreatorID   uuid.UUID                     `json:"creatorId"`
	Status      projects_models.ProjectStatus `json:"status"`
	StartDate   *time.Time                    `json:"startDate"`
	EndDate     *time.Time                    `json:"endDate"`
	CreatedAt   time.Time                     `json:"createdAt"`
	Members     []MemberResponseDTO           `json:"members"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
	Total    int64                `json:"total"`
}

type AddMemberRequestDTO struct {
	UserID uuid.UUID                `json:"userId" binding:"required"`
	Role   *users_enums.ProjectRole `json:"role"`
}
