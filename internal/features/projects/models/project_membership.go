package projects_models

import (
	"time"

	users_enums "taskhive/internal/features/users/enums"

	"github.com/google/uuid"
)

type ProjectMembership struct {
	ID        uuid.UUID               `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID               `json:"projectId" gorm:"column:project_id;uniqueIndex:idx_project_user"`
	UserID    uuid.UUID               `json:"userId"    gorm:"column:user_id;uniqueIndex:idx_project_user"`
	Role      users_enums.ProjectRole `json:"role"      gorm:"column:role"`
	JoinedAt  time.Time               `json:"joinedAt"  gorm:"column:joined_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
