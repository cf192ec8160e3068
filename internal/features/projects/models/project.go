package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold,
		ProjectStatusCompleted, ProjectStatusArchived:
		return true
	default:
		return false
	}
}

type Project struct {
	ID          uuid.UUID     `json:"id"          gorm:"column:id"`
	Name        string        `json:"name"        gorm:"column:name"`
	Description string        `json:"description" gorm:"column:description"`
	CreatorID   uuid.UUID     `json:"creatorId"   gorm:"column:creator_id"`
	Status      ProjectStatus `json:"status"      gorm:"column:status"`
	StartDate   *time.Time    `json:"startDate"   gorm:"column:start_date"`
	EndDate     *time.Time    `json:"endDate"     gorm:"column:end_date"`
	IsActive    bool          `json:"isActive"    gorm:"column:is_active"`
	CreatedAt   time.Time     `json:"createdAt"   gorm:"column:created_at"`

	// IsNotExists marks a cached negative lookup. Never persisted.
	IsNotExists bool `json:"-" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}
