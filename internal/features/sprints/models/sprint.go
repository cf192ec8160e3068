package sprints_models

import (
	"time"

	"github.com/google/uuid"
)

type SprintStatus string

const (
	SprintStatusPlanning  SprintStatus = "PLANNING"
	SprintStatusActive    SprintStatus = "ACTIVE"
	SprintStatusCompleted SprintStatus = "COMPLETED"
	SprintStatusCancelled SprintStatus = "CANCELLED"
)

func (s SprintStatus) IsValid() bool {
	switch s {
	case SprintStatusPlanning, SprintStatusActive, SprintStatusCompleted, SprintStatusCancelled:
		return true
	default:
		return false
	}
}

// EndDate must be strictly after StartDate; the service rejects
// anything else before a sprint is written.
type Sprint struct {
	ID          uuid.UUID    `json:"id"          gorm:"column:id"`
	Name        string       `json:"name"        gorm:"column:name"`
	Description string       `json:"description" gorm:"column:description"`
	ProjectID   uuid.UUID    `json:"projectId"   gorm:"column:project_id;index"`
	StartDate   time.Time    `json:"startDate"   gorm:"column:start_date"`
	EndDate     time.Time    `json:"endDate"     gorm:"column:end_date"`
	Goal        string       `json:"goal"        gorm:"column:goal"`
	Status      SprintStatus `json:"status"      gorm:"column:status"`
	CreatorID   uuid.UUID    `json:"creatorId"   gorm:"column:creator_id"`
	IsActive    bool         `json:"isActive"    gorm:"column:is_active"`
	CreatedAt   time.Time    `json:"createdAt"   gorm:"column:created_at"`
}

func (Sprint) TableName() string {
	return "sprints"
}
