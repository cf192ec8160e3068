package projects_repositories

import (
	"errors"
	"time"

	projects_models "taskhive/internal/features/projects/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}

	return storage.GetDb().Create(project).Error
}

// GetProjectByID returns nil without error when no active project matches.
func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := storage.GetDb().
		Where("id = ? AND is_active = ?", projectID, true).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetProjectsByIDs(projectIDs []uuid.UUID) ([]*projects_models.Project, error) {
	if len(projectIDs) == 0 {
		return []*projects_models.Project{}, nil
	}

	var projects []*projects_models.Project

	err := storage.GetDb().
		Where("id IN ? AND is_active = ?", projectIDs, true).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *ProjectRepository) UpdateProject(project *projects_models.Project) error {
	return storage.GetDb().Save(project).Error
}

func (r *ProjectRepository) DeactivateProject(projectID uuid.UUID) error {
	return storage.GetDb().
		Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		Update("is_active", false).Error
}
