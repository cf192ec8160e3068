package sprints_repositories

import (
	"errors"
	"time"

	sprints_models "taskhive/internal/features/sprints/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SprintRepository struct{}

func (r *SprintRepository) CreateSprint(sprint *sprints_models.Sprint) error {
	if sprint.ID == uuid.Nil {
		sprint.ID = uuid.New()
	}
	if sprint.CreatedAt.IsZero() {
		sprint.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(sprint).Error
}

// GetSprintByID returns nil without error when no active sprint matches.
func (r *SprintRepository) GetSprintByID(sprintID uuid.UUID) (*sprints_models.Sprint, error) {
	var sprint sprints_models.Sprint

	err := storage.GetDb().
		Where("id = ? AND is_active = ?", sprintID, true).
		First(&sprint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sprint, nil
}

func (r *SprintRepository) GetSprintsByProjectID(projectID uuid.UUID) ([]*sprints_models.Sprint, error) {
	var sprints []*sprints_models.Sprint

	err := storage.GetDb().
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("start_date ASC").
		Find(&sprints).Error
	if err != nil {
		return nil, err
	}

	return sprints, nil
}

func (r *SprintRepository) UpdateSprint(sprint *sprints_models.Sprint) error {
	return storage.GetDb().Save(sprint).Error
}

func (r *SprintRepository) DeactivateSprint(sprintID uuid.UUID) error {
	return storage.GetDb().
		Model(&sprints_models.Sprint{}).
		Where("id = ?", sprintID).
		Update("is_active", false).Error
}

func (r *SprintRepository) DeactivateSprintsByProjectID(projectID uuid.UUID) error {
	return storage.GetDb().
		Model(&sprints_models.Sprint{}).
		Where("project_id = ?", projectID).
		Update("is_active", false).Error
}
