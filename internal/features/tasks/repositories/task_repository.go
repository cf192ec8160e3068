package tasks_repositories

import (
	"errors"
	"time"

	tasks_models "taskhive/internal/features/tasks/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return storage.GetDb().Create(task).Error
}

// GetTaskByID returns nil without error when no active task matches.
func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := storage.GetDb().
		Where("id = ? AND is_active = ?", taskID, true).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetTasksByProjectID(projectID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) GetTasksByProjectIDs(projectIDs []uuid.UUID) ([]*tasks_models.Task, error) {
	if len(projectIDs) == 0 {
		return []*tasks_models.Task{}, nil
	}

	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Where("project_id IN ? AND is_active = ?", projectIDs, true).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepository) GetTasksBySprintID(sprintID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Where("sprint_id = ? AND is_active = ?", sprintID, true).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetTasksByAssigneeID returns the user's active tasks whose owning
// project is still active.
func (r *TaskRepository) GetTasksByAssigneeID(assigneeID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := storage.GetDb().
		Joins("JOIN projects ON projects.id = tasks.project_id AND projects.is_active = ?", true).
		Where("tasks.assignee_id = ? AND tasks.is_active = ?", assigneeID, true).
		Order("tasks.due_date ASC NULLS LAST, tasks.position ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetMaxPosition returns -1 when the project has no tasks yet, so the
// first task lands at position 0.
func (r *TaskRepository) GetMaxPosition(projectID uuid.UUID) (int, error) {
	var maxPosition *int

	err := storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("project_id = ?", projectID).
		Select("MAX(position)").
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}

	if maxPosition == nil {
		return -1, nil
	}

	return *maxPosition, nil
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	return storage.GetDb().Save(task).Error
}

func (r *TaskRepository) DeactivateTask(taskID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *TaskRepository) DeactivateTasksByProjectID(projectID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("project_id = ?", projectID).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *TaskRepository) DetachTasksFromSprint(sprintID uuid.UUID) error {
	return storage.GetDb().
		Model(&tasks_models.Task{}).
		Where("sprint_id = ?", sprintID).
		Updates(map[string]any{
			"sprint_id":  nil,
			"updated_at": time.Now().UTC(),
		}).Error
}
