package tasks_repositories

import (
	"time"

	tasks_models "taskhive/internal/features/tasks/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
)

type CommentRepository struct{}

func (r *CommentRepository) CreateComment(comment *tasks_models.TaskComment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(comment).Error
}

func (r *CommentRepository) GetCommentsByTaskID(taskID uuid.UUID) ([]*tasks_models.TaskComment, error) {
	var comments []*tasks_models.TaskComment

	err := storage.GetDb().
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}
