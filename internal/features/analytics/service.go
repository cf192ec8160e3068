package analytics

import (
	"fmt"
	"time"

	"taskhive/internal/apperrors"
	"taskhive/internal/features/access"
	projects_services "taskhive/internal/features/projects/services"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
	users_models "taskhive/internal/features/users/models"

	"github.com/google/uuid"
)

type AnalyticsService struct {
	taskRepository *tasks_repositories.TaskRepository
	projectService *projects_services.ProjectService
}

func (s *AnalyticsService) GetProjectStats(
	projectID uuid.UUID,
	user *users_models.User,
) (*ProjectStats, error) {
	snapshot, err := s.projectService.GetProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.NotFound("project not found")
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpStatsView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	tasks, err := s.taskRepository.GetTasksByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project tasks: %w", err)
	}

	// Statistics are always recomputed against the current clock,
	// never cached.
	return Compute(tasks, time.Now().UTC()), nil
}
