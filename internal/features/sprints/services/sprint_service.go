package sprints_services

import (
	"fmt"
	"math"
	"time"

	"taskhive/internal/apperrors"
	"taskhive/internal/features/access"
	audit_logs "taskhive/internal/features/audit_logs"
	projects_services "taskhive/internal/features/projects/services"
	sprints_dto "taskhive/internal/features/sprints/dto"
	sprints_models "taskhive/internal/features/sprints/models"
	sprints_repositories "taskhive/internal/features/sprints/repositories"
	tasks_models "taskhive/internal/features/tasks/models"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
	users_models "taskhive/internal/features/users/models"
	"taskhive/internal/lifecycle"

	"github.com/google/uuid"
)

type SprintService struct {
	sprintRepository *sprints_repositories.SprintRepository
	taskRepository   *tasks_repositories.TaskRepository
	projectService   *projects_services.ProjectService
	auditLogService  *audit_logs.AuditLogService
	cascadeRunner    *lifecycle.Runner
}

func (s *SprintService) CreateSprint(
	projectID uuid.UUID,
	request *sprints_dto.CreateSprintRequestDTO,
	user *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	snapshot, err := s.requireProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpSprintCreate); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	if !request.EndDate.After(request.StartDate) {
		return nil, apperrors.Consistency("sprint end date must be strictly after start date")
	}

	sprint := &sprints_models.Sprint{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		ProjectID:   projectID,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Goal:        request.Goal,
		Status:      sprints_models.SprintStatusPlanning,
		CreatorID:   user.ID,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.sprintRepository.CreateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint created: %s", sprint.Name),
		&user.ID,
		&projectID,
	)

	return buildSprintResponse(sprint), nil
}

func (s *SprintService) GetSprint(
	sprintID uuid.UUID,
	user *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	sprint, snapshot, err := s.requireSprint(sprintID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpSprintView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	return buildSprintResponse(sprint), nil
}

func (s *SprintService) GetProjectSprints(
	projectID uuid.UUID,
	user *users_models.User,
) (*sprints_dto.ListSprintsResponseDTO, error) {
	snapshot, err := s.requireProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpSprintView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	sprints, err := s.sprintRepository.GetSprintsByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project sprints: %w", err)
	}

	responses := make([]sprints_dto.SprintResponseDTO, len(sprints))
	for i, sprint := range sprints {
		responses[i] = *buildSprintResponse(sprint)
	}

	return &sprints_dto.ListSprintsResponseDTO{
		Sprints: responses,
		Total:   int64(len(responses)),
	}, nil
}

func (s *SprintService) UpdateSprint(
	sprintID uuid.UUID,
	request *sprints_dto.UpdateSprintRequestDTO,
	user *users_models.User,
) (*sprints_dto.SprintResponseDTO, error) {
	sprint, snapshot, err := s.requireSprint(sprintID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpSprintUpdate); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	if request.Name != nil {
		sprint.Name = *request.Name
	}
	if request.Description != nil {
		sprint.Description = *request.Description
	}
	if request.StartDate != nil {
		sprint.StartDate = *request.StartDate
	}
	if request.EndDate != nil {
		sprint.EndDate = *request.EndDate
	}
	if request.Goal != nil {
		sprint.Goal = *request.Goal
	}
	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, apperrors.Validation("invalid sprint status")
		}
		sprint.Status = *request.Status
	}

	if !sprint.EndDate.After(sprint.StartDate) {
		return nil, apperrors.Consistency("sprint end date must be strictly after start date")
	}

	if err := s.sprintRepository.UpdateSprint(sprint); err != nil {
		return nil, fmt.Errorf("failed to update sprint: %w", err)
	}

	return buildSprintResponse(sprint), nil
}

// DeleteSprint soft-deletes the sprint; its tasks survive with the
// sprint reference cleared by the registered cascade rule.
func (s *SprintService) DeleteSprint(sprintID uuid.UUID, user *users_models.User) error {
	sprint, snapshot, err := s.requireSprint(sprintID)
	if err != nil {
		return err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpSprintDelete); !decision.Allowed {
		return apperrors.Forbidden(decision.Reason)
	}

	err = s.cascadeRunner.Deactivate(lifecycle.EntitySprint, sprintID, func() error {
		return s.sprintRepository.DeactivateSprint(sprintID)
	})
	if err != nil {
		return err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Sprint deleted: %s", sprint.Name),
		&user.ID,
		&sprint.ProjectID,
	)

	return nil
}

// GetSprintStats derives the two progress signals. Time progress comes
// from the calendar alone; completion rate from task statuses alone.
func (s *SprintService) GetSprintStats(
	sprintID uuid.UUID,
	user *users_models.User,
) (*sprints_dto.SprintStatsResponseDTO, error) {
	sprint, snapshot, err := s.requireSprint(sprintID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpStatsView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	tasks, err := s.taskRepository.GetTasksBySprintID(sprintID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sprint tasks: %w", err)
	}

	completed := 0
	for _, task := range tasks {
		if task.Status == tasks_models.TaskStatusDone {
			completed++
		}
	}

	completionRate := 0.0
	if len(tasks) > 0 {
		completionRate = math.Round(100 * float64(completed) / float64(len(tasks)))
	}

	return &sprints_dto.SprintStatsResponseDTO{
		SprintID:       sprintID,
		TotalTasks:     len(tasks),
		CompletedTasks: completed,
		TimeProgress:   TimeProgress(time.Now().UTC(), sprint.StartDate, sprint.EndDate),
		CompletionRate: completionRate,
	}, nil
}

func (s *SprintService) GetSprintTasks(
	sprintID uuid.UUID,
	user *users_models.User,
) ([]*tasks_models.Task, error) {
	_, snapshot, err := s.requireSprint(sprintID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	return s.taskRepository.GetTasksBySprintID(sprintID)
}

// TimeProgress is the calendar fraction of the sprint already elapsed,
// clamped to [0, 100].
func TimeProgress(now, start, end time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}

	progress := 100 * float64(now.Sub(start)) / float64(total)

	return math.Min(100, math.Max(0, progress))
}

func (s *SprintService) requireProjectSnapshot(projectID uuid.UUID) (*access.ProjectSnapshot, error) {
	snapshot, err := s.projectService.GetProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.NotFound("project not found")
	}

	return snapshot, nil
}

func (s *SprintService) requireSprint(
	sprintID uuid.UUID,
) (*sprints_models.Sprint, *access.ProjectSnapshot, error) {
	sprint, err := s.sprintRepository.GetSprintByID(sprintID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sprint: %w", err)
	}
	if sprint == nil {
		return nil, nil, apperrors.NotFound("sprint not found")
	}

	snapshot, err := s.projectService.GetProjectSnapshot(sprint.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if snapshot == nil {
		return nil, nil, apperrors.NotFound("sprint not found")
	}

	return sprint, snapshot, nil
}

func buildSprintResponse(sprint *sprints_models.Sprint) *sprints_dto.SprintResponseDTO {
	return &sprints_dto.SprintResponseDTO{
		ID:          sprint.ID,
		Name:        sprint.Name,
		Description: sprint.Description,
		ProjectID:   sprint.ProjectID,
		StartDate:   sprint.StartDate,
		EndDate:     sprint.EndDate,
		Goal:        sprint.Goal,
		Status:      sprint.Status,
		CreatorID:   sprint.CreatorID,
		CreatedAt:   sprint.CreatedAt,
	}
}
