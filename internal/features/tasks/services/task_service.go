package tasks_services

import (
	"fmt"
	"time"

	"taskhive/internal/apperrors"
	"taskhive/internal/events"
	"taskhive/internal/features/access"
	audit_logs "taskhive/internal/features/audit_logs"
	projects_services "taskhive/internal/features/projects/services"
	sprints_repositories "taskhive/internal/features/sprints/repositories"
	tasks_dto "taskhive/internal/features/tasks/dto"
	tasks_models "taskhive/internal/features/tasks/models"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
	users_models "taskhive/internal/features/users/models"
	users_services "taskhive/internal/features/users/services"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepository    *tasks_repositories.TaskRepository
	commentRepository *tasks_repositories.CommentRepository
	sprintRepository  *sprints_repositories.SprintRepository
	projectService    *projects_services.ProjectService
	userService       *users_services.UserService
	auditLogService   *audit_logs.AuditLogService
	listeners         []events.Listener
}

func (s *TaskService) AddEventListener(listener events.Listener) {
	s.listeners = append(s.listeners, listener)
}

func (s *TaskService) CreateTask(
	projectID uuid.UUID,
	request *tasks_dto.CreateTaskRequestDTO,
	user *users_models.User,
) (*tasks_dto.TaskResponseDTO, error) {
	snapshot, err := s.requireProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskCreate); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	status := tasks_models.TaskStatusToDo
	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, apperrors.Validation("invalid task status")
		}
		status = *request.Status
	}

	priority := tasks_models.TaskPriorityMedium
	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return nil, apperrors.Validation("invalid task priority")
		}
		priority = *request.Priority
	}

	estimatedHours := 0.0
	if request.EstimatedHours != nil {
		if *request.EstimatedHours < 0 {
			return nil, apperrors.Validation("estimated hours cannot be negative")
		}
		estimatedHours = *request.EstimatedHours
	}

	if request.AssigneeID != nil {
		if _, err := s.userService.GetActiveUser(*request.AssigneeID); err != nil {
			return nil, apperrors.Validation("assignee does not exist")
		}
	}

	if request.SprintID != nil {
		if err := s.validateSprintReference(*request.SprintID, projectID); err != nil {
			return nil, err
		}
	}

	// New tasks always sort after every existing task in the project,
	// regardless of status column.
	maxPosition, err := s.taskRepository.GetMaxPosition(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task position: %w", err)
	}

	task := &tasks_models.Task{
		ID:             uuid.New(),
		Title:          request.Title,
		Description:    request.Description,
		ProjectID:      projectID,
		SprintID:       request.SprintID,
		Status:         status,
		Priority:       priority,
		AssigneeID:     request.AssigneeID,
		CreatorID:      user.ID,
		DueDate:        request.DueDate,
		EstimatedHours: estimatedHours,
		Position:       maxPosition + 1,
		IsActive:       true,
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task created: %s", task.Title),
		&user.ID,
		&projectID,
	)

	s.notifyListeners(events.Event{
		Type:       events.TaskCreated,
		ActorID:    user.ID,
		ProjectID:  &projectID,
		TaskID:     &task.ID,
		Message:    fmt.Sprintf("Task %q was created", task.Title),
		OccurredAt: time.Now().UTC(),
		Recipients: s.taskRecipients(task, user.ID),
	})

	return s.buildTaskResponse(task, false)
}

func (s *TaskService) GetTask(taskID uuid.UUID, user *users_models.User) (*tasks_dto.TaskResponseDTO, error) {
	task, snapshot, err := s.requireTask(taskID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	return s.buildTaskResponse(task, true)
}

func (s *TaskService) GetProjectTasks(
	projectID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	snapshot, err := s.requireProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	tasks, err := s.taskRepository.GetTasksByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project tasks: %w", err)
	}

	return s.buildTaskListResponse(tasks)
}

// GetMyTasks lists the caller's assigned tasks across every active
// project, soonest due date first.
func (s *TaskService) GetMyTasks(user *users_models.User) (*tasks_dto.ListTasksResponseDTO, error) {
	tasks, err := s.taskRepository.GetTasksByAssigneeID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned tasks: %w", err)
	}

	return s.buildTaskListResponse(tasks)
}

// UpdateTask applies a general field update. Participants who are not
// managers may change only status and actual hours; everything else in
// the request is silently dropped to preserve partial updates.
func (s *TaskService) UpdateTask(
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*tasks_dto.TaskResponseDTO, error) {
	task, snapshot, err := s.requireTask(taskID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskUpdate); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, apperrors.Validation("invalid task status")
		}
		task.Status = *request.Status
	}

	if request.ActualHours != nil {
		if *request.ActualHours < 0 {
			return nil, apperrors.Validation("actual hours cannot be negative")
		}
		task.ActualHours = *request.ActualHours
	}

	if access.CanEditAllTaskFields(user, snapshot) {
		if err := s.applyManagerFields(task, request); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.notifyListeners(events.Event{
		Type:       events.TaskUpdated,
		ActorID:    user.ID,
		ProjectID:  &task.ProjectID,
		TaskID:     &task.ID,
		Message:    fmt.Sprintf("Task %q was updated", task.Title),
		OccurredAt: time.Now().UTC(),
		Recipients: s.taskRecipients(task, user.ID),
	})

	return s.buildTaskResponse(task, false)
}

// UpdateTaskStatus is the drag-reorder path: status plus an optional
// explicit position, written as-is. Siblings are never renumbered and
// duplicate positions are tolerated.
func (s *TaskService) UpdateTaskStatus(
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskStatusRequestDTO,
	user *users_models.User,
) (*tasks_dto.TaskResponseDTO, error) {
	task, snapshot, err := s.requireTask(taskID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskUpdate); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	if !request.Status.IsValid() {
		return nil, apperrors.Validation("invalid task status")
	}

	task.Status = request.Status
	if request.Position != nil {
		task.Position = *request.Position
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	s.notifyListeners(events.Event{
		Type:       events.TaskUpdated,
		ActorID:    user.ID,
		ProjectID:  &task.ProjectID,
		TaskID:     &task.ID,
		Message:    fmt.Sprintf("Task %q moved to %s", task.Title, task.Status),
		OccurredAt: time.Now().UTC(),
		Recipients: s.taskRecipients(task, user.ID),
	})

	return s.buildTaskResponse(task, false)
}

// BulkUpdatePositions applies each item independently. There is no
// transaction across the list; failed items are reported alongside the
// applied ones and never revert earlier updates.
func (s *TaskService) BulkUpdatePositions(
	request *tasks_dto.BulkUpdatePositionsRequestDTO,
	user *users_models.User,
) (*tasks_dto.BulkUpdatePositionsResponseDTO, error) {
	response := &tasks_dto.BulkUpdatePositionsResponseDTO{
		Applied: []uuid.UUID{},
		Failed:  []tasks_dto.BulkUpdateFailureDTO{},
	}

	for _, update := range request.Updates {
		if err := s.applyPositionUpdate(&update, user); err != nil {
			response.Failed = append(response.Failed, tasks_dto.BulkUpdateFailureDTO{
				TaskID: update.TaskID,
				Reason: err.Error(),
			})
			continue
		}

		response.Applied = append(response.Applied, update.TaskID)
	}

	return response, nil
}

func (s *TaskService) DeleteTask(taskID uuid.UUID, user *users_models.User) error {
	task, snapshot, err := s.requireTask(taskID)
	if err != nil {
		return err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskDelete); !decision.Allowed {
		return apperrors.Forbidden(decision.Reason)
	}

	// Comments survive; only the task's active flag is cleared.
	if err := s.taskRepository.DeactivateTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task deleted: %s", task.Title),
		&user.ID,
		&task.ProjectID,
	)

	s.notifyListeners(events.Event{
		Type:       events.TaskDeleted,
		ActorID:    user.ID,
		ProjectID:  &task.ProjectID,
		TaskID:     &task.ID,
		Message:    fmt.Sprintf("Task %q was deleted", task.Title),
		OccurredAt: time.Now().UTC(),
		Recipients: s.taskRecipients(task, user.ID),
	})

	return nil
}

func (s *TaskService) AddComment(
	taskID uuid.UUID,
	request *tasks_dto.AddCommentRequestDTO,
	user *users_models.User,
) (*tasks_dto.CommentResponseDTO, error) {
	task, snapshot, err := s.requireTask(taskID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpCommentAdd); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	comment := &tasks_models.TaskComment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  user.ID,
		Text:      request.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.commentRepository.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.notifyListeners(events.Event{
		Type:       events.CommentAdded,
		ActorID:    user.ID,
		ProjectID:  &task.ProjectID,
		TaskID:     &task.ID,
		Message:    fmt.Sprintf("%s commented on %q", user.Name, task.Title),
		OccurredAt: time.Now().UTC(),
		Recipients: s.taskRecipients(task, user.ID),
	})

	return &tasks_dto.CommentResponseDTO{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		AuthorName: user.Name,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
	}, nil
}

func (s *TaskService) applyPositionUpdate(update *tasks_dto.BulkPositionItemDTO, user *users_models.User) error {
	task, snapshot, err := s.requireTask(update.TaskID)
	if err != nil {
		return err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpTaskUpdate); !decision.Allowed {
		return apperrors.Forbidden(decision.Reason)
	}

	task.Position = update.Position
	if update.Status != nil {
		if !update.Status.IsValid() {
			return apperrors.Validation("invalid task status")
		}
		task.Status = *update.Status
	}

	return s.taskRepository.UpdateTask(task)
}

func (s *TaskService) applyManagerFields(task *tasks_models.Task, request *tasks_dto.UpdateTaskRequestDTO) error {
	if request.Title != nil {
		task.Title = *request.Title
	}
	if request.Description != nil {
		task.Description = *request.Description
	}
	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return apperrors.Validation("invalid task priority")
		}
		task.Priority = *request.Priority
	}
	if request.ClearSprint {
		task.SprintID = nil
	} else if request.SprintID != nil {
		if err := s.validateSprintReference(*request.SprintID, task.ProjectID); err != nil {
			return err
		}
		task.SprintID = request.SprintID
	}
	if request.ClearAssignee {
		task.AssigneeID = nil
	} else if request.AssigneeID != nil {
		if _, err := s.userService.GetActiveUser(*request.AssigneeID); err != nil {
			return apperrors.Validation("assignee does not exist")
		}
		task.AssigneeID = request.AssigneeID
	}
	if request.DueDate != nil {
		task.DueDate = request.DueDate
	}
	if request.EstimatedHours != nil {
		if *request.EstimatedHours < 0 {
			return apperrors.Validation("estimated hours cannot be negative")
		}
		task.EstimatedHours = *request.EstimatedHours
	}

	return nil
}

func (s *TaskService) validateSprintReference(sprintID uuid.UUID, projectID uuid.UUID) error {
	sprint, err := s.sprintRepository.GetSprintByID(sprintID)
	if err != nil {
		return fmt.Errorf("failed to get sprint: %w", err)
	}
	if sprint == nil {
		return apperrors.Validation("sprint does not exist")
	}
	if sprint.ProjectID != projectID {
		return apperrors.Consistency("sprint belongs to a different project")
	}

	return nil
}

func (s *TaskService) requireProjectSnapshot(projectID uuid.UUID) (*access.ProjectSnapshot, error) {
	snapshot, err := s.projectService.GetProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.NotFound("project not found")
	}

	return snapshot, nil
}

// requireTask resolves an active task together with its owning
// project's snapshot. A missing or inactive owning project makes the
// task itself not found.
func (s *TaskService) requireTask(taskID uuid.UUID) (*tasks_models.Task, *access.ProjectSnapshot, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, nil, apperrors.NotFound("task not found")
	}

	snapshot, err := s.projectService.GetProjectSnapshot(task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if snapshot == nil {
		return nil, nil, apperrors.NotFound("task not found")
	}

	return task, snapshot, nil
}

func (s *TaskService) taskRecipients(task *tasks_models.Task, actorID uuid.UUID) []uuid.UUID {
	recipients := []uuid.UUID{}

	if task.AssigneeID != nil && *task.AssigneeID != actorID {
		recipients = append(recipients, *task.AssigneeID)
	}
	if task.CreatorID != actorID && (task.AssigneeID == nil || task.CreatorID != *task.AssigneeID) {
		recipients = append(recipients, task.CreatorID)
	}

	return recipients
}

func (s *TaskService) buildTaskResponse(
	task *tasks_models.Task,
	includeComments bool,
) (*tasks_dto.TaskResponseDTO, error) {
	response := &tasks_dto.TaskResponseDTO{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		ProjectID:      task.ProjectID,
		SprintID:       task.SprintID,
		Status:         task.Status,
		Priority:       task.Priority,
		AssigneeID:     task.AssigneeID,
		CreatorID:      task.CreatorID,
		DueDate:        task.DueDate,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		Position:       task.Position,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	if !includeComments {
		return response, nil
	}

	comments, err := s.commentRepository.GetCommentsByTaskID(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task comments: %w", err)
	}

	authorIDs := make([]uuid.UUID, len(comments))
	for i, comment := range comments {
		authorIDs[i] = comment.AuthorID
	}

	authors, err := s.userService.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment authors: %w", err)
	}

	authorNames := make(map[uuid.UUID]string, len(authors))
	for _, author := range authors {
		authorNames[author.ID] = author.Name
	}

	response.Comments = make([]tasks_dto.CommentResponseDTO, len(comments))
	for i, comment := range comments {
		response.Comments[i] = tasks_dto.CommentResponseDTO{
			ID:         comment.ID,
			AuthorID:   comment.AuthorID,
			AuthorName: authorNames[comment.AuthorID],
			Text:       comment.Text,
			CreatedAt:  comment.CreatedAt,
		}
	}

	return response, nil
}

func (s *TaskService) buildTaskListResponse(tasks []*tasks_models.Task) (*tasks_dto.ListTasksResponseDTO, error) {
	responses := make([]tasks_dto.TaskResponseDTO, 0, len(tasks))
	for _, task := range tasks {
		response, err := s.buildTaskResponse(task, false)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}

	return &tasks_dto.ListTasksResponseDTO{
		Tasks: responses,
		Total: int64(len(responses)),
	}, nil
}

func (s *TaskService) notifyListeners(event events.Event) {
	for _, listener := range s.listeners {
		listener.HandleEvent(event)
	}
}
