package ai_services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskhive/internal/apperrors"
	"taskhive/internal/features/access"
	ai_dto "taskhive/internal/features/ai/dto"
	projects_models "taskhive/internal/features/projects/models"
	projects_services "taskhive/internal/features/projects/services"
	tasks_models "taskhive/internal/features/tasks/models"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
	users_models "taskhive/internal/features/users/models"
	"taskhive/internal/util/rate_limit"

	"github.com/google/uuid"
)

const (
	completionTimeout = 30 * time.Second

	aiRequestsPerSecond = 1
	aiBurstLimit        = 5

	defaultGeneratedTaskCount = 5
	defaultSprintDurationDays = 14
)

type AIService struct {
	completionClient CompletionClient
	projectService   *projects_services.ProjectService
	taskRepository   *tasks_repositories.TaskRepository
	rateLimiter      *rate_limit.RateLimiter
	logger           *slog.Logger
}

// CheckRateLimit consumes one token from the caller's bucket. A limiter
// outage fails open so a cache hiccup does not take the endpoints down.
func (s *AIService) CheckRateLimit(user *users_models.User) *rate_limit.RateLimitResult {
	result, err := s.rateLimiter.CheckRateLimit(user.ID, aiRequestsPerSecond, aiBurstLimit)
	if err != nil {
		s.logger.Error("rate limit check failed, allowing request",
			"userId", user.ID,
			"error", err)
		return &rate_limit.RateLimitResult{Allowed: true}
	}

	return result
}

func (s *AIService) GenerateTasks(
	request *ai_dto.GenerateTasksRequestDTO,
	user *users_models.User,
) (*ai_dto.GenerateTasksResponseDTO, error) {
	project, err := s.requireProjectOp(request.ProjectID, user, access.OpTaskCreate)
	if err != nil {
		return nil, err
	}

	count := request.Count
	if count == 0 {
		count = defaultGeneratedTaskCount
	}

	systemPrompt := "You are a project planning assistant. Reply with a JSON array only, " +
		"no prose. Each element: {\"title\", \"description\", \"priority\" (LOW|MEDIUM|HIGH), " +
		"\"estimatedHours\" (number)}."
	userPrompt := fmt.Sprintf(
		"Project: %s\nBreak the following work into at most %d tasks:\n%s",
		project.Name, count, request.Description)

	reply, err := s.complete(systemPrompt, userPrompt)
	if err != nil {
		return nil, apperrors.External("task generation failed", err)
	}

	tasks, err := parseGeneratedTasks(reply)
	if err != nil {
		return nil, apperrors.External("task generation failed", err)
	}

	if len(tasks) > count {
		tasks = tasks[:count]
	}

	return &ai_dto.GenerateTasksResponseDTO{Tasks: tasks}, nil
}

// SuggestPriority degrades to MEDIUM when the provider is unavailable
// or replies with garbage. A priority hint is never worth failing a
// request over.
func (s *AIService) SuggestPriority(
	request *ai_dto.SuggestPriorityRequestDTO,
) *ai_dto.SuggestPriorityResponseDTO {
	systemPrompt := "You classify task urgency. Reply with exactly one word: LOW, MEDIUM or HIGH."
	userPrompt := fmt.Sprintf("Task: %s\n%s", request.Title, request.Description)

	reply, err := s.complete(systemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("priority suggestion degraded to default", "error", err)
		return &ai_dto.SuggestPriorityResponseDTO{
			Priority: tasks_models.TaskPriorityMedium,
			Degraded: true,
		}
	}

	priority, ok := parsePriority(reply)
	if !ok {
		s.logger.Warn("priority suggestion reply unparseable", "reply", reply)
		return &ai_dto.SuggestPriorityResponseDTO{
			Priority: tasks_models.TaskPriorityMedium,
			Degraded: true,
		}
	}

	return &ai_dto.SuggestPriorityResponseDTO{Priority: priority}
}

func (s *AIService) GenerateSprintPlan(
	request *ai_dto.GenerateSprintPlanRequestDTO,
	user *users_models.User,
) (*ai_dto.SprintPlanResponseDTO, error) {
	project, err := s.requireProjectOp(request.ProjectID, user, access.OpSprintCreate)
	if err != nil {
		return nil, err
	}

	duration := request.DurationDays
	if duration == 0 {
		duration = defaultSprintDurationDays
	}

	systemPrompt := "You are a sprint planning assistant. Reply with a JSON object only: " +
		"{\"name\", \"goal\", \"tasks\": [{\"title\", \"description\", \"priority\" " +
		"(LOW|MEDIUM|HIGH), \"estimatedHours\" (number)}]}."
	userPrompt := fmt.Sprintf(
		"Project: %s\nSprint length: %d days\nSprint goal:\n%s",
		project.Name, duration, request.Goal)

	reply, err := s.complete(systemPrompt, userPrompt)
	if err != nil {
		return nil, apperrors.External("sprint plan generation failed", err)
	}

	plan, err := parseSprintPlan(reply)
	if err != nil {
		return nil, apperrors.External("sprint plan generation failed", err)
	}

	if plan.Goal == "" {
		plan.Goal = request.Goal
	}

	return plan, nil
}

func (s *AIService) GetProjectSummary(
	projectID uuid.UUID,
	user *users_models.User,
) (*ai_dto.ProjectSummaryResponseDTO, error) {
	project, err := s.requireProjectOp(projectID, user, access.OpStatsView)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.GetTasksByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project tasks: %w", err)
	}

	systemPrompt := "You summarize project status for a team lead in 3 to 5 sentences of plain text."
	userPrompt := fmt.Sprintf(
		"Project: %s\nDescription: %s\nStatus: %s\nTasks:\n%s",
		project.Name, project.Description, project.Status, describeTasks(tasks))

	reply, err := s.complete(systemPrompt, userPrompt)
	if err != nil {
		return nil, apperrors.External("project summary failed", err)
	}

	return &ai_dto.ProjectSummaryResponseDTO{Summary: strings.TrimSpace(reply)}, nil
}

func (s *AIService) DetectIssues(
	projectID uuid.UUID,
	user *users_models.User,
) (*ai_dto.DetectIssuesResponseDTO, error) {
	project, err := s.requireProjectOp(projectID, user, access.OpStatsView)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.GetTasksByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project tasks: %w", err)
	}

	systemPrompt := "You review project task lists for risks: overdue work, unassigned tasks, " +
		"overloaded members, stalled statuses. Reply with a JSON array of short issue strings only. " +
		"Reply with [] when nothing stands out."
	userPrompt := fmt.Sprintf(
		"Project: %s\nToday: %s\nTasks:\n%s",
		project.Name, time.Now().UTC().Format("2006-01-02"), describeTasks(tasks))

	reply, err := s.complete(systemPrompt, userPrompt)
	if err != nil {
		return nil, apperrors.External("issue detection failed", err)
	}

	issues, err := parseIssues(reply)
	if err != nil {
		return nil, apperrors.External("issue detection failed", err)
	}

	return &ai_dto.DetectIssuesResponseDTO{Issues: issues}, nil
}

func (s *AIService) Chat(
	request *ai_dto.ChatRequestDTO,
	user *users_models.User,
) (*ai_dto.ChatResponseDTO, error) {
	systemPrompt := "You are a concise project management assistant."
	userPrompt := request.Message

	if request.ProjectID != nil {
		project, err := s.requireProjectOp(*request.ProjectID, user, access.OpProjectView)
		if err != nil {
			return nil, err
		}

		tasks, err := s.taskRepository.GetTasksByProjectID(*request.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to get project tasks: %w", err)
		}

		userPrompt = fmt.Sprintf(
			"Context project: %s (status %s)\nTasks:\n%s\n\nQuestion:\n%s",
			project.Name, project.Status, describeTasks(tasks), request.Message)
	}

	reply, err := s.complete(systemPrompt, userPrompt)
	if err != nil {
		return nil, apperrors.External("chat completion failed", err)
	}

	return &ai_dto.ChatResponseDTO{Reply: strings.TrimSpace(reply)}, nil
}

func (s *AIService) complete(systemPrompt string, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	return s.completionClient.Complete(ctx, systemPrompt, userPrompt)
}

// requireProjectOp resolves the project and runs the access gate,
// returning 404 for missing or inactive projects and 403 only when the
// project is active and access is denied.
func (s *AIService) requireProjectOp(
	projectID uuid.UUID,
	user *users_models.User,
	op access.Operation,
) (*projects_models.Project, error) {
	snapshot, err := s.projectService.GetProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.NotFound("project not found")
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, op); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	project, err := s.projectService.GetProjectWithCache(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil || project.IsNotExists || !project.IsActive {
		return nil, apperrors.NotFound("project not found")
	}

	return project, nil
}

func describeTasks(tasks []*tasks_models.Task) string {
	if len(tasks) == 0 {
		return "(no tasks yet)"
	}

	var builder strings.Builder
	for _, task := range tasks {
		due := "no due date"
		if task.DueDate != nil {
			due = "due " + task.DueDate.Format("2006-01-02")
		}

		assigned := "unassigned"
		if task.AssigneeID != nil {
			assigned = "assigned"
		}

		fmt.Fprintf(&builder, "- %s [%s, %s, %s, %s]\n",
			task.Title, task.Status, task.Priority, assigned, due)
	}

	return builder.String()
}
