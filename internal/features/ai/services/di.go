package ai_services

import (
	projects_services "taskhive/internal/features/projects/services"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
	"taskhive/internal/util/logger"
	"taskhive/internal/util/rate_limit"
)

var aiService = &AIService{
	completionClient: NewCompletionClient(),
	projectService:   projects_services.GetProjectService(),
	taskRepository:   &tasks_repositories.TaskRepository{},
	rateLimiter:      rate_limit.NewRateLimiter(),
	logger:           logger.GetLogger(),
}

func GetAIService() *AIService {
	return aiService
}
