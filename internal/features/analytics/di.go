package analytics

import (
	projects_services "taskhive/internal/features/projects/services"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
)

var analyticsService = &AnalyticsService{
	&tasks_repositories.TaskRepository{},
	projects_services.GetProjectService(),
}

var analyticsController = &Controller{
	analyticsService,
}

func GetAnalyticsService() *AnalyticsService {
	return analyticsService
}

func GetAnalyticsController() *Controller {
	return analyticsController
}
