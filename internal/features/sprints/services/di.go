package sprints_services

import (
	audit_logs "taskhive/internal/features/audit_logs"
	projects_services "taskhive/internal/features/projects/services"
	sprints_repositories "taskhive/internal/features/sprints/repositories"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
	"taskhive/internal/lifecycle"
)

var sprintRepository = &sprints_repositories.SprintRepository{}

var sprintService = &SprintService{
	sprintRepository,
	&tasks_repositories.TaskRepository{},
	projects_services.GetProjectService(),
	audit_logs.GetAuditLogService(),
	lifecycle.GetRunner(),
}

func GetSprintService() *SprintService {
	return sprintService
}

// SetupDependencies registers the sprint cascade for project deletion.
// Called once from main.
func SetupDependencies() {
	lifecycle.GetRunner().Register(lifecycle.EntityProject, lifecycle.CascadeRule{
		Child:  "sprints",
		Action: sprintRepository.DeactivateSprintsByProjectID,
	})
}
