package tasks_services

import (
	"taskhive/internal/events"
	audit_logs "taskhive/internal/features/audit_logs"
	projects_services "taskhive/internal/features/projects/services"
	sprints_repositories "taskhive/internal/features/sprints/repositories"
	tasks_repositories "taskhive/internal/features/tasks/repositories"
	users_services "taskhive/internal/features/users/services"
	"taskhive/internal/lifecycle"
)

var taskRepository = &tasks_repositories.TaskRepository{}
var commentRepository = &tasks_repositories.CommentRepository{}

var taskService = &TaskService{
	taskRepository,
	commentRepository,
	&sprints_repositories.SprintRepository{},
	projects_services.GetProjectService(),
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	[]events.Listener{},
}

func GetTaskService() *TaskService {
	return taskService
}

// SetupDependencies registers the cascade rules tasks participate in
// and wires the notification listener. Called once from main.
func SetupDependencies(listener events.Listener) {
	if listener != nil {
		taskService.AddEventListener(listener)
	}

	lifecycle.GetRunner().Register(lifecycle.EntityProject, lifecycle.CascadeRule{
		Child:  "tasks",
		Action: taskRepository.DeactivateTasksByProjectID,
	})

	lifecycle.GetRunner().Register(lifecycle.EntitySprint, lifecycle.CascadeRule{
		Child:  "tasks",
		Action: taskRepository.DetachTasksFromSprint,
	})
}
