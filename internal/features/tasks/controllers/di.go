package tasks_controllers

import (
	tasks_services "taskhive/internal/features/tasks/services"
)

var taskController = &TaskController{
	tasks_services.GetTaskService(),
}

func GetTaskController() *TaskController {
	return taskController
}
