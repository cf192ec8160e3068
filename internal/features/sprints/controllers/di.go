package sprints_controllers

import (
	sprints_services "taskhive/internal/features/sprints/services"
)

var sprintController = &SprintController{
	sprints_services.GetSprintService(),
}

func GetSprintController() *SprintController {
	return sprintController
}
