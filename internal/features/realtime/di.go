package realtime

import (
	projects_services "taskhive/internal/features/projects/services"
	users_services "taskhive/internal/features/users/services"
	"taskhive/internal/util/logger"
)

var hub = NewHub(logger.GetLogger())

var controller = &Controller{
	hub,
	users_services.GetUserService(),
	projects_services.GetProjectService(),
}

func GetHub() *Hub {
	return hub
}

func GetController() *Controller {
	return controller
}
