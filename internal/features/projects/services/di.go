package projects_services

import (
	"taskhive/internal/cache"
	"taskhive/internal/events"
	audit_logs "taskhive/internal/features/audit_logs"
	projects_models "taskhive/internal/features/projects/models"
	projects_repositories "taskhive/internal/features/projects/repositories"
	users_services "taskhive/internal/features/users/services"
	"taskhive/internal/lifecycle"
	cache_utils "taskhive/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var membershipRepository = &projects_repositories.MembershipRepository{}

var projectService = &ProjectService{
	projectRepository,
	membershipRepository,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	lifecycle.GetRunner(),
	[]events.Listener{},
	cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "th_project:"),
	singleflight.Group{},
}

var membershipService = &MembershipService{
	membershipRepository,
	projectService,
	users_services.GetUserService(),
	audit_logs.GetAuditLogService(),
	[]events.Listener{},
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

// SetupDependencies wires cross-feature listeners after every feature's
// package-level services exist. Called once from main.
func SetupDependencies(listener events.Listener) {
	if listener == nil {
		return
	}

	projectService.AddEventListener(listener)
	membershipService.AddEventListener(listener)
}
