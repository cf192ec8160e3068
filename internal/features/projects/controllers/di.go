package projects_controllers

import (
	audit_logs "taskhive/internal/features/audit_logs"
	projects_services "taskhive/internal/features/projects/services"
)

var projectController = &ProjectController{
	projects_services.GetProjectService(),
	audit_logs.GetAuditLogService(),
}

var membershipController = &MembershipController{
	projects_services.GetMembershipService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetMembershipController() *MembershipController {
	return membershipController
}
