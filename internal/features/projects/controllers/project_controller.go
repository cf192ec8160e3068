package projects_controllers

import (
	"net/http"

	audit_logs "taskhive/internal/features/audit_logs"
	projects_dto "taskhive/internal/features/projects/dto"
	projects_services "taskhive/internal/features/projects/services"
	users_middleware "taskhive/internal/features/users/middleware"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService  *projects_services.ProjectService
	auditLogService *audit_logs.AuditLogService
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects")

	projectRoutes.POST("", c.CreateProject)
	projectRoutes.GET("", c.GetProjects)
	projectRoutes.GET("/:id", c.GetProject)
	projectRoutes.PUT("/:id", c.UpdateProject)
	projectRoutes.DELETE("/:id", c.DeleteProject)
	projectRoutes.GET("/:id/audit-logs", c.GetProjectAuditLogs)
}

// CreateProject
// @Summary Create a new project
// @Description Create a project; the caller becomes creator and sole manager
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.CreateProjectRequestDTO true "Project creation data"
// @Success 201 {object} response.Envelope{data=projects_dto.ProjectResponseDTO}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := c.projectService.CreateProject(&request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Project created", project)
}

// GetProjects
// @Summary List user's projects
// @Description Get the projects the caller participates in
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=projects_dto.ListProjectsResponseDTO}
// @Failure 401 {object} response.Envelope
// @Router /projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projects, err := c.projectService.ListProjects(user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", projects)
}

// GetProject
// @Summary Get project details
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope{data=projects_dto.ProjectResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := c.projectService.GetProject(projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", project)
}

// UpdateProject
// @Summary Update a project
// @Description Update project fields; requires a manager role
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.UpdateProjectRequestDTO true "Fields to update"
// @Success 200 {object} response.Envelope{data=projects_dto.ProjectResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var request projects_dto.UpdateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	project, err := c.projectService.UpdateProject(projectID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Project updated", project)
}

// DeleteProject
// @Summary Delete a project
// @Description Soft-delete a project and cascade to its tasks and sprints; creator only
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := c.projectService.DeleteProject(projectID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Project deleted", nil)
}

func (c *ProjectController) GetProjectAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	// Reuse the project view gate; audit visibility follows it.
	if _, err := c.projectService.GetProject(projectID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	var request audit_logs.GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	auditLogs, err := c.auditLogService.GetProjectAuditLogs(projectID, &request)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", auditLogs)
}
