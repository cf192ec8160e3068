package sprints_controllers

import (
	"net/http"

	sprints_dto "taskhive/internal/features/sprints/dto"
	sprints_services "taskhive/internal/features/sprints/services"
	users_middleware "taskhive/internal/features/users/middleware"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SprintController struct {
	sprintService *sprints_services.SprintService
}

func (c *SprintController) RegisterRoutes(router *gin.RouterGroup) {
	sprintRoutes := router.Group("/sprints")

	sprintRoutes.GET("/project/:projectId", c.GetProjectSprints)
	sprintRoutes.POST("/project/:projectId", c.CreateSprint)
	sprintRoutes.GET("/:id", c.GetSprint)
	sprintRoutes.PUT("/:id", c.UpdateSprint)
	sprintRoutes.DELETE("/:id", c.DeleteSprint)
	sprintRoutes.GET("/:id/stats", c.GetSprintStats)
	sprintRoutes.GET("/:id/tasks", c.GetSprintTasks)
}

// CreateSprint
// @Summary Create a sprint in a project
// @Description Create a sprint; requires a manager role, end date must follow start date
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body sprints_dto.CreateSprintRequestDTO true "Sprint data"
// @Success 201 {object} response.Envelope{data=sprints_dto.SprintResponseDTO}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /sprints/project/{projectId} [post]
func (c *SprintController) CreateSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var request sprints_dto.CreateSprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	sprint, err := c.sprintService.CreateSprint(projectID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Sprint created", sprint)
}

// GetProjectSprints
// @Summary List a project's sprints
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope{data=sprints_dto.ListSprintsResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sprints/project/{projectId} [get]
func (c *SprintController) GetProjectSprints(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	sprints, err := c.sprintService.GetProjectSprints(projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", sprints)
}

// GetSprint
// @Summary Get sprint details
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sprint ID"
// @Success 200 {object} response.Envelope{data=sprints_dto.SprintResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sprints/{id} [get]
func (c *SprintController) GetSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	sprintID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	sprint, err := c.sprintService.GetSprint(sprintID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", sprint)
}

// UpdateSprint
// @Summary Update a sprint
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sprint ID"
// @Param request body sprints_dto.UpdateSprintRequestDTO true "Fields to update"
// @Success 200 {object} response.Envelope{data=sprints_dto.SprintResponseDTO}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /sprints/{id} [put]
func (c *SprintController) UpdateSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	sprintID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	var request sprints_dto.UpdateSprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	sprint, err := c.sprintService.UpdateSprint(sprintID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Sprint updated", sprint)
}

// DeleteSprint
// @Summary Delete a sprint
// @Description Soft-delete a sprint; its tasks are detached, not deleted
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sprint ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sprints/{id} [delete]
func (c *SprintController) DeleteSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	sprintID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	if err := c.sprintService.DeleteSprint(sprintID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Sprint deleted", nil)
}

// GetSprintStats
// @Summary Get sprint progress statistics
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sprint ID"
// @Success 200 {object} response.Envelope{data=sprints_dto.SprintStatsResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sprints/{id}/stats [get]
func (c *SprintController) GetSprintStats(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	sprintID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	stats, err := c.sprintService.GetSprintStats(sprintID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", stats)
}

// GetSprintTasks
// @Summary List a sprint's tasks
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sprint ID"
// @Success 200 {object} response.Envelope{data=[]tasks_models.Task}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sprints/{id}/tasks [get]
func (c *SprintController) GetSprintTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	sprintID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	tasks, err := c.sprintService.GetSprintTasks(sprintID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", tasks)
}
