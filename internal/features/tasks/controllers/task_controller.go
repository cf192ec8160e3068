package tasks_controllers

import (
	"net/http"

	tasks_dto "taskhive/internal/features/tasks/dto"
	tasks_services "taskhive/internal/features/tasks/services"
	users_middleware "taskhive/internal/features/users/middleware"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	taskRoutes := router.Group("/tasks")

	taskRoutes.GET("/my-tasks", c.GetMyTasks)
	taskRoutes.PATCH("/bulk-update-positions", c.BulkUpdatePositions)
	taskRoutes.GET("/project/:projectId", c.GetProjectTasks)
	taskRoutes.POST("/project/:projectId", c.CreateTask)
	taskRoutes.GET("/:id", c.GetTask)
	taskRoutes.PUT("/:id", c.UpdateTask)
	taskRoutes.DELETE("/:id", c.DeleteTask)
	taskRoutes.PATCH("/:id/status", c.UpdateTaskStatus)
	taskRoutes.POST("/:id/comments", c.AddComment)
}

// CreateTask
// @Summary Create a task in a project
// @Description Create a task; requires a manager role in the project
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 201 {object} response.Envelope{data=tasks_dto.TaskResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/project/{projectId} [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
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

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := c.taskService.CreateTask(projectID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Task created", task)
}

// GetProjectTasks
// @Summary List a project's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope{data=tasks_dto.ListTasksResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/project/{projectId} [get]
func (c *TaskController) GetProjectTasks(ctx *gin.Context) {
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

	tasks, err := c.taskService.GetProjectTasks(projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", tasks)
}

// GetMyTasks
// @Summary List the caller's assigned tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=tasks_dto.ListTasksResponseDTO}
// @Failure 401 {object} response.Envelope
// @Router /tasks/my-tasks [get]
func (c *TaskController) GetMyTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	tasks, err := c.taskService.GetMyTasks(user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", tasks)
}

// GetTask
// @Summary Get task details with comments
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope{data=tasks_dto.TaskResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := c.taskService.GetTask(taskID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", task)
}

// UpdateTask
// @Summary Update a task
// @Description Non-managers may change only status and actualHours; other fields are dropped
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Fields to update"
// @Success 200 {object} response.Envelope{data=tasks_dto.TaskResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := c.taskService.UpdateTask(taskID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Task updated", task)
}

// UpdateTaskStatus
// @Summary Update a task's status and optional position
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskStatusRequestDTO true "Status data"
// @Success 200 {object} response.Envelope{data=tasks_dto.TaskResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id}/status [patch]
func (c *TaskController) UpdateTaskStatus(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var request tasks_dto.UpdateTaskStatusRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := c.taskService.UpdateTaskStatus(taskID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Task status updated", task)
}

// BulkUpdatePositions
// @Summary Bulk update task positions
// @Description Each item is applied independently; failures never revert other items
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body tasks_dto.BulkUpdatePositionsRequestDTO true "Position updates"
// @Success 200 {object} response.Envelope{data=tasks_dto.BulkUpdatePositionsResponseDTO}
// @Failure 400 {object} response.Envelope
// @Router /tasks/bulk-update-positions [patch]
func (c *TaskController) BulkUpdatePositions(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request tasks_dto.BulkUpdatePositionsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := c.taskService.BulkUpdatePositions(&request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", result)
}

// DeleteTask
// @Summary Delete a task
// @Description Soft-delete a task; requires a manager role in the project
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := c.taskService.DeleteTask(taskID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Task deleted", nil)
}

// AddComment
// @Summary Add a comment to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.AddCommentRequestDTO true "Comment text"
// @Success 201 {object} response.Envelope{data=tasks_dto.CommentResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id}/comments [post]
func (c *TaskController) AddComment(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var request tasks_dto.AddCommentRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	comment, err := c.taskService.AddComment(taskID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Comment added", comment)
}
