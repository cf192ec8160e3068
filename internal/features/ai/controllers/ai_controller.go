package ai_controllers

import (
	"net/http"
	"strconv"

	ai_dto "taskhive/internal/features/ai/dto"
	ai_services "taskhive/internal/features/ai/services"
	users_middleware "taskhive/internal/features/users/middleware"
	users_models "taskhive/internal/features/users/models"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AIController struct {
	aiService *ai_services.AIService
}

func (c *AIController) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	ai.POST("/generate-tasks", c.GenerateTasks)
	ai.POST("/suggest-priority", c.SuggestPriority)
	ai.POST("/generate-sprint-plan", c.GenerateSprintPlan)
	ai.GET("/project-summary/:id", c.GetProjectSummary)
	ai.GET("/detect-issues/:id", c.DetectIssues)
	ai.POST("/chat", c.Chat)
}

// GenerateTasks
// @Summary Generate task suggestions from a work description
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ai_dto.GenerateTasksRequestDTO true "Generation request"
// @Success 200 {object} response.Envelope{data=ai_dto.GenerateTasksResponseDTO}
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /ai/generate-tasks [post]
func (c *AIController) GenerateTasks(ctx *gin.Context) {
	user, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	var request ai_dto.GenerateTasksRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := c.aiService.GenerateTasks(&request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", result)
}

// SuggestPriority
// @Summary Suggest a priority for a task
// @Description Falls back to MEDIUM when the completion provider is unavailable
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ai_dto.SuggestPriorityRequestDTO true "Task to classify"
// @Success 200 {object} response.Envelope{data=ai_dto.SuggestPriorityResponseDTO}
// @Failure 429 {object} response.Envelope
// @Router /ai/suggest-priority [post]
func (c *AIController) SuggestPriority(ctx *gin.Context) {
	if _, ok := c.requireUser(ctx); !ok {
		return
	}

	var request ai_dto.SuggestPriorityRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "", c.aiService.SuggestPriority(&request))
}

// GenerateSprintPlan
// @Summary Generate a sprint plan for a goal
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ai_dto.GenerateSprintPlanRequestDTO true "Plan request"
// @Success 200 {object} response.Envelope{data=ai_dto.SprintPlanResponseDTO}
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /ai/generate-sprint-plan [post]
func (c *AIController) GenerateSprintPlan(ctx *gin.Context) {
	user, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	var request ai_dto.GenerateSprintPlanRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := c.aiService.GenerateSprintPlan(&request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", result)
}

// GetProjectSummary
// @Summary Summarize a project's current state
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope{data=ai_dto.ProjectSummaryResponseDTO}
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /ai/project-summary/{id} [get]
func (c *AIController) GetProjectSummary(ctx *gin.Context) {
	user, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	result, err := c.aiService.GetProjectSummary(projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", result)
}

// DetectIssues
// @Summary Point out risks in a project's task list
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope{data=ai_dto.DetectIssuesResponseDTO}
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /ai/detect-issues/{id} [get]
func (c *AIController) DetectIssues(ctx *gin.Context) {
	user, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid project ID")
		return
	}

	result, err := c.aiService.DetectIssues(projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", result)
}

// Chat
// @Summary Free-form chat, optionally scoped to a project
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ai_dto.ChatRequestDTO true "Chat message"
// @Success 200 {object} response.Envelope{data=ai_dto.ChatResponseDTO}
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /ai/chat [post]
func (c *AIController) Chat(ctx *gin.Context) {
	user, ok := c.requireUser(ctx)
	if !ok {
		return
	}

	var request ai_dto.ChatRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := c.aiService.Chat(&request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", result)
}

// requireUser resolves the principal and spends one rate limit token.
func (c *AIController) requireUser(ctx *gin.Context) (*users_models.User, bool) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}

	result := c.aiService.CheckRateLimit(user)
	if !result.Allowed {
		ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
		response.Fail(ctx, http.StatusTooManyRequests, "Too many requests, slow down")
		return nil, false
	}

	return user, true
}
