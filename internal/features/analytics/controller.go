package analytics

import (
	"net/http"

	users_middleware "taskhive/internal/features/users/middleware"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	analyticsService *AnalyticsService
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/stats", c.GetProjectStats)
}

// GetProjectStats
// @Summary Get derived statistics for a project
// @Description Task counts by status and priority, completion rates, delayed tasks and trailing windows
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope{data=analytics.ProjectStats}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/stats [get]
func (c *Controller) GetProjectStats(ctx *gin.Context) {
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

	stats, err := c.analyticsService.GetProjectStats(projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", stats)
}
