package notifications_controllers

import (
	"net/http"

	notifications_dto "taskhive/internal/features/notifications/dto"
	notifications_services "taskhive/internal/features/notifications/services"
	users_middleware "taskhive/internal/features/users/middleware"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationController struct {
	notificationService *notifications_services.NotificationService
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	notificationRoutes := router.Group("/notifications")

	notificationRoutes.GET("", c.ListNotifications)
	notificationRoutes.PUT("/read-all", c.MarkAllRead)
	notificationRoutes.PUT("/:id/read", c.MarkRead)
	notificationRoutes.DELETE("/:id", c.DeleteNotification)
}

// ListNotifications
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope{data=notifications_dto.ListNotificationsResponseDTO}
// @Failure 401 {object} response.Envelope
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request notifications_dto.ListNotificationsRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	notifications, err := c.notificationService.ListNotifications(&request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", notifications)
}

// MarkRead
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := c.notificationService.MarkRead(notificationID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := c.notificationService.MarkAllRead(user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "All notifications marked as read", nil)
}

// DeleteNotification
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := c.notificationService.DeleteNotification(notificationID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Notification deleted", nil)
}
