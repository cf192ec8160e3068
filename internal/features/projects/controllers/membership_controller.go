package projects_controllers

import (
	"net/http"

	projects_dto "taskhive/internal/features/projects/dto"
	projects_services "taskhive/internal/features/projects/services"
	users_middleware "taskhive/internal/features/users/middleware"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	memberRoutes := router.Group("/projects/:id/members")

	memberRoutes.GET("", c.ListMembers)
	memberRoutes.POST("", c.AddMember)
	memberRoutes.DELETE("/:userId", c.RemoveMember)
}

// ListMembers
// @Summary List project members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope{data=[]projects_dto.MemberResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/members [get]
func (c *MembershipController) ListMembers(ctx *gin.Context) {
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

	members, err := c.membershipService.ListMembers(projectID, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", members)
}

// AddMember
// @Summary Add a project member
// @Description Add a user to the project; requires a manager role
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member data"
// @Success 201 {object} response.Envelope{data=projects_dto.MemberResponseDTO}
// @Failure 403 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /projects/{id}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
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

	var request projects_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	member, err := c.membershipService.AddMember(projectID, &request, user)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Member added", member)
}

// RemoveMember
// @Summary Remove a project member
// @Description Remove a user from the project; the creator can never be removed
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
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

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := c.membershipService.RemoveMember(projectID, targetUserID, user); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Member removed", nil)
}
