package users_controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	users_dto "taskhive/internal/features/users/dto"
	users_middleware "taskhive/internal/features/users/middleware"
	users_services "taskhive/internal/features/users/services"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const oauthStateCookie = "oauth_state"

type AuthController struct {
	userService  *users_services.UserService
	oauthService *users_services.OAuthService
	loginLimiter *rate.Limiter
	frontendURL  string
}

func (c *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/register", c.Register)
	router.POST("/auth/login", c.Login)
	router.GET("/auth/google", c.GoogleRedirect)
	router.GET("/auth/google/callback", c.GoogleCallback)
}

func (c *AuthController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", c.Me)
	router.PUT("/auth/updateprofile", c.UpdateProfile)
	router.PUT("/auth/updatepassword", c.UpdatePassword)
	router.GET("/auth/users", c.ListUsers)
	router.DELETE("/auth/users/:id", c.DeactivateUser)
}

// Register
// @Summary Register a new user
// @Description Register a new user with name, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.RegisterRequestDTO true "Registration data"
// @Success 201 {object} response.Envelope{data=users_dto.AuthResponseDTO}
// @Failure 400 {object} response.Envelope
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request users_dto.RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	authResponse, err := c.userService.Register(&request)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "User registered successfully", authResponse)
}

// Login
// @Summary Authenticate a user
// @Description Authenticate with email and password, returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.LoginRequestDTO true "Login data"
// @Success 200 {object} response.Envelope{data=users_dto.AuthResponseDTO}
// @Failure 401 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	// Rate limited to slow down brute force attempts
	if !c.loginLimiter.Allow() {
		response.Fail(ctx, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		return
	}

	var request users_dto.LoginRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	authResponse, err := c.userService.Login(&request)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Login successful", authResponse)
}

func (c *AuthController) GoogleRedirect(ctx *gin.Context) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Failed to start OAuth flow")
		return
	}
	state := hex.EncodeToString(buf)

	ctx.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	ctx.Redirect(http.StatusTemporaryRedirect, c.oauthService.AuthURL(state))
}

func (c *AuthController) GoogleCallback(ctx *gin.Context) {
	expectedState, err := ctx.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || ctx.Query("state") != expectedState {
		response.Fail(ctx, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	code := ctx.Query("code")
	if code == "" {
		response.Fail(ctx, http.StatusBadRequest, "Missing authorization code")
		return
	}

	token, err := c.oauthService.HandleCallback(ctx.Request.Context(), code)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	ctx.Redirect(http.StatusTemporaryRedirect, c.frontendURL+"/auth/callback?token="+token)
}

// Me
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=users_dto.UserProfileResponseDTO}
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile := users_services.ProfileDTO(user)
	response.Success(ctx, http.StatusOK, "", profile)
}

// UpdateProfile
// @Summary Update the current user's name and email
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateProfileRequestDTO true "Profile data"
// @Success 200 {object} response.Envelope{data=users_dto.UserProfileResponseDTO}
// @Failure 400 {object} response.Envelope
// @Router /auth/updateprofile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request users_dto.UpdateProfileRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := c.userService.UpdateProfile(user, &request)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Profile updated successfully", profile)
}

// UpdatePassword
// @Summary Change the current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdatePasswordRequestDTO true "Password data"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/updatepassword [put]
func (c *AuthController) UpdatePassword(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request users_dto.UpdatePasswordRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := c.userService.ChangePassword(user, &request); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Password updated successfully", nil)
}

// ListUsers
// @Summary List all users (managers only)
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} response.Envelope{data=users_dto.ListUsersResponseDTO}
// @Failure 403 {object} response.Envelope
// @Router /auth/users [get]
func (c *AuthController) ListUsers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	request := &users_dto.ListUsersRequestDTO{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	usersResponse, err := c.userService.ListUsers(user, request)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "", usersResponse)
}

// DeactivateUser
// @Summary Deactivate a user account (managers only)
// @Description Accounts are deactivated, never hard-deleted
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/users/{id} [delete]
func (c *AuthController) DeactivateUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Fail(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := c.userService.DeactivateUser(user, userID); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "User deactivated successfully", nil)
}
