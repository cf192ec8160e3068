package users_controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	users_controllers "taskhive/internal/features/users/controllers"
	users_dto "taskhive/internal/features/users/dto"
	users_enums "taskhive/internal/features/users/enums"
	users_middleware "taskhive/internal/features/users/middleware"
	users_services "taskhive/internal/features/users/services"
	users_testing "taskhive/internal/features/users/testing"
	test_utils "taskhive/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	authController := users_controllers.GetAuthController()
	authController.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	authController.RegisterProtectedRoutes(protected)

	return router
}

func uniqueEmail() string {
	return fmt.Sprintf("auth-%s@test.com", uuid.New().String()[:8])
}

func Test_Register_ReturnsTokenAndProfile(t *testing.T) {
	router := createAuthRouter()
	email := uniqueEmail()

	request := users_dto.RegisterRequestDTO{
		Name:     "New User",
		Email:    email,
		Password: "password123",
		Role:     users_enums.UserRoleProjectManager,
	}

	resp := test_utils.MakePostRequest(t, router, "/api/v1/auth/register", "", request, http.StatusCreated)

	var auth users_dto.AuthResponseDTO
	test_utils.UnmarshalData(t, resp.Body, &auth)

	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, email, auth.User.Email)
	assert.Equal(t, users_enums.UserRoleProjectManager, auth.User.Role)
	assert.True(t, auth.User.IsActive)
}

func Test_Register_InvalidRoleCoercedToTeamMember(t *testing.T) {
	router := createAuthRouter()

	request := users_dto.RegisterRequestDTO{
		Name:     "Legacy Role",
		Email:    uniqueEmail(),
		Password: "password123",
		Role:     users_enums.UserRole("SUPERADMIN"),
	}

	resp := test_utils.MakePostRequest(t, router, "/api/v1/auth/register", "", request, http.StatusCreated)

	var auth users_dto.AuthResponseDTO
	test_utils.UnmarshalData(t, resp.Body, &auth)

	assert.Equal(t, users_enums.UserRoleTeamMember, auth.User.Role)
}

func Test_Register_DuplicateEmailRejected(t *testing.T) {
	router := createAuthRouter()
	email := uniqueEmail()

	request := users_dto.RegisterRequestDTO{
		Name:     "First",
		Email:    email,
		Password: "password123",
	}
	test_utils.MakePostRequest(t, router, "/api/v1/auth/register", "", request, http.StatusCreated)

	request.Name = "Second"
	test_utils.MakePostRequest(t, router, "/api/v1/auth/register", "", request, http.StatusBadRequest)
}

func Test_Login_WrongPasswordRejected(t *testing.T) {
	router := createAuthRouter()
	email := uniqueEmail()

	register := users_dto.RegisterRequestDTO{
		Name:     "Login User",
		Email:    email,
		Password: "password123",
	}
	test_utils.MakePostRequest(t, router, "/api/v1/auth/register", "", register, http.StatusCreated)

	login := users_dto.LoginRequestDTO{Email: email, Password: "wrong-password"}
	test_utils.MakePostRequest(t, router, "/api/v1/auth/login", "", login, http.StatusUnauthorized)

	login.Password = "password123"
	resp := test_utils.MakePostRequest(t, router, "/api/v1/auth/login", "", login, http.StatusOK)

	var auth users_dto.AuthResponseDTO
	test_utils.UnmarshalData(t, resp.Body, &auth)
	assert.NotEmpty(t, auth.Token)
}

func Test_Me_ReturnsPrincipalProfile(t *testing.T) {
	router := createAuthRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/auth/me", "Bearer "+user.Token, http.StatusOK)

	var profile users_dto.UserProfileResponseDTO
	test_utils.UnmarshalData(t, resp.Body, &profile)

	assert.Equal(t, user.UserID, profile.ID)
	assert.Equal(t, user.Email, profile.Email)
}

func Test_Me_MissingTokenRejected(t *testing.T) {
	router := createAuthRouter()
	test_utils.MakeGetRequest(t, router, "/api/v1/auth/me", "", http.StatusUnauthorized)
}

func Test_UpdatePassword_RequiresCurrentPassword(t *testing.T) {
	router := createAuthRouter()
	email := uniqueEmail()

	register := users_dto.RegisterRequestDTO{
		Name:     "Password User",
		Email:    email,
		Password: "password123",
	}
	resp := test_utils.MakePostRequest(t, router, "/api/v1/auth/register", "", register, http.StatusCreated)

	var auth users_dto.AuthResponseDTO
	test_utils.UnmarshalData(t, resp.Body, &auth)
	authHeader := "Bearer " + auth.Token

	change := users_dto.UpdatePasswordRequestDTO{
		CurrentPassword: "not-the-password",
		NewPassword:     "newpassword123",
	}
	test_utils.MakeRequest(t, router, http.MethodPut, "/api/v1/auth/updatepassword",
		authHeader, change, http.StatusUnauthorized)

	change.CurrentPassword = "password123"
	test_utils.MakeRequest(t, router, http.MethodPut, "/api/v1/auth/updatepassword",
		authHeader, change, http.StatusOK)

	login := users_dto.LoginRequestDTO{Email: email, Password: "newpassword123"}
	test_utils.MakePostRequest(t, router, "/api/v1/auth/login", "", login, http.StatusOK)
}

func Test_ListUsers_ManagerOnly(t *testing.T) {
	router := createAuthRouter()
	manager := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	test_utils.MakeGetRequest(t, router, "/api/v1/auth/users", "Bearer "+member.Token, http.StatusForbidden)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/auth/users", "Bearer "+manager.Token, http.StatusOK)

	var list users_dto.ListUsersResponseDTO
	test_utils.UnmarshalData(t, resp.Body, &list)
	require.GreaterOrEqual(t, list.Total, int64(2))
}

func Test_DeactivateUser_RevokesAccess(t *testing.T) {
	router := createAuthRouter()
	manager := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	// Members cannot deactivate anyone, and managers cannot deactivate
	// themselves.
	test_utils.MakeRequest(t, router, http.MethodDelete,
		"/api/v1/auth/users/"+manager.UserID.String(),
		"Bearer "+member.Token, nil, http.StatusForbidden)
	test_utils.MakeRequest(t, router, http.MethodDelete,
		"/api/v1/auth/users/"+manager.UserID.String(),
		"Bearer "+manager.Token, nil, http.StatusBadRequest)

	test_utils.MakeRequest(t, router, http.MethodDelete,
		"/api/v1/auth/users/"+member.UserID.String(),
		"Bearer "+manager.Token, nil, http.StatusOK)

	test_utils.MakeGetRequest(t, router, "/api/v1/auth/me", "Bearer "+member.Token, http.StatusUnauthorized)
}
