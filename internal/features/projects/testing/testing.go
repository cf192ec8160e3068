package projects_testing

import (
	"encoding/json"
	"fmt"
	"net/http"

	projects_dto "taskhive/internal/features/projects/dto"
	users_middleware "taskhive/internal/features/users/middleware"
	users_services "taskhive/internal/features/users/services"
	users_testing "taskhive/internal/features/users/testing"
	"taskhive/internal/util/response"
	test_utils "taskhive/internal/util/testing"

	"github.com/gin-gonic/gin"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

func CreateTestProject(
	name string,
	owner *users_testing.TestUser,
	router *gin.Engine,
) *projects_dto.ProjectResponseDTO {
	request := projects_dto.CreateProjectRequestDTO{Name: name}
	w := test_utils.MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+owner.Token, request)

	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("Failed to create project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var envelope response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		panic(err)
	}

	data, err := json.Marshal(envelope.Data)
	if err != nil {
		panic(err)
	}

	var project projects_dto.ProjectResponseDTO
	if err := json.Unmarshal(data, &project); err != nil {
		panic(err)
	}

	return &project
}
