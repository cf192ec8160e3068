package sprints_controllers

import (
	"net/http"
	"os"
	"testing"
	"time"

	projects_controllers "taskhive/internal/features/projects/controllers"
	projects_testing "taskhive/internal/features/projects/testing"
	sprints_dto "taskhive/internal/features/sprints/dto"
	sprints_services "taskhive/internal/features/sprints/services"
	tasks_controllers "taskhive/internal/features/tasks/controllers"
	tasks_dto "taskhive/internal/features/tasks/dto"
	tasks_services "taskhive/internal/features/tasks/services"
	users_enums "taskhive/internal/features/users/enums"
	users_testing "taskhive/internal/features/users/testing"
	test_utils "taskhive/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	tasks_services.SetupDependencies(nil)
	sprints_services.SetupDependencies()
	os.Exit(m.Run())
}

func createSprintRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		GetSprintController(),
		tasks_controllers.GetTaskController(),
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
	)
}

func createSprint(
	t *testing.T,
	router *gin.Engine,
	projectID uuid.UUID,
	token string,
	name string,
) sprints_dto.SprintResponseDTO {
	t.Helper()

	request := sprints_dto.CreateSprintRequestDTO{
		Name:      name,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().Add(14 * 24 * time.Hour),
	}

	var sprint sprints_dto.SprintResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/sprints/project/"+projectID.String(),
		"Bearer "+token,
		request,
		http.StatusCreated,
		&sprint,
	)

	return sprint
}

func Test_CreateSprint_EndBeforeStart_ReturnsBadRequest(t *testing.T) {
	router := createSprintRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Sprint Home", creator, router)

	start := time.Now().UTC()
	request := sprints_dto.CreateSprintRequestDTO{
		Name:      "Backwards",
		StartDate: start,
		EndDate:   start.Add(-24 * time.Hour),
	}

	resp := test_utils.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/sprints/project/"+project.ID.String(),
		"Bearer "+creator.Token,
		request,
	)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func Test_CreateSprint_EndEqualsStart_ReturnsBadRequest(t *testing.T) {
	router := createSprintRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Zero Length", creator, router)

	start := time.Now().UTC()
	request := sprints_dto.CreateSprintRequestDTO{
		Name:      "Instantaneous",
		StartDate: start,
		EndDate:   start,
	}

	resp := test_utils.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/sprints/project/"+project.ID.String(),
		"Bearer "+creator.Token,
		request,
	)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func Test_DeleteSprint_DetachesTasksWithoutDeletingThem(t *testing.T) {
	router := createSprintRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Detach", creator, router)

	sprint := createSprint(t, router, project.ID, creator.Token, "Iteration 1")

	taskRequest := tasks_dto.CreateTaskRequestDTO{Title: "In the sprint", SprintID: &sprint.ID}
	var task tasks_dto.TaskResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/project/"+project.ID.String(),
		"Bearer "+creator.Token,
		taskRequest,
		http.StatusCreated,
		&task,
	)
	require.NotNil(t, task.SprintID)

	resp := test_utils.MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/sprints/"+sprint.ID.String(),
		"Bearer "+creator.Token,
		nil,
	)
	require.Equal(t, http.StatusOK, resp.Code)

	var reloaded tasks_dto.TaskResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+creator.Token,
		http.StatusOK,
		&reloaded,
	)

	assert.Nil(t, reloaded.SprintID)
}

func Test_GetSprintStats_CompletionIndependentOfTime(t *testing.T) {
	router := createSprintRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Metrics", creator, router)

	sprint := createSprint(t, router, project.ID, creator.Token, "Iteration 2")

	taskRequest := tasks_dto.CreateTaskRequestDTO{Title: "Only task", SprintID: &sprint.ID}
	var task tasks_dto.TaskResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/project/"+project.ID.String(),
		"Bearer "+creator.Token,
		taskRequest,
		http.StatusCreated,
		&task,
	)

	statusRequest := tasks_dto.UpdateTaskStatusRequestDTO{Status: "DONE"}
	test_utils.MakeRequest(
		t,
		router,
		"PATCH",
		"/api/v1/tasks/"+task.ID.String()+"/status",
		"Bearer "+creator.Token,
		statusRequest,
		http.StatusOK,
	)

	var stats sprints_dto.SprintStatsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/sprints/"+sprint.ID.String()+"/stats",
		"Bearer "+creator.Token,
		http.StatusOK,
		&stats,
	)

	assert.Equal(t, 1, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 100.0, stats.CompletionRate)
	assert.GreaterOrEqual(t, stats.TimeProgress, 0.0)
	assert.LessOrEqual(t, stats.TimeProgress, 100.0)
}

func Test_CreateSprint_NonManagerMember_ReturnsForbidden(t *testing.T) {
	router := createSprintRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)
	project := projects_testing.CreateTestProject("No Sprints For You", creator, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		map[string]string{"userId": member.UserID.String()},
		http.StatusCreated,
	)

	request := sprints_dto.CreateSprintRequestDTO{
		Name:      "Denied",
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().Add(24 * time.Hour),
	}

	resp := test_utils.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/sprints/project/"+project.ID.String(),
		"Bearer "+member.Token,
		request,
	)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
