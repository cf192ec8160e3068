package tasks_controllers

import (
	"net/http"
	"os"
	"testing"

	projects_controllers "taskhive/internal/features/projects/controllers"
	projects_dto "taskhive/internal/features/projects/dto"
	projects_testing "taskhive/internal/features/projects/testing"
	tasks_dto "taskhive/internal/features/tasks/dto"
	tasks_models "taskhive/internal/features/tasks/models"
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
	os.Exit(m.Run())
}

func createTaskRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		GetTaskController(),
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
	)
}

func createTask(
	t *testing.T,
	router *gin.Engine,
	projectID uuid.UUID,
	token string,
	title string,
) tasks_dto.TaskResponseDTO {
	t.Helper()

	request := tasks_dto.CreateTaskRequestDTO{Title: title}

	var task tasks_dto.TaskResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/project/"+projectID.String(),
		"Bearer "+token,
		request,
		http.StatusCreated,
		&task,
	)

	return task
}

func Test_CreateTasks_PositionsIncreaseMonotonically(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Board", creator, router)

	first := createTask(t, router, project.ID, creator.Token, "First")
	second := createTask(t, router, project.ID, creator.Token, "Second")
	third := createTask(t, router, project.ID, creator.Token, "Third")

	assert.Equal(t, 0, first.Position)
	assert.Greater(t, second.Position, first.Position)
	assert.Greater(t, third.Position, second.Position)
	assert.Equal(t, tasks_models.TaskStatusToDo, first.Status)
	assert.Equal(t, tasks_models.TaskPriorityMedium, first.Priority)
}

func Test_CreateTask_PlainMember_ReturnsForbidden(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)
	project := projects_testing.CreateTestProject("Restricted", creator, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		projects_dto.AddMemberRequestDTO{UserID: member.UserID},
		http.StatusCreated,
	)

	resp := test_utils.MakeAPIRequest(
		router,
		"POST",
		"/api/v1/tasks/project/"+project.ID.String(),
		"Bearer "+member.Token,
		tasks_dto.CreateTaskRequestDTO{Title: "Not allowed"},
	)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func Test_UpdateTask_NonManager_OnlyStatusAndHoursApplied(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)
	project := projects_testing.CreateTestProject("Partial Updates", creator, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		projects_dto.AddMemberRequestDTO{UserID: member.UserID},
		http.StatusCreated,
	)

	task := createTask(t, router, project.ID, creator.Token, "Original Title")

	newTitle := "Hijacked Title"
	newStatus := tasks_models.TaskStatusInProgress
	newHours := 3.5
	request := tasks_dto.UpdateTaskRequestDTO{
		Title:       &newTitle,
		Status:      &newStatus,
		ActualHours: &newHours,
	}

	var updated tasks_dto.TaskResponseDTO
	resp := test_utils.MakeRequest(
		t,
		router,
		"PUT",
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+member.Token,
		request,
		http.StatusOK,
	)
	test_utils.UnmarshalData(t, resp.Body, &updated)

	assert.Equal(t, "Original Title", updated.Title)
	assert.Equal(t, tasks_models.TaskStatusInProgress, updated.Status)
	assert.Equal(t, 3.5, updated.ActualHours)
}

func Test_UpdateTask_Manager_AllFieldsApplied(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Full Updates", creator, router)

	task := createTask(t, router, project.ID, creator.Token, "Draft")

	newTitle := "Polished"
	newPriority := tasks_models.TaskPriorityHigh
	request := tasks_dto.UpdateTaskRequestDTO{
		Title:    &newTitle,
		Priority: &newPriority,
	}

	var updated tasks_dto.TaskResponseDTO
	resp := test_utils.MakeRequest(
		t,
		router,
		"PUT",
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+creator.Token,
		request,
		http.StatusOK,
	)
	test_utils.UnmarshalData(t, resp.Body, &updated)

	assert.Equal(t, "Polished", updated.Title)
	assert.Equal(t, tasks_models.TaskPriorityHigh, updated.Priority)
}

func Test_BulkUpdatePositions_FailuresAreIndependent(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Reorder", creator, router)

	task := createTask(t, router, project.ID, creator.Token, "Movable")
	invalidID := uuid.New()

	request := tasks_dto.BulkUpdatePositionsRequestDTO{
		Updates: []tasks_dto.BulkPositionItemDTO{
			{TaskID: task.ID, Position: 5},
			{TaskID: invalidID, Position: 9},
		},
	}

	var result tasks_dto.BulkUpdatePositionsResponseDTO
	resp := test_utils.MakeRequest(
		t,
		router,
		"PATCH",
		"/api/v1/tasks/bulk-update-positions",
		"Bearer "+creator.Token,
		request,
		http.StatusOK,
	)
	test_utils.UnmarshalData(t, resp.Body, &result)

	require.Len(t, result.Applied, 1)
	assert.Equal(t, task.ID, result.Applied[0])
	require.Len(t, result.Failed, 1)
	assert.Equal(t, invalidID, result.Failed[0].TaskID)

	var reloaded tasks_dto.TaskResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+creator.Token,
		http.StatusOK,
		&reloaded,
	)
	assert.Equal(t, 5, reloaded.Position)
}

func Test_DeleteProject_CascadesToTasks(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Doomed", creator, router)

	task := createTask(t, router, project.ID, creator.Token, "Goes down with the ship")

	// A second project's task must survive the cascade untouched.
	otherProject := projects_testing.CreateTestProject("Bystander", creator, router)
	otherTask := createTask(t, router, otherProject.ID, creator.Token, "Stays afloat")

	resp := test_utils.MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+creator.Token,
		nil,
	)
	require.Equal(t, http.StatusOK, resp.Code)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+creator.Token,
		http.StatusNotFound,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/tasks/"+otherTask.ID.String(),
		"Bearer "+creator.Token,
		http.StatusOK,
	)
}

func Test_AddComment_AppendsWithAuthor(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	project := projects_testing.CreateTestProject("Discussion", creator, router)

	task := createTask(t, router, project.ID, creator.Token, "Talk about me")

	var comment tasks_dto.CommentResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String()+"/comments",
		"Bearer "+creator.Token,
		tasks_dto.AddCommentRequestDTO{Text: "Looks good"},
		http.StatusCreated,
		&comment,
	)

	assert.Equal(t, creator.UserID, comment.AuthorID)
	assert.Equal(t, "Looks good", comment.Text)

	var detailed tasks_dto.TaskResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+creator.Token,
		http.StatusOK,
		&detailed,
	)
	require.Len(t, detailed.Comments, 1)
	assert.Equal(t, "Looks good", detailed.Comments[0].Text)
}

func Test_GetMyTasks_ReturnsAssignedOnly(t *testing.T) {
	router := createTaskRouter()
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	assignee := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)
	project := projects_testing.CreateTestProject("Assignments", creator, router)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		projects_dto.AddMemberRequestDTO{UserID: assignee.UserID},
		http.StatusCreated,
	)

	request := tasks_dto.CreateTaskRequestDTO{Title: "Assigned", AssigneeID: &assignee.UserID}
	var assigned tasks_dto.TaskResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/project/"+project.ID.String(),
		"Bearer "+creator.Token,
		request,
		http.StatusCreated,
		&assigned,
	)

	createTask(t, router, project.ID, creator.Token, "Unassigned")

	var myTasks tasks_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/my-tasks",
		"Bearer "+assignee.Token,
		http.StatusOK,
		&myTasks,
	)

	require.Len(t, myTasks.Tasks, 1)
	assert.Equal(t, assigned.ID, myTasks.Tasks[0].ID)
}
