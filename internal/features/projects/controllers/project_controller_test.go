package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "taskhive/internal/features/projects/dto"
	projects_testing "taskhive/internal/features/projects/testing"
	users_enums "taskhive/internal/features/users/enums"
	users_testing "taskhive/internal/features/users/testing"
	test_utils "taskhive/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CreateProject_CreatorBecomesManagerMember(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)

	request := projects_dto.CreateProjectRequestDTO{
		Name:        "Launch Checklist",
		Description: "Everything needed before the release",
	}

	var response projects_dto.ProjectResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+creator.Token,
		request,
		http.StatusCreated,
		&response,
	)

	assert.Equal(t, "Launch Checklist", response.Name)
	assert.NotEqual(t, uuid.Nil, response.ID)
	assert.Equal(t, creator.UserID, response.CreatorID)
	assert.Equal(t, "PLANNING", string(response.Status))
	assert.NotNil(t, response.StartDate)

	assert.Len(t, response.Members, 1)
	assert.Equal(t, creator.UserID, response.Members[0].UserID)
	assert.Equal(t, users_enums.ProjectRoleManager, response.Members[0].Role)
}

func Test_CreateProject_TeamMember_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	request := projects_dto.CreateProjectRequestDTO{
		Name: "Not Allowed",
	}

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects",
		"Bearer "+member.Token,
		request,
		http.StatusForbidden,
	)
}

func Test_GetProject_NonParticipant_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	project := projects_testing.CreateTestProject("Private Board", creator, router)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
}

func Test_GetProject_MissingProject_ReturnsNotFound(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	user := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+uuid.New().String(),
		"Bearer "+user.Token,
		http.StatusNotFound,
	)
}

func Test_UpdateProject_MemberWithoutManagerRole_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	project := projects_testing.CreateTestProject("Roadmap", creator, router)

	addRequest := projects_dto.AddMemberRequestDTO{UserID: member.UserID}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		addRequest,
		http.StatusCreated,
	)

	newName := "Renamed Roadmap"
	updateRequest := projects_dto.UpdateProjectRequestDTO{Name: &newName}
	resp := test_utils.MakeAPIRequest(
		router,
		"PUT",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+member.Token,
		updateRequest,
	)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func Test_UpdateProject_InvalidStatus_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)

	project := projects_testing.CreateTestProject("Status Board", creator, router)

	resp := test_utils.MakeAPIRequest(
		router,
		"PUT",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+creator.Token,
		map[string]string{"status": "DONE"},
	)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func Test_AddMember_Duplicate_ReturnsConflict(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	project := projects_testing.CreateTestProject("Team Space", creator, router)

	addRequest := projects_dto.AddMemberRequestDTO{UserID: member.UserID}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		addRequest,
		http.StatusCreated,
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		addRequest,
		http.StatusBadRequest,
	)
}

func Test_RemoveMember_Creator_ReturnsBadRequest(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)

	project := projects_testing.CreateTestProject("Immovable", creator, router)

	resp := test_utils.MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/projects/"+project.ID.String()+"/members/"+creator.UserID.String(),
		"Bearer "+creator.Token,
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func Test_DeleteProject_NonCreatorManager_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	manager := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)

	project := projects_testing.CreateTestProject("Guarded", creator, router)

	managerRole := users_enums.ProjectRoleManager
	addRequest := projects_dto.AddMemberRequestDTO{UserID: manager.UserID, Role: &managerRole}
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+creator.Token,
		addRequest,
		http.StatusCreated,
	)

	resp := test_utils.MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+manager.Token,
		nil,
	)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func Test_DeleteProject_ByCreator_ProjectBecomesInvisible(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetProjectController(), GetMembershipController())
	creator := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)

	project := projects_testing.CreateTestProject("Ephemeral", creator, router)

	resp := test_utils.MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+creator.Token,
		nil,
	)
	assert.Equal(t, http.StatusOK, resp.Code)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+creator.Token,
		http.StatusNotFound,
	)
}
