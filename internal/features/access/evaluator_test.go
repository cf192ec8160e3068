package access

import (
	"testing"

	users_enums "taskhive/internal/features/users/enums"
	users_models "taskhive/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeUser(role users_enums.UserRole) *users_models.User {
	return &users_models.User{
		ID:       uuid.New(),
		Role:     role,
		IsActive: true,
	}
}

func makeProject(creatorID uuid.UUID, members ...Member) *ProjectSnapshot {
	return &ProjectSnapshot{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Members:   members,
	}
}

func Test_Evaluate_Creator_AllowedForEveryProjectOperation(t *testing.T) {
	creator := makeUser(users_enums.UserRoleTeamMember)
	// Creator intentionally missing from the membership list.
	project := makeProject(creator.ID)

	operations := []Operation{
		OpProjectView, OpProjectUpdate, OpProjectDelete,
		OpMemberList, OpMemberAdd, OpMemberRemove,
		OpTaskView, OpTaskCreate, OpTaskUpdate, OpTaskDelete,
		OpCommentAdd,
		OpSprintView, OpSprintCreate, OpSprintUpdate, OpSprintDelete,
		OpStatsView,
	}

	for _, op := range operations {
		decision := Evaluate(creator, Target{Project: project}, op)
		assert.True(t, decision.Allowed, "creator should pass %s", op)
	}
}

func Test_Evaluate_ProjectCreate_RequiresGlobalManagerRole(t *testing.T) {
	manager := makeUser(users_enums.UserRoleProjectManager)
	member := makeUser(users_enums.UserRoleTeamMember)

	// No project context: the project does not exist yet.
	assert.True(t, Evaluate(manager, Target{}, OpProjectCreate).Allowed)

	decision := Evaluate(member, Target{}, OpProjectCreate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "insufficient permissions, manager role required", decision.Reason)
}

func Test_Evaluate_NonParticipant_DeniedEvenWithGlobalManagerRole(t *testing.T) {
	globalManager := makeUser(users_enums.UserRoleProjectManager)
	project := makeProject(uuid.New())

	decision := Evaluate(globalManager, Target{Project: project}, OpProjectView)

	assert.False(t, decision.Allowed)
	assert.Equal(t, "not a project participant", decision.Reason)
}

func Test_Evaluate_TeamMember_ParticipantGateAllows(t *testing.T) {
	member := makeUser(users_enums.UserRoleTeamMember)
	project := makeProject(uuid.New(), Member{UserID: member.ID, Role: users_enums.ProjectRoleMember})

	for _, op := range []Operation{OpProjectView, OpTaskView, OpTaskUpdate, OpCommentAdd, OpStatsView} {
		decision := Evaluate(member, Target{Project: project}, op)
		assert.True(t, decision.Allowed, "member should pass %s", op)
	}
}

func Test_Evaluate_TeamMember_ManagerGateDenies(t *testing.T) {
	member := makeUser(users_enums.UserRoleTeamMember)
	project := makeProject(uuid.New(), Member{UserID: member.ID, Role: users_enums.ProjectRoleMember})

	for _, op := range []Operation{OpTaskCreate, OpTaskDelete, OpSprintCreate, OpSprintDelete, OpMemberAdd} {
		decision := Evaluate(member, Target{Project: project}, op)
		assert.False(t, decision.Allowed, "member should fail %s", op)
	}
}

func Test_Evaluate_ProjectRoleManager_ManagerGateAllows(t *testing.T) {
	member := makeUser(users_enums.UserRoleTeamMember)
	project := makeProject(uuid.New(), Member{UserID: member.ID, Role: users_enums.ProjectRoleManager})

	decision := Evaluate(member, Target{Project: project}, OpTaskCreate)

	assert.True(t, decision.Allowed)
}

func Test_Evaluate_GlobalManagerWhoIsMember_ManagerGateAllows(t *testing.T) {
	manager := makeUser(users_enums.UserRoleProjectManager)
	project := makeProject(uuid.New(), Member{UserID: manager.ID, Role: users_enums.ProjectRoleMember})

	decision := Evaluate(manager, Target{Project: project}, OpSprintCreate)

	assert.True(t, decision.Allowed)
}

func Test_Evaluate_ProjectDelete_CreatorOnly(t *testing.T) {
	creator := makeUser(users_enums.UserRoleTeamMember)
	projectManager := makeUser(users_enums.UserRoleProjectManager)
	project := makeProject(creator.ID,
		Member{UserID: creator.ID, Role: users_enums.ProjectRoleManager},
		Member{UserID: projectManager.ID, Role: users_enums.ProjectRoleManager},
	)

	assert.True(t, Evaluate(creator, Target{Project: project}, OpProjectDelete).Allowed)

	decision := Evaluate(projectManager, Target{Project: project}, OpProjectDelete)
	assert.False(t, decision.Allowed)
	assert.Equal(t, "only the project creator may perform this operation", decision.Reason)
}

func Test_Evaluate_RemovingCreator_DeniedForManagers(t *testing.T) {
	creator := makeUser(users_enums.UserRoleTeamMember)
	manager := makeUser(users_enums.UserRoleProjectManager)
	project := makeProject(creator.ID,
		Member{UserID: creator.ID, Role: users_enums.ProjectRoleManager},
		Member{UserID: manager.ID, Role: users_enums.ProjectRoleManager},
	)

	decision := Evaluate(manager, Target{Project: project, TargetUserID: &creator.ID}, OpMemberRemove)

	assert.False(t, decision.Allowed)
}

func Test_Evaluate_NotificationOps_SelfScopeOnly(t *testing.T) {
	recipient := makeUser(users_enums.UserRoleTeamMember)
	other := makeUser(users_enums.UserRoleProjectManager)

	for _, op := range []Operation{OpNotificationRead, OpNotificationUpdate, OpNotificationDelete} {
		allowed := Evaluate(recipient, Target{RecipientID: &recipient.ID}, op)
		assert.True(t, allowed.Allowed, "recipient should pass %s", op)

		// A global manager role grants nothing on someone else's notifications.
		denied := Evaluate(other, Target{RecipientID: &recipient.ID}, op)
		assert.False(t, denied.Allowed, "non-recipient should fail %s", op)
	}
}

func Test_Evaluate_MissingProjectContext_Denied(t *testing.T) {
	user := makeUser(users_enums.UserRoleProjectManager)

	decision := Evaluate(user, Target{}, OpProjectView)

	assert.False(t, decision.Allowed)
}

func Test_CanEditAllTaskFields(t *testing.T) {
	creator := makeUser(users_enums.UserRoleTeamMember)
	globalManager := makeUser(users_enums.UserRoleProjectManager)
	projectManager := makeUser(users_enums.UserRoleTeamMember)
	plainMember := makeUser(users_enums.UserRoleTeamMember)
	outsider := makeUser(users_enums.UserRoleProjectManager)

	project := makeProject(creator.ID,
		Member{UserID: globalManager.ID, Role: users_enums.ProjectRoleMember},
		Member{UserID: projectManager.ID, Role: users_enums.ProjectRoleManager},
		Member{UserID: plainMember.ID, Role: users_enums.ProjectRoleMember},
	)

	assert.True(t, CanEditAllTaskFields(creator, project))
	assert.True(t, CanEditAllTaskFields(globalManager, project))
	assert.True(t, CanEditAllTaskFields(projectManager, project))
	assert.False(t, CanEditAllTaskFields(plainMember, project))
	assert.False(t, CanEditAllTaskFields(outsider, project))
}
