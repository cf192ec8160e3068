package notifications_services

import (
	"os"
	"testing"
	"time"

	"taskhive/internal/apperrors"
	"taskhive/internal/events"
	notifications_dto "taskhive/internal/features/notifications/dto"
	notifications_models "taskhive/internal/features/notifications/models"
	projects_dto "taskhive/internal/features/projects/dto"
	projects_services "taskhive/internal/features/projects/services"
	users_enums "taskhive/internal/features/users/enums"
	users_testing "taskhive/internal/features/users/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	projects_services.SetupDependencies(GetGateway())
	os.Exit(m.Run())
}

func Test_Gateway_PersistsNotificationPerRecipient(t *testing.T) {
	actor := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	first := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)
	second := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	projectID := uuid.New()
	GetGateway().HandleEvent(events.Event{
		Type:       events.TaskCreated,
		ActorID:    actor.UserID,
		ProjectID:  &projectID,
		Message:    "Task \"Ship it\" was created",
		OccurredAt: time.Now().UTC(),
		Recipients: []uuid.UUID{first.UserID, second.UserID},
	})

	for _, recipient := range []*users_testing.TestUser{first, second} {
		user := users_testing.GetTestUserModel(recipient)

		list, err := GetNotificationService().ListNotifications(
			&notifications_dto.ListNotificationsRequestDTO{},
			user,
		)
		require.NoError(t, err)
		require.Len(t, list.Notifications, 1)
		assert.Equal(t, "Task \"Ship it\" was created", list.Notifications[0].Message)
		assert.False(t, list.Notifications[0].IsRead)
		assert.Equal(t, int64(1), list.UnreadCount)
	}
}

func Test_MembershipChanges_NotifyTargetUser(t *testing.T) {
	manager := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)
	member := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)
	managerModel := users_testing.GetTestUserModel(manager)

	project, err := projects_services.GetProjectService().CreateProject(
		&projects_dto.CreateProjectRequestDTO{Name: "Notify Board"},
		managerModel,
	)
	require.NoError(t, err)

	_, err = projects_services.GetMembershipService().AddMember(
		project.ID,
		&projects_dto.AddMemberRequestDTO{UserID: member.UserID},
		managerModel,
	)
	require.NoError(t, err)

	memberModel := users_testing.GetTestUserModel(member)
	list, err := GetNotificationService().ListNotifications(
		&notifications_dto.ListNotificationsRequestDTO{},
		memberModel,
	)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, notifications_models.SeveritySuccess, list.Notifications[0].Severity)

	err = projects_services.GetMembershipService().RemoveMember(
		project.ID,
		member.UserID,
		managerModel,
	)
	require.NoError(t, err)

	list, err = GetNotificationService().ListNotifications(
		&notifications_dto.ListNotificationsRequestDTO{},
		memberModel,
	)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)

	severities := []notifications_models.NotificationSeverity{
		list.Notifications[0].Severity,
		list.Notifications[1].Severity,
	}
	assert.ElementsMatch(t, severities, []notifications_models.NotificationSeverity{
		notifications_models.SeveritySuccess,
		notifications_models.SeverityWarning,
	})

	// The actor performed the change and gets no notification for it.
	managerList, err := GetNotificationService().ListNotifications(
		&notifications_dto.ListNotificationsRequestDTO{},
		managerModel,
	)
	require.NoError(t, err)
	assert.Empty(t, managerList.Notifications)
}

func Test_MarkRead_NonRecipient_ReturnsForbidden(t *testing.T) {
	recipient := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)
	intruder := users_testing.CreateTestUser(users_enums.UserRoleProjectManager)

	GetGateway().HandleEvent(events.Event{
		Type:       events.CommentAdded,
		ActorID:    uuid.New(),
		Message:    "Someone commented",
		OccurredAt: time.Now().UTC(),
		Recipients: []uuid.UUID{recipient.UserID},
	})

	recipientModel := users_testing.GetTestUserModel(recipient)
	list, err := GetNotificationService().ListNotifications(
		&notifications_dto.ListNotificationsRequestDTO{},
		recipientModel,
	)
	require.NoError(t, err)
	require.NotEmpty(t, list.Notifications)

	notificationID := list.Notifications[0].ID
	intruderModel := users_testing.GetTestUserModel(intruder)

	err = GetNotificationService().MarkRead(notificationID, intruderModel)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	// A global manager role grants nothing here; only the recipient
	// may mutate their notifications.
	err = GetNotificationService().DeleteNotification(notificationID, intruderModel)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))

	require.NoError(t, GetNotificationService().MarkRead(notificationID, recipientModel))
}

func Test_MarkAllRead_ClearsUnreadCount(t *testing.T) {
	recipient := users_testing.CreateTestUser(users_enums.UserRoleTeamMember)

	for range 3 {
		GetGateway().HandleEvent(events.Event{
			Type:       events.TaskUpdated,
			ActorID:    uuid.New(),
			Message:    "Task moved",
			OccurredAt: time.Now().UTC(),
			Recipients: []uuid.UUID{recipient.UserID},
		})
	}

	user := users_testing.GetTestUserModel(recipient)
	require.NoError(t, GetNotificationService().MarkAllRead(user))

	list, err := GetNotificationService().ListNotifications(
		&notifications_dto.ListNotificationsRequestDTO{},
		user,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.UnreadCount)
	assert.Equal(t, int64(3), list.Total)
}
