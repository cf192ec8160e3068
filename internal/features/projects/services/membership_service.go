package projects_services

import (
	"fmt"
	"time"

	"taskhive/internal/apperrors"
	"taskhive/internal/events"
	"taskhive/internal/features/access"
	audit_logs "taskhive/internal/features/audit_logs"
	projects_dto "taskhive/internal/features/projects/dto"
	projects_models "taskhive/internal/features/projects/models"
	projects_repositories "taskhive/internal/features/projects/repositories"
	users_enums "taskhive/internal/features/users/enums"
	users_models "taskhive/internal/features/users/models"
	users_services "taskhive/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *projects_repositories.MembershipRepository
	projectService       *ProjectService
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
	listeners            []events.Listener
}

func (s *MembershipService) AddEventListener(listener events.Listener) {
	s.listeners = append(s.listeners, listener)
}

func (s *MembershipService) AddMember(
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	user *users_models.User,
) (*projects_dto.MemberResponseDTO, error) {
	snapshot, err := s.requireSnapshot(projectID)
	if err != nil {
		return nil, err
	}

	decision := access.Evaluate(user, access.Target{
		Project:      snapshot,
		TargetUserID: &request.UserID,
	}, access.OpMemberAdd)
	if !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	member, err := s.userService.GetActiveUser(request.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.membershipRepository.GetMembership(projectID, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("user is already a member of this project")
	}

	role := users_enums.ProjectRoleMember
	if request.Role != nil {
		if !request.Role.IsValid() {
			return nil, apperrors.Validation("invalid project role")
		}
		role = *request.Role
	}

	membership := &projects_models.ProjectMembership{
		ProjectID: projectID,
		UserID:    request.UserID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member added: %s", member.Email),
		&user.ID,
		&projectID,
	)

	s.notifyListeners(events.Event{
		Type:       events.MemberAdded,
		ActorID:    user.ID,
		ProjectID:  &projectID,
		Message:    fmt.Sprintf("%s joined the project", member.Name),
		OccurredAt: time.Now().UTC(),
		Recipients: recipientsExcluding(member.ID, user.ID),
	})

	return &projects_dto.MemberResponseDTO{
		UserID:   member.ID,
		Name:     member.Name,
		Email:    member.Email,
		Role:     membership.Role,
		JoinedAt: membership.JoinedAt,
	}, nil
}

// RemoveMember removes a user from the project. The creator's own
// membership can never be removed, by anyone.
func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	targetUserID uuid.UUID,
	user *users_models.User,
) error {
	snapshot, err := s.requireSnapshot(projectID)
	if err != nil {
		return err
	}

	decision := access.Evaluate(user, access.Target{
		Project:      snapshot,
		TargetUserID: &targetUserID,
	}, access.OpMemberRemove)
	if !decision.Allowed {
		return apperrors.Forbidden(decision.Reason)
	}

	if targetUserID == snapshot.CreatorID {
		return apperrors.Validation("the project creator cannot be removed from the project")
	}

	existing, err := s.membershipRepository.GetMembership(projectID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existing == nil {
		return apperrors.NotFound("membership not found")
	}

	if err := s.membershipRepository.DeleteMembership(projectID, targetUserID); err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Member removed: %s", targetUserID),
		&user.ID,
		&projectID,
	)

	s.notifyListeners(events.Event{
		Type:       events.MemberRemoved,
		ActorID:    user.ID,
		ProjectID:  &projectID,
		Message:    "A member left the project",
		OccurredAt: time.Now().UTC(),
		Recipients: recipientsExcluding(targetUserID, user.ID),
	})

	return nil
}

// recipientsExcluding returns the target as the sole notification
// recipient, unless the target is the actor themselves.
func recipientsExcluding(targetUserID uuid.UUID, actorID uuid.UUID) []uuid.UUID {
	if targetUserID == actorID {
		return nil
	}

	return []uuid.UUID{targetUserID}
}

func (s *MembershipService) ListMembers(
	projectID uuid.UUID,
	user *users_models.User,
) ([]projects_dto.MemberResponseDTO, error) {
	snapshot, err := s.requireSnapshot(projectID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpMemberList); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	response, err := s.projectService.buildProjectResponse(&projects_models.Project{ID: projectID})
	if err != nil {
		return nil, err
	}

	return response.Members, nil
}

func (s *MembershipService) requireSnapshot(projectID uuid.UUID) (*access.ProjectSnapshot, error) {
	snapshot, err := s.projectService.GetProjectSnapshot(projectID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.NotFound("project not found")
	}

	return snapshot, nil
}

func (s *MembershipService) notifyListeners(event events.Event) {
	for _, listener := range s.listeners {
		listener.HandleEvent(event)
	}
}
