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
	"taskhive/internal/lifecycle"
	cache_utils "taskhive/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository    *projects_repositories.ProjectRepository
	membershipRepository *projects_repositories.MembershipRepository
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
	cascadeRunner        *lifecycle.Runner
	listeners            []events.Listener

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) AddEventListener(listener events.Listener) {
	s.listeners = append(s.listeners, listener)
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	if decision := access.Evaluate(creator, access.Target{}, access.OpProjectCreate); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	startDate := request.StartDate
	if startDate == nil {
		now := time.Now().UTC()
		startDate = &now
	}

	if request.EndDate != nil && !request.EndDate.After(*startDate) {
		return nil, apperrors.Consistency("project end date must be after start date")
	}

	project := &projects_models.Project{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		CreatorID:   creator.ID,
		Status:      projects_models.ProjectStatusPlanning,
		StartDate:   startDate,
		EndDate:     request.EndDate,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	creatorMembership := &projects_models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    creator.ID,
		Role:      users_enums.ProjectRoleManager,
		JoinedAt:  time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(creatorMembership); err != nil {
		return nil, fmt.Errorf("failed to create project membership: %w", err)
	}

	for _, memberID := range request.MemberIDs {
		if memberID == creator.ID {
			continue
		}

		if _, err := s.userService.GetActiveUser(memberID); err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("member %s does not exist", memberID))
		}

		membership := &projects_models.ProjectMembership{
			ProjectID: project.ID,
			UserID:    memberID,
			Role:      users_enums.ProjectRoleMember,
			JoinedAt:  time.Now().UTC(),
		}

		if err := s.membershipRepository.CreateMembership(membership); err != nil {
			return nil, fmt.Errorf("failed to add project member: %w", err)
		}
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&creator.ID,
		&project.ID,
	)

	return s.buildProjectResponse(project)
}

func (s *ProjectService) GetProject(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project, snapshot, err := s.requireProject(projectID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpProjectView); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	return s.buildProjectResponse(project)
}

func (s *ProjectService) ListProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	projectIDs, err := s.membershipRepository.GetProjectIDsByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	projects, err := s.projectRepository.GetProjectsByIDs(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	responses := make([]projects_dto.ProjectResponseDTO, 0, len(projects))
	for _, project := range projects {
		response, err := s.buildProjectResponse(project)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *response)
	}

	return &projects_dto.ListProjectsResponseDTO{
		Projects: responses,
		Total:    int64(len(responses)),
	}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project, snapshot, err := s.requireProject(projectID)
	if err != nil {
		return nil, err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpProjectUpdate); !decision.Allowed {
		return nil, apperrors.Forbidden(decision.Reason)
	}

	if request.Name != nil {
		project.Name = *request.Name
	}
	if request.Description != nil {
		project.Description = *request.Description
	}
	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, apperrors.Validation("invalid project status")
		}
		project.Status = *request.Status
	}
	if request.StartDate != nil {
		project.StartDate = request.StartDate
	}
	if request.EndDate != nil {
		project.EndDate = request.EndDate
	}

	if project.StartDate != nil && project.EndDate != nil && !project.EndDate.After(*project.StartDate) {
		return nil, apperrors.Consistency("project end date must be after start date")
	}

	if err := s.projectRepository.UpdateProject(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&user.ID,
		&projectID,
	)

	s.notifyListeners(events.Event{
		Type:       events.ProjectUpdated,
		ActorID:    user.ID,
		ProjectID:  &projectID,
		Message:    fmt.Sprintf("Project %q was updated", project.Name),
		OccurredAt: time.Now().UTC(),
		Recipients: s.memberRecipients(projectID, user.ID),
	})

	return s.buildProjectResponse(project)
}

// memberRecipients lists every project member except the actor. Errors
// degrade to no persisted notifications rather than failing the
// originating mutation.
func (s *ProjectService) memberRecipients(projectID uuid.UUID, actorID uuid.UUID) []uuid.UUID {
	memberships, err := s.membershipRepository.GetMembershipsByProjectID(projectID)
	if err != nil {
		return nil
	}

	recipients := []uuid.UUID{}
	for _, membership := range memberships {
		if membership.UserID != actorID {
			recipients = append(recipients, membership.UserID)
		}
	}

	return recipients
}

// DeleteProject soft-deletes the project and runs the registered
// cascade rules over its children.
func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	project, snapshot, err := s.requireProject(projectID)
	if err != nil {
		return err
	}

	if decision := access.Evaluate(user, access.Target{Project: snapshot}, access.OpProjectDelete); !decision.Allowed {
		return apperrors.Forbidden(decision.Reason)
	}

	err = s.cascadeRunner.Deactivate(lifecycle.EntityProject, projectID, func() error {
		return s.projectRepository.DeactivateProject(projectID)
	})

	s.projectCacheUtil.Invalidate(projectID.String())

	if err != nil {
		return err
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&projectID,
	)

	return nil
}

// GetProjectSnapshot builds the access-control view of a project. It
// returns nil without error when the project is missing or inactive so
// callers can translate that into a not-found response.
func (s *ProjectService) GetProjectSnapshot(projectID uuid.UUID) (*access.ProjectSnapshot, error) {
	project, err := s.GetProjectWithCache(projectID)
	if err != nil || project == nil {
		return nil, err
	}

	memberships, err := s.membershipRepository.GetMembershipsByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project memberships: %w", err)
	}

	members := make([]access.Member, len(memberships))
	for i, membership := range memberships {
		members[i] = access.Member{UserID: membership.UserID, Role: membership.Role}
	}

	return &access.ProjectSnapshot{
		ID:        project.ID,
		CreatorID: project.CreatorID,
		Members:   members,
	}, nil
}

// GetProjectWithCache resolves an active project through the cache.
// Missing and inactive projects are cached negatively to prevent
// repeated DB hits; both come back as nil without error.
func (s *ProjectService) GetProjectWithCache(projectID uuid.UUID) (*projects_models.Project, error) {
	projectIDStr := projectID.String()

	if cachedProject := s.projectCacheUtil.Get(projectIDStr); cachedProject != nil {
		if cachedProject.IsNotExists {
			return nil, nil
		}

		return cachedProject, nil
	}

	result, err, _ := s.singleflight.Do(projectIDStr, func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project, ok := result.(*projects_models.Project)
	if !ok {
		return nil, fmt.Errorf("failed to cast result to Project")
	}

	if project == nil {
		s.projectCacheUtil.Set(projectIDStr, &projects_models.Project{
			ID:          projectID,
			IsNotExists: true,
		})
		return nil, nil
	}

	s.projectCacheUtil.Set(projectIDStr, project)

	return project, nil
}

func (s *ProjectService) requireProject(
	projectID uuid.UUID,
) (*projects_models.Project, *access.ProjectSnapshot, error) {
	project, err := s.GetProjectWithCache(projectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, apperrors.NotFound("project not found")
	}

	snapshot, err := s.GetProjectSnapshot(projectID)
	if err != nil {
		return nil, nil, err
	}
	if snapshot == nil {
		return nil, nil, apperrors.NotFound("project not found")
	}

	return project, snapshot, nil
}

func (s *ProjectService) buildProjectResponse(
	project *projects_models.Project,
) (*projects_dto.ProjectResponseDTO, error) {
	memberships, err := s.membershipRepository.GetMembershipsByProjectID(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project memberships: %w", err)
	}

	userIDs := make([]uuid.UUID, len(memberships))
	for i, membership := range memberships {
		userIDs[i] = membership.UserID
	}

	users, err := s.userService.GetUsersByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get member profiles: %w", err)
	}

	usersByID := make(map[uuid.UUID]*users_models.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}

	members := make([]projects_dto.MemberResponseDTO, 0, len(memberships))
	for _, membership := range memberships {
		member := projects_dto.MemberResponseDTO{
			UserID:   membership.UserID,
			Role:     membership.Role,
			JoinedAt: membership.JoinedAt,
		}
		if user, ok := usersByID[membership.UserID]; ok {
			member.Name = user.Name
			member.Email = user.Email
		}
		members = append(members, member)
	}

	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatorID:   project.CreatorID,
		Status:      project.Status,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		CreatedAt:   project.CreatedAt,
		Members:     members,
	}, nil
}

func (s *ProjectService) notifyListeners(event events.Event) {
	for _, listener := range s.listeners {
		listener.HandleEvent(event)
	}
}
