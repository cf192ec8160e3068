package projects_repositories

import (
	"time"

	projects_models "taskhive/internal/features/projects/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
)

type MembershipRepository struct{}

func (r *MembershipRepository) CreateMembership(membership *projects_models.ProjectMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	if membership.JoinedAt.IsZero() {
		membership.JoinedAt = time.Now()
	}

	return storage.GetDb().Create(membership).Error
}

func (r *MembershipRepository) GetMembershipsByProjectID(projectID uuid.UUID) ([]*projects_models.ProjectMembership, error) {
	var memberships []*projects_models.ProjectMembership

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *MembershipRepository) GetMembership(projectID uuid.UUID, userID uuid.UUID) (*projects_models.ProjectMembership, error) {
	var memberships []*projects_models.ProjectMembership

	err := storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Limit(1).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, nil
	}

	return memberships[0], nil
}

func (r *MembershipRepository) GetProjectIDsByUserID(userID uuid.UUID) ([]uuid.UUID, error) {
	var projectIDs []uuid.UUID

	err := storage.GetDb().
		Model(&projects_models.ProjectMembership{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &projectIDs).Error
	if err != nil {
		return nil, err
	}

	return projectIDs, nil
}

func (r *MembershipRepository) DeleteMembership(projectID uuid.UUID, userID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&projects_models.ProjectMembership{}).Error
}
