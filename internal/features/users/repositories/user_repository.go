package users_repositories

import (
	"time"

	users_enums "taskhive/internal/features/users/enums"
	users_models "taskhive/internal/features/users/models"
	"taskhive/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(user).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByGoogleID(googleID string) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("google_id = ?", googleID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}

func (r *UserRepository) UpdateProfile(userID uuid.UUID, name, email string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"name":  name,
			"email": email,
		}).Error
}

func (r *UserRepository) LinkGoogleID(userID uuid.UUID, googleID string) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("google_id", googleID).Error
}

func (r *UserRepository) SetUserActive(userID uuid.UUID, isActive bool) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("is_active", isActive).Error
}

func (r *UserRepository) UpdateUserRole(userID uuid.UUID, role users_enums.UserRole) error {
	return storage.GetDb().Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

func (r *UserRepository) GetUsers(limit, offset int) ([]*users_models.User, int64, error) {
	var users []*users_models.User
	var total int64

	if err := storage.GetDb().Model(&users_models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := storage.GetDb().
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) GetUsersByIDs(userIDs []uuid.UUID) ([]*users_models.User, error) {
	if len(userIDs) == 0 {
		return []*users_models.User{}, nil
	}

	var users []*users_models.User

	err := storage.GetDb().
		Where("id IN ?", userIDs).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}
