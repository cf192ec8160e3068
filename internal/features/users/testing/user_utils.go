package users_testing

import (
	"fmt"
	"strings"
	"time"

	users_enums "taskhive/internal/features/users/enums"
	users_models "taskhive/internal/features/users/models"
	users_repositories "taskhive/internal/features/users/repositories"
	users_services "taskhive/internal/features/users/services"

	"github.com/google/uuid"
)

type TestUser struct {
	UserID uuid.UUID
	Email  string
	Token  string
}

func CreateTestUser(role users_enums.UserRole) *TestUser {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:             userID,
		Email:          email,
		Name:           "Test " + userID.String()[:8],
		HashedPassword: &hashedPassword,
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	token, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return &TestUser{
		UserID: userID,
		Email:  email,
		Token:  token,
	}
}

func GetTestUserModel(testUser *TestUser) *users_models.User {
	userRepository := &users_repositories.UserRepository{}
	user, err := userRepository.GetUserByID(testUser.UserID)
	if err != nil {
		panic(err)
	}

	return user
}
