package users_services

import (
	"fmt"
	"time"

	"taskhive/internal/apperrors"
	users_dto "taskhive/internal/features/users/dto"
	users_enums "taskhive/internal/features/users/enums"
	users_models "taskhive/internal/features/users/models"
	users_repositories "taskhive/internal/features/users/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

type UserService struct {
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
}

func (s *UserService) Register(request *users_dto.RegisterRequestDTO) (*users_dto.AuthResponseDTO, error) {
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, apperrors.Conflict("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := request.Role
	if !role.IsValid() {
		role = users_enums.UserRoleTeamMember
	}

	hashedPasswordStr := string(hashedPassword)
	user := &users_models.User{
		ID:             uuid.New(),
		Email:          request.Email,
		Name:           request.Name,
		HashedPassword: &hashedPasswordStr,
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.buildAuthResponse(user)
}

func (s *UserService) Login(request *users_dto.LoginRequestDTO) (*users_dto.AuthResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil || !user.HasPassword() {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	if !user.IsActive {
		return nil, apperrors.Unauthenticated("user account is deactivated")
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password)) != nil {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	return s.buildAuthResponse(user)
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindAuthentication, "invalid token", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, apperrors.Unauthenticated("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, apperrors.Unauthenticated("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid token")
	}

	if !user.IsActive {
		return nil, apperrors.Unauthenticated("user account is deactivated")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (string, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return "", fmt.Errorf("failed to get secret key: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"exp":  time.Now().UTC().Add(tokenLifetime).Unix(),
		"iat":  time.Now().UTC().Unix(),
		"role": string(user.Role),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

func (s *UserService) UpdateProfile(
	user *users_models.User,
	request *users_dto.UpdateProfileRequestDTO,
) (*users_dto.UserProfileResponseDTO, error) {
	if request.Email != user.Email {
		existing, err := s.userRepository.GetUserByEmail(request.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			return nil, apperrors.Conflict("user with this email already exists")
		}
	}

	if err := s.userRepository.UpdateProfile(user.ID, request.Name, request.Email); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user.Name = request.Name
	user.Email = request.Email

	profile := ProfileDTO(user)
	return &profile, nil
}

func (s *UserService) ChangePassword(user *users_models.User, request *users_dto.UpdatePasswordRequestDTO) error {
	if !user.HasPassword() {
		return apperrors.Validation("user has no password set")
	}

	err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.CurrentPassword))
	if err != nil {
		return apperrors.Unauthenticated("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *UserService) ListUsers(
	principal *users_models.User,
	request *users_dto.ListUsersRequestDTO,
) (*users_dto.ListUsersResponseDTO, error) {
	if !principal.IsManager() {
		return nil, apperrors.Forbidden("insufficient permissions to list users")
	}

	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	offset := max(request.Offset, 0)

	users, total, err := s.userRepository.GetUsers(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]users_dto.UserProfileResponseDTO, len(users))
	for i, user := range users {
		profiles[i] = ProfileDTO(user)
	}

	return &users_dto.ListUsersResponseDTO{Users: profiles, Total: total}, nil
}

func (s *UserService) DeactivateUser(principal *users_models.User, userID uuid.UUID) error {
	if !principal.IsManager() {
		return apperrors.Forbidden("insufficient permissions to deactivate users")
	}

	if principal.ID == userID {
		return apperrors.Validation("cannot deactivate your own account")
	}

	if _, err := s.userRepository.GetUserByID(userID); err != nil {
		return apperrors.NotFound("user not found")
	}

	return s.userRepository.SetUserActive(userID, false)
}

// GetActiveUser fetches a user by ID, treating inactive accounts as
// absent. Other features use this for membership and assignee checks.
func (s *UserService) GetActiveUser(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil || user == nil || !user.IsActive {
		return nil, apperrors.NotFound("user not found")
	}

	return user, nil
}

func (s *UserService) GetUsersByIDs(userIDs []uuid.UUID) ([]*users_models.User, error) {
	return s.userRepository.GetUsersByIDs(userIDs)
}

func (s *UserService) buildAuthResponse(user *users_models.User) (*users_dto.AuthResponseDTO, error) {
	token, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &users_dto.AuthResponseDTO{
		Token: token,
		User:  ProfileDTO(user),
	}, nil
}

func ProfileDTO(user *users_models.User) users_dto.UserProfileResponseDTO {
	return users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
