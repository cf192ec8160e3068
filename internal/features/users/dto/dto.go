package users_dto

import (
	"time"

	users_enums "taskhive/internal/features/users/enums"

	"github.com/google/uuid"
)

type RegisterRequestDTO struct {
	Name     string               `json:"name"     binding:"required,min=1,max=255"`
	Email    string               `json:"email"    binding:"required,email"`
	Password string               `json:"password" binding:"required,min=8"`
	Role     users_enums.UserRole `json:"role"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID            `json:"id"`
	Email     string               `json:"email"`
	Name      string               `json:"name"`
	Role      users_enums.UserRole `json:"role"`
	IsActive  bool                 `json:"isActive"`
	CreatedAt time.Time            `json:"createdAt"`
}

type AuthResponseDTO struct {
	Token string                 `json:"token"`
	User  UserProfileResponseDTO `json:"user"`
}

type UpdateProfileRequestDTO struct {
	Name  string `json:"name"  binding:"required,min=1,max=255"`
	Email string `json:"email" binding:"required,email"`
}

type UpdatePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required,min=8"`
}

type ListUsersRequestDTO struct {
	Limit  int `form:"limit"  json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
	Total int64                    `json:"total"`
}
