package users_models

import (
	"time"

	users_enums "taskhive/internal/features/users/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID            `json:"id"        gorm:"column:id"`
	Email          string               `json:"email"     gorm:"column:email;uniqueIndex"`
	Name           string               `json:"name"      gorm:"column:name"`
	HashedPassword *string              `json:"-"         gorm:"column:hashed_password"`
	GoogleID       *string              `json:"-"         gorm:"column:google_id"`
	Role           users_enums.UserRole `json:"role"      gorm:"column:role"`
	IsActive       bool                 `json:"isActive"  gorm:"column:is_active"`
	CreatedAt      time.Time            `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

// Legacy rows may carry role values that predate the current set;
// they are coerced to TEAM_MEMBER on load.
func (u *User) AfterFind(tx *gorm.DB) error {
	if !u.Role.IsValid() {
		u.Role = users_enums.UserRoleTeamMember
	}

	return nil
}

// IsManager reports whether the user's global role grants manager
// operations across projects they participate in.
func (u *User) IsManager() bool {
	return u.Role == users_enums.UserRoleProjectManager
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
