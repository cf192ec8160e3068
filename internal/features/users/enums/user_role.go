package users_enums

type UserRole string

const (
	UserRoleProjectManager UserRole = "PROJECT_MANAGER"
	UserRoleTeamMember     UserRole = "TEAM_MEMBER"
)

// IsValid validates the UserRole
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleProjectManager, UserRoleTeamMember:
		return true
	default:
		return false
	}
}
