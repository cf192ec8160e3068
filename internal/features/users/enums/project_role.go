package users_enums

// ProjectRole is a member's permission level scoped to one project,
// distinct from the user's global role.
type ProjectRole string

const (
	ProjectRoleManager ProjectRole = "PROJECT_MANAGER"
	ProjectRoleMember  ProjectRole = "TEAM_MEMBER"
)

func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleManager, ProjectRoleMember:
		return true
	default:
		return false
	}
}
