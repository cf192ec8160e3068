package access

import (
	users_enums "taskhive/internal/features/users/enums"
	users_models "taskhive/internal/features/users/models"

	"github.com/google/uuid"
)

// Member is a membership entry inside a project snapshot.
type Member struct {
	UserID uuid.UUID
	Role   users_enums.ProjectRole
}

// ProjectSnapshot is the slice of project state the evaluator needs.
// Snapshots are plain values; evaluating one has no side effects.
type ProjectSnapshot struct {
	ID        uuid.UUID
	CreatorID uuid.UUID
	Members   []Member
}

// Target carries whichever entity context an operation applies to:
// a project snapshot for project-scoped operations, a recipient for
// notification operations, and optionally the user a membership
// operation is aimed at.
type Target struct {
	Project      *ProjectSnapshot
	RecipientID  *uuid.UUID
	TargetUserID *uuid.UUID
}

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Evaluate decides whether the principal may perform the operation on
// the target. Gates are table-driven; precedence is participant check
// first, then the operation's specific gate.
func Evaluate(principal *users_models.User, target Target, op Operation) Decision {
	requiredGate, known := operationGates[op]
	if !known {
		return Deny("unknown operation")
	}

	if requiredGate == gateGlobalManager {
		if principal.IsManager() {
			return Allow()
		}
		return Deny("insufficient permissions, manager role required")
	}

	if requiredGate == gateSelf {
		if target.RecipientID == nil {
			return Deny("missing notification recipient")
		}
		if *target.RecipientID != principal.ID {
			return Deny("notifications can only be accessed by their recipient")
		}
		return Allow()
	}

	project := target.Project
	if project == nil {
		return Deny("missing project context")
	}

	// The creator is implicitly authorized regardless of the
	// membership list, for every gate short of gateSelf.
	if project.CreatorID == principal.ID {
		if op == OpMemberRemove && target.TargetUserID != nil && *target.TargetUserID == project.CreatorID {
			// Creator removal is rejected downstream by the lifecycle
			// manager even for the creator; the gate itself passes.
			return Allow()
		}
		return Allow()
	}

	if !isParticipant(principal.ID, project) {
		return Deny("not a project participant")
	}

	switch requiredGate {
	case gateParticipant:
		return Allow()

	case gateManager:
		if op == OpMemberRemove && target.TargetUserID != nil && *target.TargetUserID == project.CreatorID {
			return Deny("only the project creator may be the subject of creator removal")
		}
		if isManager(principal, project) {
			return Allow()
		}
		return Deny("insufficient permissions, manager role required")

	case gateCreator:
		return Deny("only the project creator may perform this operation")

	default:
		return Deny("unknown gate")
	}
}

// CanEditAllTaskFields reports whether the principal passes the manager
// gate for the project. Non-managers may still update a task, but only
// its status and actual hours; other fields are dropped by the caller.
func CanEditAllTaskFields(principal *users_models.User, project *ProjectSnapshot) bool {
	if project == nil {
		return false
	}
	if project.CreatorID == principal.ID {
		return true
	}
	if !isParticipant(principal.ID, project) {
		return false
	}
	return isManager(principal, project)
}

func isParticipant(userID uuid.UUID, project *ProjectSnapshot) bool {
	if project.CreatorID == userID {
		return true
	}
	for _, member := range project.Members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}

func isManager(principal *users_models.User, project *ProjectSnapshot) bool {
	if principal.IsManager() {
		return true
	}
	for _, member := range project.Members {
		if member.UserID == principal.ID && member.Role == users_enums.ProjectRoleManager {
			return true
		}
	}
	return false
}
