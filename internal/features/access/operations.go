package access

// Operation identifies a request against a project-scoped entity or a
// notification. The evaluator maps each operation to its required gate.
type Operation string

const (
	OpProjectCreate Operation = "project.create"
	OpProjectView   Operation = "project.view"
	OpProjectUpdate Operation = "project.update"
	OpProjectDelete Operation = "project.delete"
	OpMemberList    Operation = "member.list"
	OpMemberAdd     Operation = "member.add"
	OpMemberRemove  Operation = "member.remove"
	OpTaskView      Operation = "task.view"
	OpTaskCreate    Operation = "task.create"
	OpTaskUpdate    Operation = "task.update"
	OpTaskDelete    Operation = "task.delete"
	OpCommentAdd    Operation = "comment.add"
	OpSprintView    Operation = "sprint.view"
	OpSprintCreate  Operation = "sprint.create"
	OpSprintUpdate  Operation = "sprint.update"
	OpSprintDelete  Operation = "sprint.delete"
	OpStatsView     Operation = "stats.view"

	OpNotificationRead   Operation = "notification.read"
	OpNotificationUpdate Operation = "notification.update"
	OpNotificationDelete Operation = "notification.delete"
)

type gate int

const (
	// gateParticipant requires the principal to be the project creator
	// or present in the membership list.
	gateParticipant gate = iota
	// gateManager additionally requires a manager role, global or
	// project-scoped. The creator always qualifies.
	gateManager
	// gateCreator admits only the project creator.
	gateCreator
	// gateSelf admits only the notification recipient.
	gateSelf
	// gateGlobalManager requires the principal's global role to be
	// PROJECT_MANAGER. It is the only gate with no project context:
	// the project does not exist yet.
	gateGlobalManager
)

var operationGates = map[Operation]gate{
	OpProjectCreate: gateGlobalManager,
	OpProjectView:   gateParticipant,
	OpProjectUpdate: gateManager,
	OpProjectDelete: gateCreator,
	OpMemberList:    gateParticipant,
	OpMemberAdd:     gateManager,
	OpMemberRemove:  gateManager,
	OpTaskView:      gateParticipant,
	OpTaskCreate:    gateManager,
	OpTaskUpdate:    gateParticipant,
	OpTaskDelete:    gateManager,
	OpCommentAdd:    gateParticipant,
	OpSprintView:    gateParticipant,
	OpSprintCreate:  gateManager,
	OpSprintUpdate:  gateManager,
	OpSprintDelete:  gateManager,
	OpStatsView:     gateParticipant,

	OpNotificationRead:   gateSelf,
	OpNotificationUpdate: gateSelf,
	OpNotificationDelete: gateSelf,
}
