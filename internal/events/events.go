package events

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TaskCreated    Type = "task.created"
	TaskUpdated    Type = "task.updated"
	TaskDeleted    Type = "task.deleted"
	ProjectUpdated Type = "project.updated"
	MemberAdded    Type = "member.added"
	MemberRemoved  Type = "member.removed"
	CommentAdded   Type = "comment.added"
)

type Event struct {
	Type       Type       `json:"type"`
	ActorID    uuid.UUID  `json:"actorId"`
	ProjectID  *uuid.UUID `json:"projectId,omitempty"`
	TaskID     *uuid.UUID `json:"taskId,omitempty"`
	Message    string     `json:"message"`
	OccurredAt time.Time  `json:"occurredAt"`

	// Recipients lists users who should receive a persisted
	// notification. The actor is excluded by the emitter.
	Recipients []uuid.UUID `json:"-"`
}

// Dispatcher fans an event out to everyone subscribed to a channel.
// Implementations must not block the caller on delivery.
type Dispatcher interface {
	Publish(channel string, event Event)
}

// Listener receives lifecycle events after the originating mutation
// committed. Failures inside a listener never roll the mutation back.
type Listener interface {
	HandleEvent(event Event)
}

func ProjectChannel(projectID uuid.UUID) string {
	return "project:" + projectID.String()
}

func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}
