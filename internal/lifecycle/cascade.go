package lifecycle

import (
	"fmt"
	"log/slog"
	"sync"

	"taskhive/internal/apperrors"
	"taskhive/internal/util/logger"

	"github.com/google/uuid"
)

type EntityType string

const (
	EntityProject EntityType = "project"
	EntitySprint  EntityType = "sprint"
)

// CascadeAction applies a follow-on state change for the children of a
// deactivated parent entity.
type CascadeAction func(parentID uuid.UUID) error

type CascadeRule struct {
	Child  string
	Action CascadeAction
}

// Runner executes declared onDeactivate rules after a parent entity's
// primary soft-delete committed. Rules are registered once at startup.
type Runner struct {
	mu     sync.RWMutex
	rules  map[EntityType][]CascadeRule
	logger *slog.Logger
}

func NewRunner(log *slog.Logger) *Runner {
	return &Runner{
		rules:  make(map[EntityType][]CascadeRule),
		logger: log,
	}
}

var runner = NewRunner(logger.GetLogger())

func GetRunner() *Runner {
	return runner
}

func (r *Runner) Register(parent EntityType, rule CascadeRule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[parent] = append(r.rules[parent], rule)
}

// Deactivate runs the primary mutation, then every cascade rule declared
// for the parent type. When a rule fails after the primary mutation has
// already committed, the error is a PartialFailure so callers can retry
// the cascade without repeating the primary write.
func (r *Runner) Deactivate(parent EntityType, parentID uuid.UUID, primary func() error) error {
	if err := primary(); err != nil {
		return err
	}

	r.mu.RLock()
	rules := r.rules[parent]
	r.mu.RUnlock()

	for _, rule := range rules {
		if err := rule.Action(parentID); err != nil {
			r.logger.Error("cascade step failed after primary mutation",
				"parent", string(parent),
				"parentId", parentID.String(),
				"child", rule.Child,
				"error", err)

			return apperrors.PartialFailure(
				fmt.Sprintf("%s deactivated but %s cascade did not complete", parent, rule.Child),
				err,
			)
		}
	}

	return nil
}
