package lifecycle

import (
	"errors"
	"testing"

	"taskhive/internal/apperrors"
	"taskhive/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Deactivate_PrimaryFails_CascadeNeverRuns(t *testing.T) {
	runner := NewRunner(logger.GetLogger())
	cascadeRan := false
	runner.Register(EntityProject, CascadeRule{
		Child: "tasks",
		Action: func(parentID uuid.UUID) error {
			cascadeRan = true
			return nil
		},
	})

	primaryErr := errors.New("write failed")
	err := runner.Deactivate(EntityProject, uuid.New(), func() error {
		return primaryErr
	})

	assert.ErrorIs(t, err, primaryErr)
	assert.False(t, cascadeRan)
	assert.NotEqual(t, apperrors.KindPartialFailure, apperrors.KindOf(err))
}

func Test_Deactivate_CascadeFails_ReturnsPartialFailure(t *testing.T) {
	runner := NewRunner(logger.GetLogger())
	runner.Register(EntitySprint, CascadeRule{
		Child: "tasks",
		Action: func(parentID uuid.UUID) error {
			return errors.New("detach failed")
		},
	})

	primaryRan := false
	err := runner.Deactivate(EntitySprint, uuid.New(), func() error {
		primaryRan = true
		return nil
	})

	assert.True(t, primaryRan)
	assert.Equal(t, apperrors.KindPartialFailure, apperrors.KindOf(err))
}

func Test_Deactivate_AllRulesRun_InRegistrationOrder(t *testing.T) {
	runner := NewRunner(logger.GetLogger())
	var order []string

	runner.Register(EntityProject, CascadeRule{
		Child:  "tasks",
		Action: func(uuid.UUID) error { order = append(order, "tasks"); return nil },
	})
	runner.Register(EntityProject, CascadeRule{
		Child:  "sprints",
		Action: func(uuid.UUID) error { order = append(order, "sprints"); return nil },
	})

	err := runner.Deactivate(EntityProject, uuid.New(), func() error {
		order = append(order, "primary")
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"primary", "tasks", "sprints"}, order)
}

func Test_Deactivate_NoRules_OnlyPrimaryRuns(t *testing.T) {
	runner := NewRunner(logger.GetLogger())

	ran := false
	err := runner.Deactivate(EntityProject, uuid.New(), func() error {
		ran = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, ran)
}
