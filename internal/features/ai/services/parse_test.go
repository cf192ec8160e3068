package ai_services

import (
	"testing"

	tasks_models "taskhive/internal/features/tasks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseGeneratedTasks_PlainJSONArray(t *testing.T) {
	reply := `[
		{"title": "Set up repo", "description": "init", "priority": "HIGH", "estimatedHours": 2},
		{"title": "Write docs", "priority": "LOW", "estimatedHours": 4}
	]`

	tasks, err := parseGeneratedTasks(reply)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Set up repo", tasks[0].Title)
	assert.Equal(t, tasks_models.TaskPriorityHigh, tasks[0].Priority)
}

func Test_ParseGeneratedTasks_MarkdownFencedReply(t *testing.T) {
	reply := "Here you go:\n```json\n[{\"title\": \"One\", \"priority\": \"MEDIUM\"}]\n```"

	tasks, err := parseGeneratedTasks(reply)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "One", tasks[0].Title)
}

func Test_ParseGeneratedTasks_NormalizesBadFields(t *testing.T) {
	reply := `[
		{"title": "  Valid  ", "priority": "URGENT", "estimatedHours": -3},
		{"title": "   "}
	]`

	tasks, err := parseGeneratedTasks(reply)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Valid", tasks[0].Title)
	assert.Equal(t, tasks_models.TaskPriorityMedium, tasks[0].Priority)
	assert.Equal(t, float64(0), tasks[0].EstimatedHours)
}

func Test_ParseGeneratedTasks_RejectsNonJSON(t *testing.T) {
	_, err := parseGeneratedTasks("I cannot help with that.")
	assert.Error(t, err)
}

func Test_ParsePriority_MapsKnownValues(t *testing.T) {
	cases := map[string]struct {
		priority tasks_models.TaskPriority
		ok       bool
	}{
		"HIGH":                    {tasks_models.TaskPriorityHigh, true},
		"  medium  ":              {tasks_models.TaskPriorityMedium, true},
		"\"LOW\"":                 {tasks_models.TaskPriorityLow, true},
		"Priority: HIGH.":         {tasks_models.TaskPriorityHigh, true},
		"somewhere in the middle": {"", false},
	}

	for input, expected := range cases {
		priority, ok := parsePriority(input)
		assert.Equal(t, expected.ok, ok, "input %q", input)
		if expected.ok {
			assert.Equal(t, expected.priority, priority, "input %q", input)
		}
	}
}

func Test_ParseSprintPlan_ValidPayload(t *testing.T) {
	reply := "```json\n{\"name\": \"Sprint 1\", \"goal\": \"Ship login\", " +
		"\"tasks\": [{\"title\": \"Login form\", \"priority\": \"HIGH\"}]}\n```"

	plan, err := parseSprintPlan(reply)

	require.NoError(t, err)
	assert.Equal(t, "Sprint 1", plan.Name)
	assert.Equal(t, "Ship login", plan.Goal)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, tasks_models.TaskPriorityHigh, plan.Tasks[0].Priority)
}

func Test_ParseSprintPlan_MissingNameFails(t *testing.T) {
	_, err := parseSprintPlan(`{"goal": "x", "tasks": []}`)
	assert.Error(t, err)
}

func Test_ParseIssues_ValidPayload(t *testing.T) {
	issues, err := parseIssues(`["Task X is overdue", "", "  3 tasks unassigned  "]`)

	require.NoError(t, err)
	assert.Equal(t, []string{"Task X is overdue", "3 tasks unassigned"}, issues)
}

func Test_ParseIssues_EmptyList(t *testing.T) {
	issues, err := parseIssues("[]")

	require.NoError(t, err)
	assert.Empty(t, issues)
}
