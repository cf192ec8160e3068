package ai_services

import (
	"encoding/json"
	"errors"
	"strings"

	ai_dto "taskhive/internal/features/ai/dto"
	tasks_models "taskhive/internal/features/tasks/models"
)

// extractJSON cuts the outermost JSON value out of a completion reply.
// Providers routinely wrap JSON in markdown fences or prose despite
// instructions not to.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if start := strings.Index(text, "```"); start != -1 {
		rest := text[start+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end != -1 {
			text = strings.TrimSpace(rest[:end])
		}
	}

	for _, opener := range []struct{ open, close string }{
		{"[", "]"},
		{"{", "}"},
	} {
		start := strings.Index(text, opener.open)
		end := strings.LastIndex(text, opener.close)
		if start != -1 && end > start {
			return text[start : end+1]
		}
	}

	return text
}

func parseGeneratedTasks(text string) ([]ai_dto.GeneratedTaskDTO, error) {
	var tasks []ai_dto.GeneratedTaskDTO
	if err := json.Unmarshal([]byte(extractJSON(text)), &tasks); err != nil {
		return nil, errors.New("completion reply is not a task list")
	}

	normalized := make([]ai_dto.GeneratedTaskDTO, 0, len(tasks))
	for _, task := range tasks {
		task.Title = strings.TrimSpace(task.Title)
		if task.Title == "" {
			continue
		}

		if !task.Priority.IsValid() {
			task.Priority = tasks_models.TaskPriorityMedium
		}
		if task.EstimatedHours < 0 {
			task.EstimatedHours = 0
		}

		normalized = append(normalized, task)
	}

	if len(normalized) == 0 {
		return nil, errors.New("completion reply contained no usable tasks")
	}

	return normalized, nil
}

func parsePriority(text string) (tasks_models.TaskPriority, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(text))
	cleaned = strings.Trim(cleaned, "\"'.` ")

	for _, priority := range []tasks_models.TaskPriority{
		tasks_models.TaskPriorityLow,
		tasks_models.TaskPriorityMedium,
		tasks_models.TaskPriorityHigh,
	} {
		if cleaned == string(priority) || strings.Contains(cleaned, string(priority)) {
			return priority, true
		}
	}

	return "", false
}

func parseSprintPlan(text string) (*ai_dto.SprintPlanResponseDTO, error) {
	var plan ai_dto.SprintPlanResponseDTO
	if err := json.Unmarshal([]byte(extractJSON(text)), &plan); err != nil {
		return nil, errors.New("completion reply is not a sprint plan")
	}

	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" {
		return nil, errors.New("completion reply is missing a sprint name")
	}

	normalized := make([]ai_dto.GeneratedTaskDTO, 0, len(plan.Tasks))
	for _, task := range plan.Tasks {
		task.Title = strings.TrimSpace(task.Title)
		if task.Title == "" {
			continue
		}
		if !task.Priority.IsValid() {
			task.Priority = tasks_models.TaskPriorityMedium
		}
		if task.EstimatedHours < 0 {
			task.EstimatedHours = 0
		}
		normalized = append(normalized, task)
	}
	plan.Tasks = normalized

	return &plan, nil
}

func parseIssues(text string) ([]string, error) {
	var issues []string
	if err := json.Unmarshal([]byte(extractJSON(text)), &issues); err != nil {
		return nil, errors.New("completion reply is not an issue list")
	}

	cleaned := make([]string, 0, len(issues))
	for _, issue := range issues {
		issue = strings.TrimSpace(issue)
		if issue != "" {
			cleaned = append(cleaned, issue)
		}
	}

	return cleaned, nil
}
