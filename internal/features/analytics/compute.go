package analytics

import (
	"math"
	"time"

	tasks_models "taskhive/internal/features/tasks/models"

	"github.com/google/uuid"
)

type MemberStats struct {
	UserID         uuid.UUID `json:"userId"`
	TotalTasks     int       `json:"totalTasks"`
	CompletedTasks int       `json:"completedTasks"`
	CompletionRate float64   `json:"completionRate"`
}

type ProjectStats struct {
	TotalTasks          int                               `json:"totalTasks"`
	StatusCounts        map[tasks_models.TaskStatus]int   `json:"statusCounts"`
	PriorityCounts      map[tasks_models.TaskPriority]int `json:"priorityCounts"`
	CompletionRate      float64                           `json:"completionRate"`
	DelayedTasks        int                               `json:"delayedTasks"`
	CompletedLast7Days  int                               `json:"completedLast7Days"`
	CompletedLast30Days int                               `json:"completedLast30Days"`
	MemberStats         []MemberStats                     `json:"memberStats"`
}

// Compute derives all statistics from the task set in one pass. It is
// pure: no storage access, no clock access beyond the now argument, and
// an empty task set yields a zeroed structure rather than an error.
func Compute(tasks []*tasks_models.Task, now time.Time) *ProjectStats {
	stats := &ProjectStats{
		StatusCounts:   make(map[tasks_models.TaskStatus]int),
		PriorityCounts: make(map[tasks_models.TaskPriority]int),
		MemberStats:    []MemberStats{},
	}

	completed := 0
	perMember := make(map[uuid.UUID]*MemberStats)
	memberOrder := []uuid.UUID{}

	for _, task := range tasks {
		stats.TotalTasks++
		stats.StatusCounts[task.Status]++
		stats.PriorityCounts[task.Priority]++

		done := task.Status == tasks_models.TaskStatusDone
		if done {
			completed++

			// The last write to a Done task approximates its
			// completion timestamp.
			age := now.Sub(task.UpdatedAt)
			if age <= 7*24*time.Hour {
				stats.CompletedLast7Days++
			}
			if age <= 30*24*time.Hour {
				stats.CompletedLast30Days++
			}
		}

		if !done && task.DueDate != nil && task.DueDate.Before(now) {
			stats.DelayedTasks++
		}

		if task.AssigneeID != nil {
			member, exists := perMember[*task.AssigneeID]
			if !exists {
				member = &MemberStats{UserID: *task.AssigneeID}
				perMember[*task.AssigneeID] = member
				memberOrder = append(memberOrder, *task.AssigneeID)
			}

			member.TotalTasks++
			if done {
				member.CompletedTasks++
			}
		}
	}

	stats.CompletionRate = completionRate(completed, stats.TotalTasks)

	for _, memberID := range memberOrder {
		member := perMember[memberID]
		member.CompletionRate = completionRate(member.CompletedTasks, member.TotalTasks)
		stats.MemberStats = append(stats.MemberStats, *member)
	}

	return stats
}

func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(100 * float64(completed) / float64(total))
}
