package deadline

import (
	"testing"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"github.com/pulsecrm-dev/pulsecrm/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDetectConflictsThreshold(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	two := []models.Task{
		newTask(1, "A", day.Add(9*time.Hour), types.TaskStatusTodo, uintPtr(2)),
		newTask(2, "B", day.Add(14*time.Hour), types.TaskStatusTodo, uintPtr(2)),
	}

	assert.Empty(t, DetectConflicts(two, now, 7*24*time.Hour, 2))

	three := append(two, newTask(3, "C", day.Add(18*time.Hour), types.TaskStatusTodo, uintPtr(2)))

	conflicts := DetectConflicts(three, now, 7*24*time.Hour, 2)

	assert.Len(t, conflicts, 1)
	assert.Equal(t, uint(2), conflicts[0].UserID)
	assert.Equal(t, day, conflicts[0].Day)
	assert.Len(t, conflicts[0].Tasks, 3)
}

func TestDetectConflictsGroupsByCalendarDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	// Three tasks inside the horizon but spread over two days: no group
	// crosses the threshold.
	tasks := []models.Task{
		newTask(1, "A", time.Date(2024, 6, 12, 23, 0, 0, 0, time.UTC), types.TaskStatusTodo, uintPtr(2)),
		newTask(2, "B", time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC), types.TaskStatusTodo, uintPtr(2)),
		newTask(3, "C", time.Date(2024, 6, 13, 1, 0, 0, 0, time.UTC), types.TaskStatusTodo, uintPtr(2)),
	}

	assert.Empty(t, DetectConflicts(tasks, now, 7*24*time.Hour, 2))
}

func TestDetectConflictsGroupsPerRecipient(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	day := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

	// Three tasks on the day for user 2; user 3 shares only one of them.
	tasks := []models.Task{
		newTask(1, "A", day, types.TaskStatusTodo, uintPtr(2)),
		newTask(2, "B", day, types.TaskStatusTodo, uintPtr(2), 3),
		newTask(3, "C", day, types.TaskStatusTodo, nil, 2),
	}

	conflicts := DetectConflicts(tasks, now, 7*24*time.Hour, 2)

	assert.Len(t, conflicts, 1)
	assert.Equal(t, uint(2), conflicts[0].UserID)
}

func TestDetectConflictsSkipsOutsideHorizonAndCompleted(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	day := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		newTask(1, "A", day, types.TaskStatusTodo, uintPtr(2)),
		newTask(2, "B", day, types.TaskStatusTodo, uintPtr(2)),
		newTask(3, "Done", day, types.TaskStatusCompleted, uintPtr(2)),
		newTask(4, "Past", now.AddDate(0, 0, -1), types.TaskStatusTodo, uintPtr(2)),
		newTask(5, "Far", now.AddDate(0, 0, 20), types.TaskStatusTodo, uintPtr(2)),
	}

	assert.Empty(t, DetectConflicts(tasks, now, 7*24*time.Hour, 2))
}

func TestDetectConflictsThresholdBoundary(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	day := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		newTask(1, "A", day, types.TaskStatusTodo, uintPtr(2)),
		newTask(2, "B", day, types.TaskStatusTodo, uintPtr(2)),
	}

	// Tightening the threshold to 1 makes the same pair a conflict.
	conflicts := DetectConflicts(tasks, now, 7*24*time.Hour, 1)

	assert.Len(t, conflicts, 1)
	assert.Len(t, conflicts[0].Tasks, 2)
}
