package deadline

import (
	"context"
	"testing"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"github.com/pulsecrm-dev/pulsecrm/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweepNow = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func newTestEngine(store *fakeStore, log *fakeLog) *Engine {
	return NewEngine(store, log, DefaultConfig())
}

func TestSweepDueTodayAndIdempotence(t *testing.T) {
	// Due later the same day, so it is still "due today" on the re-run below.
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "Task A", sweepNow.Add(18*time.Hour), types.TaskStatusTodo, uintPtr(1)),
	}}
	log := newFakeLog()
	engine := newTestEngine(store, log)

	report, err := engine.RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, report.TasksChecked)
	assert.Equal(t, 1, report.Emitted)

	records := log.byType(types.NotificationTaskDueSoon)
	require.Len(t, records, 1)
	assert.Equal(t, uint(1), records[0].UserID)
	assert.Equal(t, `"Task A" is due today`, records[0].Message)
	assert.Equal(t, types.EntityTypeTask, records[0].EntityType)
	require.NotNil(t, records[0].EntityID)
	assert.Equal(t, uint(1), *records[0].EntityID)

	// Second sweep within the dedup window changes nothing.
	before := log.count()
	report2, err := engine.RunSweep(context.Background(), sweepNow.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, before, log.count())
	assert.Equal(t, 0, report2.Emitted)
	assert.Equal(t, 1, report2.Suppressed)
}

func TestSweepOverdueTask(t *testing.T) {
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "Task B", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), types.TaskStatusInProgress, uintPtr(1)),
	}}
	log := newFakeLog()

	report, err := newTestEngine(store, log).RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 0, report.TasksChecked)
	assert.Equal(t, 1, report.OverdueTasksChecked)

	records := log.byType(types.NotificationTaskOverdue)
	require.Len(t, records, 1)
	assert.Equal(t, `"Task B" is 5 day(s) overdue`, records[0].Message)
}

func TestSweepConflictEmitsOneNotification(t *testing.T) {
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "Task C", day.Add(9*time.Hour), types.TaskStatusTodo, uintPtr(2)),
		newTask(2, "Task D", day.Add(13*time.Hour), types.TaskStatusTodo, uintPtr(2)),
		newTask(3, "Task E", day.Add(17*time.Hour), types.TaskStatusTodo, uintPtr(2)),
	}}
	log := newFakeLog()

	report, err := newTestEngine(store, log).RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, report.ConflictsChecked)

	conflicts := log.byType(types.NotificationDeadlineConflict)
	require.Len(t, conflicts, 1)
	assert.Equal(t, uint(2), conflicts[0].UserID)
	assert.Contains(t, conflicts[0].Message, "Task C")
	assert.Contains(t, conflicts[0].Message, "Task D")
	assert.Contains(t, conflicts[0].Message, "Task E")
	assert.Contains(t, conflicts[0].Message, "2024-06-12")
	assert.Equal(t, "conflict:2024-06-12", conflicts[0].DedupKey)

	// The trio is also individually due soon; the conflict itself stays one row.
	assert.Len(t, log.byType(types.NotificationTaskDueSoon), 3)
}

func TestSweepConflictFirstDetectionWins(t *testing.T) {
	day := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "Task C", day, types.TaskStatusTodo, uintPtr(2)),
		newTask(2, "Task D", day, types.TaskStatusTodo, uintPtr(2)),
		newTask(3, "Task E", day, types.TaskStatusTodo, uintPtr(2)),
	}}
	log := newFakeLog()
	engine := newTestEngine(store, log)

	_, err := engine.RunSweep(context.Background(), sweepNow)
	require.NoError(t, err)
	require.Len(t, log.byType(types.NotificationDeadlineConflict), 1)

	// A fourth task lands on the already-reported day.
	store.tasks = append(store.tasks, newTask(4, "Task F", day, types.TaskStatusTodo, uintPtr(2)))

	_, err = engine.RunSweep(context.Background(), sweepNow.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Len(t, log.byType(types.NotificationDeadlineConflict), 1)
}

func TestSweepRecipientDedup(t *testing.T) {
	// User 1 is both the legacy assignee and in the assignee relation.
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "Shared task", sweepNow.AddDate(0, 0, 1), types.TaskStatusTodo, uintPtr(1), 1),
	}}
	log := newFakeLog()

	report, err := newTestEngine(store, log).RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, report.TasksChecked)
	assert.Len(t, log.byType(types.NotificationTaskDueSoon), 1)
}

func TestSweepProjectRule(t *testing.T) {
	soon := sweepNow.AddDate(0, 0, 5)
	far := sweepNow.AddDate(0, 0, 10)

	store := &fakeStore{
		projects: []models.Project{
			newProject(1, "Website relaunch", soon, 3, 4),
			newProject(2, "Finished engagement", soon, 3),
			newProject(3, "Next quarter", far, 3),
		},
		milestones: []models.Milestone{
			newMilestone(2, types.MilestoneStatusCompleted),
		},
	}
	log := newFakeLog()

	report, err := newTestEngine(store, log).RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 2, report.ProjectsChecked) // one per assignee of project 1

	records := log.byType(types.NotificationProjectDeadline)
	require.Len(t, records, 2)

	recipients := []uint{records[0].UserID, records[1].UserID}
	assert.ElementsMatch(t, []uint{3, 4}, recipients)
	assert.Contains(t, records[0].Message, "Website relaunch")
}

func TestSweepFailureIsolation(t *testing.T) {
	due := sweepNow.AddDate(0, 0, 1)
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "First", due, types.TaskStatusTodo, uintPtr(1)),
		newTask(2, "Broken", due, types.TaskStatusTodo, uintPtr(2)),
		newTask(3, "Third", due, types.TaskStatusTodo, uintPtr(3)),
	}}
	log := newFakeLog()
	log.failKeys["task:2"] = assert.AnError

	report, err := newTestEngine(store, log).RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 3, report.TasksChecked)
	assert.Equal(t, 2, report.Emitted)
	assert.Len(t, log.byType(types.NotificationTaskDueSoon), 2)
}

func TestSweepTaskFetchFailureStillRunsProjectRule(t *testing.T) {
	store := &fakeStore{
		tasksErr: assert.AnError,
		projects: []models.Project{
			newProject(1, "Website relaunch", sweepNow.AddDate(0, 0, 3), 3),
		},
	}
	log := newFakeLog()

	report, err := newTestEngine(store, log).RunSweep(context.Background(), sweepNow)

	assert.Error(t, err)
	assert.Equal(t, 0, report.TasksChecked)
	assert.Equal(t, 1, report.ProjectsChecked)
	assert.Len(t, log.byType(types.NotificationProjectDeadline), 1)
}

func TestSweepOverdueRefiresAfterDedupWindow(t *testing.T) {
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "Task B", time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), types.TaskStatusInProgress, uintPtr(1)),
	}}
	log := newFakeLog()
	engine := newTestEngine(store, log)

	_, err := engine.RunSweep(context.Background(), sweepNow)
	require.NoError(t, err)

	// Next day, past the 24h window: the overdue alert fires again.
	_, err = engine.RunSweep(context.Background(), sweepNow.AddDate(0, 0, 1))
	require.NoError(t, err)

	records := log.byType(types.NotificationTaskOverdue)
	require.Len(t, records, 2)
	assert.Equal(t, `"Task B" is 6 day(s) overdue`, records[1].Message)
}

func TestSweepDueSoonWindowBoundary(t *testing.T) {
	cfg := DefaultConfig()

	inside := newTask(1, "At the edge", sweepNow.Add(cfg.DueSoonWindow), types.TaskStatusTodo, uintPtr(1))
	outside := newTask(2, "Past the edge", sweepNow.Add(cfg.DueSoonWindow+time.Millisecond), types.TaskStatusTodo, uintPtr(1))

	store := &fakeStore{tasks: []models.Task{inside, outside}}
	log := newFakeLog()

	report, err := NewEngine(store, log, cfg).RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, report.TasksChecked)

	records := log.byType(types.NotificationTaskDueSoon)
	require.Len(t, records, 1)
	assert.Equal(t, `"At the edge" is due in 3 day(s)`, records[0].Message)
}

func TestSweepDuplicateKeyFromRaceCountsSuppressed(t *testing.T) {
	store := &fakeStore{tasks: []models.Task{
		newTask(1, "Task A", sweepNow, types.TaskStatusTodo, uintPtr(1)),
	}}
	log := newFakeLog()

	// A concurrent sweep already wrote the row for this bucket; FindRecent
	// misses it (outside the rolling window start we pass below), so Create
	// hits the unique constraint.
	seeded := &models.Notification{
		UserID:      1,
		Type:        types.NotificationTaskDueSoon,
		DedupKey:    "task:1",
		DedupBucket: "2024-06-10",
	}
	seeded.CreatedAt = sweepNow.Add(-30 * time.Hour)
	require.NoError(t, log.Create(context.Background(), seeded))

	report, err := newTestEngine(store, log).RunSweep(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Emitted)
	assert.Equal(t, 1, report.Suppressed)
	assert.Equal(t, 1, log.count())
}
