package deadline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"github.com/pulsecrm-dev/pulsecrm/internal/types"
	"gorm.io/datatypes"
)

// SweepReport counts what a sweep looked at, not what it managed to persist;
// partial failures stay visible without aborting anything.
type SweepReport struct {
	TasksChecked        int `json:"tasks_checked"`
	OverdueTasksChecked int `json:"overdue_tasks_checked"`
	ProjectsChecked     int `json:"projects_checked"`
	ConflictsChecked    int `json:"conflicts_checked"`
	Emitted             int `json:"emitted"`
	Suppressed          int `json:"suppressed"`
}

// Engine runs the notification rules over a snapshot of the actionable work
// items. It keeps no state between sweeps except the notification log itself,
// so RunSweep is safe to invoke at any frequency.
type Engine struct {
	store         WorkItemStore
	notifications NotificationLog
	cfg           Config
	onEmit        func(userID uint)
}

func NewEngine(store WorkItemStore, notifications NotificationLog, cfg Config) *Engine {
	return &Engine{
		store:         store,
		notifications: notifications,
		cfg:           cfg,
	}
}

// OnEmit registers a hook invoked after each persisted notification, outside
// any lock. Used to push live refresh events to connected clients.
func (e *Engine) OnEmit(fn func(userID uint)) {
	e.onEmit = fn
}

// emission is one (rule, item, recipient) tuple ready to be deduped and
// persisted.
type emission struct {
	userID     uint
	typ        string
	entityType string
	entityID   *uint
	title      string
	message    string
	dedupKey   string
	meta       datatypes.JSON
}

// RunSweep evaluates all rules as of now. A failed fetch disables only the
// rules that need it; the rest of the sweep proceeds and the error is returned
// for logging alongside the report.
func (e *Engine) RunSweep(ctx context.Context, now time.Time) (SweepReport, error) {
	var report SweepReport
	var emissions []emission
	var sweepErr error

	tasks, err := e.store.ActionableTasks(ctx)

	if err != nil {
		log.Printf("Sweep: failed to load tasks, skipping task rules: %v", err)
		sweepErr = err
		tasks = nil
	}

	// Due-soon tasks
	dueLimit := now.Add(e.cfg.DueSoonWindow)

	for _, t := range tasks {
		if !taskActionable(t) {
			continue
		}

		due := *t.DueDate

		if due.Before(now) || due.After(dueLimit) {
			continue
		}

		for _, userID := range TaskRecipients(t) {
			report.TasksChecked++
			emissions = append(emissions, dueSoonEmission(t, userID, now))
		}
	}

	// Overdue tasks
	for _, t := range tasks {
		if !taskActionable(t) || !t.DueDate.Before(now) {
			continue
		}

		for _, userID := range TaskRecipients(t) {
			report.OverdueTasksChecked++
			emissions = append(emissions, overdueEmission(t, userID, now))
		}
	}

	// Project deadlines
	projects, err := e.store.ActionableProjects(ctx)

	if err != nil {
		log.Printf("Sweep: failed to load projects, skipping project rule: %v", err)
		sweepErr = errors.Join(sweepErr, err)
		projects = nil
	}

	if len(projects) > 0 {
		milestones, err := e.store.MilestonesByProjectIDs(ctx, projectIDs(projects))

		if err != nil {
			log.Printf("Sweep: failed to load milestones, skipping project rule: %v", err)
			sweepErr = errors.Join(sweepErr, err)
		} else {
			projectLimit := now.Add(e.cfg.ProjectWindow)

			for _, p := range ResolveOpen(projects, milestones) {
				if !projectTracked(p) {
					continue
				}

				deadline := *p.Deadline

				if deadline.Before(now) || deadline.After(projectLimit) {
					continue
				}

				for _, userID := range ProjectRecipients(p) {
					report.ProjectsChecked++
					emissions = append(emissions, projectEmission(p, userID, now))
				}
			}
		}
	}

	// Same-day conflicts
	for _, c := range DetectConflicts(tasks, now, e.cfg.ConflictWindow, e.cfg.ConflictThreshold) {
		report.ConflictsChecked++
		emissions = append(emissions, conflictEmission(c))
	}

	e.dispatch(ctx, emissions, now, &report)

	return report, sweepErr
}

const (
	emitPersisted = iota
	emitSuppressed
	emitFailed
)

// dispatch fans the emissions out to a bounded worker pool. Tuples are
// independent: dedup keys are distinct per tuple and the storage index covers
// races with concurrent sweeps.
func (e *Engine) dispatch(ctx context.Context, emissions []emission, now time.Time, report *SweepReport) {
	if len(emissions) == 0 {
		return
	}

	workers := e.cfg.Workers

	if workers < 1 {
		workers = 1
	}

	queue := make(chan emission)

	go func() {
		defer close(queue)

		for _, em := range emissions {
			select {
			case queue <- em:
			case <-ctx.Done():
				// Leftover tuples are picked up by the next sweep.
				return
			}
		}
	}()

	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for em := range queue {
				outcome := e.emitOne(ctx, em, now)

				mu.Lock()
				switch outcome {
				case emitPersisted:
					report.Emitted++
				case emitSuppressed:
					report.Suppressed++
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
}

// emitOne applies the dedup contract for a single tuple: look for a record with
// the same (user, type, key) inside the dedup window, create one if absent.
// Failures are logged and swallowed so one bad tuple never aborts the sweep.
func (e *Engine) emitOne(ctx context.Context, em emission, now time.Time) int {
	since := now.Add(-e.cfg.DedupWindow)

	recent, err := e.notifications.FindRecent(ctx, em.userID, em.typ, em.dedupKey, since)

	if err != nil {
		log.Printf("Sweep: dedup lookup failed for user %d key %s: %v", em.userID, em.dedupKey, err)
		return emitFailed
	}

	if len(recent) > 0 {
		return emitSuppressed
	}

	notification := &models.Notification{
		UserID:      em.userID,
		Type:        em.typ,
		EntityType:  em.entityType,
		EntityID:    em.entityID,
		Title:       em.title,
		Message:     em.message,
		Meta:        em.meta,
		DedupKey:    em.dedupKey,
		DedupBucket: startOfDay(now).Format("2006-01-02"),
	}
	notification.CreatedAt = now

	if err := e.notifications.Create(ctx, notification); err != nil {
		if errors.Is(err, ErrDuplicateNotification) {
			// Lost a check-then-insert race with a concurrent sweep.
			return emitSuppressed
		}

		log.Printf("Sweep: failed to persist notification for user %d key %s: %v", em.userID, em.dedupKey, err)
		return emitFailed
	}

	if e.onEmit != nil {
		e.onEmit(em.userID)
	}

	return emitPersisted
}

func dueSoonEmission(t models.Task, userID uint, now time.Time) emission {
	days := daysBetween(now, *t.DueDate)

	var message string

	if days == 0 {
		message = fmt.Sprintf("%q is due today", t.Title)
	} else {
		message = fmt.Sprintf("%q is due in %d day(s)", t.Title, days)
	}

	entityID := t.ID
	meta, _ := json.Marshal(map[string]interface{}{"days_until_due": days})

	return emission{
		userID:     userID,
		typ:        types.NotificationTaskDueSoon,
		entityType: types.EntityTypeTask,
		entityID:   &entityID,
		title:      "Task due soon",
		message:    message,
		dedupKey:   entityDedupKey(types.EntityTypeTask, t.ID),
		meta:       datatypes.JSON(meta),
	}
}

func overdueEmission(t models.Task, userID uint, now time.Time) emission {
	days := daysBetween(*t.DueDate, now)
	entityID := t.ID
	meta, _ := json.Marshal(map[string]interface{}{"days_overdue": days})

	return emission{
		userID:     userID,
		typ:        types.NotificationTaskOverdue,
		entityType: types.EntityTypeTask,
		entityID:   &entityID,
		title:      "Task overdue",
		message:    fmt.Sprintf("%q is %d day(s) overdue", t.Title, days),
		dedupKey:   entityDedupKey(types.EntityTypeTask, t.ID),
		meta:       datatypes.JSON(meta),
	}
}

func projectEmission(p models.Project, userID uint, now time.Time) emission {
	days := daysBetween(now, *p.Deadline)

	var message string

	if days == 0 {
		message = fmt.Sprintf("Project %q deadline is today", p.Name)
	} else {
		message = fmt.Sprintf("Project %q deadline is in %d day(s)", p.Name, days)
	}

	entityID := p.ID
	meta, _ := json.Marshal(map[string]interface{}{"days_until_deadline": days})

	return emission{
		userID:     userID,
		typ:        types.NotificationProjectDeadline,
		entityType: types.EntityTypeProject,
		entityID:   &entityID,
		title:      "Project deadline approaching",
		message:    message,
		dedupKey:   entityDedupKey(types.EntityTypeProject, p.ID),
		meta:       datatypes.JSON(meta),
	}
}

// conflictEmission produces one notification for the whole day. The dedup key
// is the structured (type, day) pair, so adding a task to an already-reported
// day stays silent until the window expires.
func conflictEmission(c Conflict) emission {
	titles := make([]string, 0, len(c.Tasks))

	for _, t := range c.Tasks {
		titles = append(titles, t.Title)
	}

	day := c.Day.Format("2006-01-02")
	meta, _ := json.Marshal(map[string]interface{}{"day": day, "titles": titles})

	return emission{
		userID:   c.UserID,
		typ:      types.NotificationDeadlineConflict,
		title:    "Deadline conflict",
		message:  fmt.Sprintf("You have %d tasks due on %s: %s", len(c.Tasks), day, strings.Join(titles, ", ")),
		dedupKey: "conflict:" + day,
		meta:     datatypes.JSON(meta),
	}
}

func entityDedupKey(entityType string, id uint) string {
	return fmt.Sprintf("%s:%d", entityType, id)
}
