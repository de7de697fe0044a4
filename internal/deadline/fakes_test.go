package deadline

import (
	"context"
	"sync"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
)

// fakeStore serves canned slices; per-user filtering is the collector's job,
// so the fake returns everything and lets the predicates do the work.
type fakeStore struct {
	tasks      []models.Task
	projects   []models.Project
	milestones []models.Milestone
	campaigns  []models.Campaign

	tasksErr      error
	projectsErr   error
	milestonesErr error
	campaignsErr  error
}

func (f *fakeStore) TasksByAssignee(ctx context.Context, userID uint) ([]models.Task, error) {
	return f.tasks, f.tasksErr
}

func (f *fakeStore) ProjectsByAssignee(ctx context.Context, userID uint) ([]models.Project, error) {
	return f.projects, f.projectsErr
}

func (f *fakeStore) CampaignsByOwner(ctx context.Context, userID uint) ([]models.Campaign, error) {
	return f.campaigns, f.campaignsErr
}

func (f *fakeStore) MilestonesByProjectIDs(ctx context.Context, projectIDs []uint) ([]models.Milestone, error) {
	return f.milestones, f.milestonesErr
}

func (f *fakeStore) ActionableTasks(ctx context.Context) ([]models.Task, error) {
	return f.tasks, f.tasksErr
}

func (f *fakeStore) ActionableProjects(ctx context.Context) ([]models.Project, error) {
	return f.projects, f.projectsErr
}

// fakeLog is an in-memory NotificationLog with the same dedup uniqueness the
// real index enforces. failKeys simulates persistence failures per dedup key.
type fakeLog struct {
	mu       sync.Mutex
	records  []models.Notification
	failKeys map[string]error
	nextID   uint
}

func newFakeLog() *fakeLog {
	return &fakeLog{failKeys: make(map[string]error)}
}

func (l *fakeLog) Create(ctx context.Context, n *models.Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err, ok := l.failKeys[n.DedupKey]; ok {
		return err
	}

	for _, existing := range l.records {
		if existing.UserID == n.UserID && existing.Type == n.Type &&
			existing.DedupKey == n.DedupKey && existing.DedupBucket == n.DedupBucket {
			return ErrDuplicateNotification
		}
	}

	l.nextID++
	n.ID = l.nextID
	l.records = append(l.records, *n)

	return nil
}

func (l *fakeLog) FindRecent(ctx context.Context, userID uint, notificationType, dedupKey string, since time.Time) ([]models.Notification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Notification

	for _, n := range l.records {
		if n.UserID == userID && n.Type == notificationType && n.DedupKey == dedupKey && n.CreatedAt.After(since) {
			out = append(out, n)
		}
	}

	return out, nil
}

func (l *fakeLog) byType(notificationType string) []models.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []models.Notification

	for _, n := range l.records {
		if n.Type == notificationType {
			out = append(out, n)
		}
	}

	return out
}

func (l *fakeLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}

// Builders

func uintPtr(u uint) *uint { return &u }

func newTask(id uint, title string, due time.Time, status string, legacyAssignee *uint, assignees ...uint) models.Task {
	t := models.Task{
		Title:      title,
		Priority:   "medium",
		Status:     status,
		DueDate:    &due,
		AssigneeID: legacyAssignee,
	}
	t.ID = id

	for _, userID := range assignees {
		t.Assignees = append(t.Assignees, models.TaskAssignee{TaskID: id, UserID: userID})
	}

	return t
}

func newProject(id uint, name string, deadline time.Time, assignees ...uint) models.Project {
	p := models.Project{
		Name:     name,
		Deadline: &deadline,
	}
	p.ID = id

	for _, userID := range assignees {
		p.Assignments = append(p.Assignments, models.ProjectAssignment{ProjectID: id, UserID: userID})
	}

	return p
}

func newMilestone(projectID uint, status string) models.Milestone {
	return models.Milestone{ProjectID: projectID, Status: status}
}

func newCampaign(id uint, name string, start time.Time, status string, ongoing bool, userID uint) models.Campaign {
	c := models.Campaign{
		Name:      name,
		Status:    status,
		StartDate: &start,
		IsOngoing: ongoing,
		UserID:    userID,
	}
	c.ID = id

	return c
}
