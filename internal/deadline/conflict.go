package deadline

import (
	"sort"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
)

// Conflict is a pile-up of tasks for one user on one calendar day.
type Conflict struct {
	UserID uint
	Day    time.Time // UTC midnight
	Tasks  []models.Task
}

// DetectConflicts groups upcoming tasks by (recipient, calendar day of due
// date) and returns the groups holding more than threshold tasks. One Conflict
// covers the whole day, never one per task. Output order is deterministic:
// by user, then day.
func DetectConflicts(tasks []models.Task, now time.Time, horizon time.Duration, threshold int) []Conflict {
	type groupKey struct {
		userID uint
		day    time.Time
	}

	groups := make(map[groupKey][]models.Task)
	limit := now.Add(horizon)

	for _, t := range tasks {
		if !taskActionable(t) {
			continue
		}

		due := *t.DueDate

		if due.Before(now) || due.After(limit) {
			continue
		}

		day := startOfDay(due)

		for _, userID := range TaskRecipients(t) {
			key := groupKey{userID: userID, day: day}
			groups[key] = append(groups[key], t)
		}
	}

	var conflicts []Conflict

	for key, grouped := range groups {
		if len(grouped) <= threshold {
			continue
		}

		conflicts = append(conflicts, Conflict{
			UserID: key.userID,
			Day:    key.day,
			Tasks:  grouped,
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].UserID != conflicts[j].UserID {
			return conflicts[i].UserID < conflicts[j].UserID
		}
		return conflicts[i].Day.Before(conflicts[j].Day)
	})

	return conflicts
}

// startOfDay truncates to the UTC calendar day, which is also the grouping and
// dedup granularity for conflicts.
func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}
