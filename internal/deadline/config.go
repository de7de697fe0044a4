package deadline

import (
	"os"
	"strconv"
	"time"
)

// Config carries the sweep policy knobs. They are injected rather than read
// where they are used so boundary values can be exercised in tests.
type Config struct {
	DueSoonWindow     time.Duration // horizon for "task due soon" alerts
	ProjectWindow     time.Duration // horizon for "project deadline approaching" alerts
	ConflictWindow    time.Duration // horizon over which same-day pile-ups are detected
	ConflictThreshold int           // more than this many tasks on one day is a conflict
	DedupWindow       time.Duration // repeat notifications for the same key are suppressed within it
	Workers           int           // concurrent emission workers per sweep
}

func DefaultConfig() Config {
	return Config{
		DueSoonWindow:     3 * 24 * time.Hour,
		ProjectWindow:     7 * 24 * time.Hour,
		ConflictWindow:    7 * 24 * time.Hour,
		ConflictThreshold: 2,
		DedupWindow:       24 * time.Hour,
		Workers:           4,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by environment variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if days := envInt("DUE_SOON_DAYS"); days > 0 {
		cfg.DueSoonWindow = time.Duration(days) * 24 * time.Hour
	}

	if days := envInt("PROJECT_WINDOW_DAYS"); days > 0 {
		cfg.ProjectWindow = time.Duration(days) * 24 * time.Hour
	}

	if days := envInt("CONFLICT_WINDOW_DAYS"); days > 0 {
		cfg.ConflictWindow = time.Duration(days) * 24 * time.Hour
	}

	if n := envInt("CONFLICT_THRESHOLD"); n > 0 {
		cfg.ConflictThreshold = n
	}

	if hours := envInt("DEDUP_WINDOW_HOURS"); hours > 0 {
		cfg.DedupWindow = time.Duration(hours) * time.Hour
	}

	if n := envInt("SWEEP_WORKERS"); n > 0 {
		cfg.Workers = n
	}

	return cfg
}

func envInt(key string) int {
	value := os.Getenv(key)

	if value == "" {
		return 0
	}

	n, err := strconv.Atoi(value)

	if err != nil {
		return 0
	}

	return n
}
