package catalog

import (
	"context"
	"time"

	domain "github.com/bauxite/backend/internal/domain/shared"
)

// CreationStats summarizes how many rows exist and how recently they
// were added
type CreationStats struct {
	Total            int64 `json:"total"`
	CreatedToday     int64 `json:"created_today"`
	CreatedThisWeek  int64 `json:"created_this_week"`
	CreatedThisMonth int64 `json:"created_this_month"`
}

// SubtypeStats extends CreationStats with per-parent breakdowns
type SubtypeStats struct {
	CreationStats
	ByCategory map[string]int64 `json:"by_category"`
	ByMine     map[string]int64 `json:"by_mine"`
}

// creationCounter is the repository surface creation stats need
type creationCounter interface {
	Count(ctx context.Context, filter domain.Filter) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// collectCreationStats gathers the total plus counts for the current
// day, ISO week, and calendar month
func collectCreationStats(ctx context.Context, repo creationCounter) (CreationStats, error) {
	day, week, month := creationWindows(time.Now())

	var stats CreationStats
	var err error
	if stats.Total, err = repo.Count(ctx, domain.Filter{}); err != nil {
		return CreationStats{}, err
	}
	if stats.CreatedToday, err = repo.CountCreatedSince(ctx, day); err != nil {
		return CreationStats{}, err
	}
	if stats.CreatedThisWeek, err = repo.CountCreatedSince(ctx, week); err != nil {
		return CreationStats{}, err
	}
	if stats.CreatedThisMonth, err = repo.CountCreatedSince(ctx, month); err != nil {
		return CreationStats{}, err
	}
	return stats, nil
}

// creationWindows returns the start of the day, of the ISO week
// (Monday), and of the calendar month containing now
func creationWindows(now time.Time) (day, week, month time.Time) {
	day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week = day.AddDate(0, 0, 1-weekday)
	month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return day, week, month
}
