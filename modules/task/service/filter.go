package service

import (
	"campusflow/core/constants"
	"campusflow/modules/task/dto"
	"campusflow/modules/task/entity"
	"math"
	"time"
)

const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusOverdue   = "overdue"
	StatusToday     = "today"
	StatusWeek      = "week"

	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

// StartOfDay is midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func matchesStatus(t *entity.Task, status string, now, today time.Time) bool {
	switch status {
	case "", StatusAll:
		return true
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	case StatusOverdue:
		return !t.Completed && t.DueAt.Before(now)
	case StatusToday:
		return !t.Completed && !t.DueAt.Before(today) && t.DueAt.Before(today.AddDate(0, 0, 1))
	case StatusWeek:
		return !t.Completed && t.DueAt.Before(now.AddDate(0, 0, 7))
	}
	return false
}

func matchesRange(t *entity.Task, rng string, today time.Time) bool {
	var days int
	switch rng {
	case "":
		return true
	case RangeToday:
		days = 1
	case RangeWeek:
		days = 7
	case RangeMonth:
		days = 30
	default:
		return false
	}
	return !t.DueAt.Before(today) && t.DueAt.Before(today.AddDate(0, 0, days))
}

// Filter applies every criterion in one pass. Input order (due_at asc) is preserved.
func Filter(tasks []entity.Task, f dto.TaskFilter, now time.Time, loc *time.Location) []entity.Task {
	today := StartOfDay(now, loc)
	out := make([]entity.Task, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if !matchesStatus(t, f.Status, now, today) {
			continue
		}
		if f.Course != "" && t.Course != f.Course {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if !matchesRange(t, f.Range, today) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// Upcoming is the dashboard slice: incomplete work due between today and the end of today+3.
func Upcoming(tasks []entity.Task, now time.Time, loc *time.Location) []entity.Task {
	from := StartOfDay(now, loc)
	to := from.AddDate(0, 0, constants.UpcomingWindowDays+1)
	out := make([]entity.Task, 0, constants.UpcomingLimit)
	for _, t := range tasks {
		if len(out) == constants.UpcomingLimit {
			break
		}
		if t.Completed || t.DueAt.Before(from) || !t.DueAt.Before(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func Stats(tasks []entity.Task, now time.Time, loc *time.Location) dto.TaskStats {
	today := StartOfDay(now, loc)
	tomorrow := today.AddDate(0, 0, 1)
	var stats dto.TaskStats
	for _, t := range tasks {
		if t.DueAt.Before(today) || !t.DueAt.Before(tomorrow) {
			continue
		}
		stats.Total++
		if t.Completed {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) * 100 / float64(stats.Total)))
	}
	return stats
}

// ReminderTime is reminder_at if set, else an hour before due. ok is false when that is not in the future.
func ReminderTime(t *entity.Task, now time.Time) (time.Time, bool) {
	at := t.DueAt.Add(-constants.ReminderLeadTime)
	if t.ReminderAt != nil {
		at = *t.ReminderAt
	}
	return at, at.After(now)
}
