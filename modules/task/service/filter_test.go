package service

import (
	"campusflow/modules/task/dto"
	"campusflow/modules/task/entity"
	"testing"
	"time"
	_ "time/tzdata"
)

var london, _ = time.LoadLocation("Europe/London")

func task(title string, due time.Time, completed bool) entity.Task {
	return entity.Task{Title: title, DueAt: due, Completed: completed, Priority: entity.PriorityMed, Course: "CS101"}
}

func titles(tasks []entity.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	tasks := []entity.Task{
		task("overdue", now.Add(-26*time.Hour), false),
		task("done-earlier", now.Add(-2*time.Hour), true),
		task("later-today", now.Add(3*time.Hour), false),
		task("in-five-days", now.Add(5*24*time.Hour), false),
		task("next-month", now.Add(40*24*time.Hour), false),
	}

	tests := []struct {
		status string
		want   []string
	}{
		{"all", []string{"overdue", "done-earlier", "later-today", "in-five-days", "next-month"}},
		{"", []string{"overdue", "done-earlier", "later-today", "in-five-days", "next-month"}},
		{"active", []string{"overdue", "later-today", "in-five-days", "next-month"}},
		{"completed", []string{"done-earlier"}},
		{"overdue", []string{"overdue"}},
		{"today", []string{"later-today"}},
		{"week", []string{"overdue", "later-today", "in-five-days"}},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := titles(Filter(tasks, dto.TaskFilter{Status: tt.status}, now, time.UTC))
			if !equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestFilterTodayUsesAppTimezone(t *testing.T) {
	// 23:30 UTC on 1 July is already 2 July in London (BST).
	now := time.Date(2026, 7, 1, 23, 30, 0, 0, time.UTC)
	tasks := []entity.Task{
		task("utc-evening", time.Date(2026, 7, 1, 22, 0, 0, 0, time.UTC), false),
		task("london-morning", time.Date(2026, 7, 2, 8, 0, 0, 0, time.UTC), false),
	}
	got := titles(Filter(tasks, dto.TaskFilter{Status: StatusToday}, now, london))
	if !equal(got, []string{"london-morning"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilterCombinesCriteria(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	a := task("a", now.Add(time.Hour), false)
	b := task("b", now.Add(2*time.Hour), false)
	b.Course = "MA201"
	c := task("c", now.Add(3*time.Hour), false)
	c.Priority = entity.PriorityHigh
	d := task("d", now.Add(10*24*time.Hour), false)

	got := titles(Filter([]entity.Task{a, b, c, d}, dto.TaskFilter{Status: StatusActive, Course: "CS101", Range: RangeWeek}, now, time.UTC))
	if !equal(got, []string{"a", "c"}) {
		t.Errorf("course+range got %v", got)
	}
	got = titles(Filter([]entity.Task{a, b, c, d}, dto.TaskFilter{Priority: entity.PriorityHigh}, now, time.UTC))
	if !equal(got, []string{"c"}) {
		t.Errorf("priority got %v", got)
	}
	got = titles(Filter([]entity.Task{a, b, c, d}, dto.TaskFilter{Range: RangeMonth}, now, time.UTC))
	if len(got) != 4 {
		t.Errorf("month got %v", got)
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var tasks []entity.Task
	tasks = append(tasks, task("yesterday", now.Add(-24*time.Hour), false))
	tasks = append(tasks, task("this-morning", now.Add(-3*time.Hour), false))
	tasks = append(tasks, task("done", now.Add(time.Hour), true))
	for i := 1; i <= 6; i++ {
		tasks = append(tasks, task(string(rune('a'+i)), now.Add(time.Duration(i)*time.Hour), false))
	}
	tasks = append(tasks, task("day-four-end", time.Date(2026, 3, 13, 23, 59, 0, 0, time.UTC), false))

	got := Upcoming(tasks, now, time.UTC)
	if len(got) != 5 {
		t.Fatalf("want 5, got %d: %v", len(got), titles(got))
	}
	if got[0].Title != "this-morning" {
		t.Errorf("window should start at the beginning of today, got %v", titles(got))
	}

	late := Upcoming([]entity.Task{
		task("edge", time.Date(2026, 3, 13, 23, 59, 0, 0, time.UTC), false),
		task("out", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), false),
	}, now, time.UTC)
	if !equal(titles(late), []string{"edge"}) {
		t.Errorf("window end got %v", titles(late))
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		tasks []entity.Task
		want  dto.TaskStats
	}{
		{"empty", nil, dto.TaskStats{}},
		{
			"one of three",
			[]entity.Task{
				task("a", now.Add(time.Hour), true),
				task("b", now.Add(2*time.Hour), false),
				task("c", now.Add(3*time.Hour), false),
				task("tomorrow", now.Add(24*time.Hour), true),
			},
			dto.TaskStats{Completed: 1, Total: 3, CompletionRate: 33},
		},
		{
			"two of three rounds up",
			[]entity.Task{
				task("a", now.Add(time.Hour), true),
				task("b", now.Add(2*time.Hour), true),
				task("c", now.Add(3*time.Hour), false),
			},
			dto.TaskStats{Completed: 2, Total: 3, CompletionRate: 67},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stats(tt.tasks, now, time.UTC); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReminderTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	explicit := now.Add(30 * time.Minute)
	past := now.Add(-time.Minute)

	tests := []struct {
		name   string
		task   entity.Task
		wantAt time.Time
		wantOK bool
	}{
		{"due minus an hour", entity.Task{DueAt: now.Add(3 * time.Hour)}, now.Add(2 * time.Hour), true},
		{"explicit reminder", entity.Task{DueAt: now.Add(3 * time.Hour), ReminderAt: &explicit}, explicit, true},
		{"past reminder skipped", entity.Task{DueAt: now.Add(3 * time.Hour), ReminderAt: &past}, past, false},
		{"due within the hour", entity.Task{DueAt: now.Add(30 * time.Minute)}, now.Add(-30 * time.Minute), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, ok := ReminderTime(&tt.task, now)
			if !at.Equal(tt.wantAt) || ok != tt.wantOK {
				t.Errorf("got (%v, %v), want (%v, %v)", at, ok, tt.wantAt, tt.wantOK)
			}
		})
	}
}
