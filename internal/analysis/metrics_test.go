package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flowloop/momentum-api/internal/models"
)

func taskAt(completed bool, priority models.TaskPriority, updatedAt time.Time) *models.Task {
	return &models.Task{
		ID:        uuid.New(),
		Completed: completed,
		Priority:  priority,
		UpdatedAt: updatedAt,
	}
}

func strPtr(s string) *string { return &s }

func TestDeriveMetrics_CompletedToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

	snapshot := &Snapshot{
		Tasks: []*models.Task{
			taskAt(true, models.TaskPriorityLow, now.Add(-2*time.Hour)),   // today
			taskAt(true, models.TaskPriorityLow, now.Add(-13*time.Hour)),  // yesterday (Aug 30, 01:00)
			taskAt(false, models.TaskPriorityLow, now.Add(-1*time.Hour)),  // pending, ignored
			taskAt(true, models.TaskPriorityHigh, now.Add(-5*time.Minute)), // today
		},
	}

	m := DeriveMetrics(snapshot, now)

	if m.CompletedToday != 2 {
		t.Errorf("CompletedToday = %d, want 2", m.CompletedToday)
	}
}

func TestDeriveMetrics_CompletedToday_CalendarBoundary(t *testing.T) {
	t.Parallel()

	// 00:30 local: a task finished one hour earlier belongs to yesterday
	now := time.Date(2026, 8, 31, 0, 30, 0, 0, time.UTC)

	snapshot := &Snapshot{
		Tasks: []*models.Task{
			taskAt(true, models.TaskPriorityLow, now.Add(-time.Hour)),
		},
	}

	m := DeriveMetrics(snapshot, now)

	if m.CompletedToday != 0 {
		t.Errorf("CompletedToday = %d, want 0 for a pre-midnight completion", m.CompletedToday)
	}
}

func TestDeriveMetrics_PendingHighPriority(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	high := taskAt(false, models.TaskPriorityHigh, now)
	snapshot := &Snapshot{
		Tasks: []*models.Task{
			high,
			taskAt(false, models.TaskPriorityMedium, now),
			taskAt(true, models.TaskPriorityHigh, now), // completed, excluded
		},
	}

	m := DeriveMetrics(snapshot, now)

	if len(m.PendingHighPriority) != 1 || m.PendingHighPriority[0] != high {
		t.Errorf("PendingHighPriority = %v, want only the pending high task", m.PendingHighPriority)
	}
}

func TestDeriveMetrics_RecentMoods(t *testing.T) {
	t.Parallel()

	entries := []*models.JournalEntry{
		{Mood: strPtr("focused")},
		{Mood: nil}, // dropped, window not widened
		{Mood: strPtr("tired")},
		{Mood: strPtr("")}, // dropped
		{Mood: strPtr("calm")},
		{Mood: strPtr("outside-window")}, // sixth entry, outside first 5
	}

	m := DeriveMetrics(&Snapshot{JournalEntries: entries}, time.Now())

	want := []string{"focused", "tired", "calm"}
	if len(m.RecentMoods) != len(want) {
		t.Fatalf("RecentMoods = %v, want %v", m.RecentMoods, want)
	}
	for i, mood := range want {
		if m.RecentMoods[i] != mood {
			t.Errorf("RecentMoods[%d] = %s, want %s", i, m.RecentMoods[i], mood)
		}
	}
}

func TestDeriveMetrics_AvgFocusMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		durations []int
		want      int
	}{
		{name: "no sessions", durations: nil, want: 0},
		{name: "single session", durations: []int{50}, want: 50},
		{name: "rounds half up", durations: []int{25, 30}, want: 28}, // 27.5 -> 28
		{name: "rounds down", durations: []int{25, 25, 26}, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sessions []*models.FocusSession
			for _, d := range tt.durations {
				sessions = append(sessions, &models.FocusSession{DurationMinutes: d})
			}

			m := DeriveMetrics(&Snapshot{FocusSessions: sessions}, time.Now())
			if m.AvgFocusMinutes != tt.want {
				t.Errorf("AvgFocusMinutes = %d, want %d", m.AvgFocusMinutes, tt.want)
			}
		})
	}
}

func TestDeriveMetrics_PeakHoursAndChronotype(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	tests := []struct {
		name           string
		hours          []int
		wantPeak       []int
		wantChronotype string
	}{
		{
			name:           "tie broken by first-seen order",
			hours:          []int{9, 9, 9, 14, 14, 14, 20},
			wantPeak:       []int{9, 14, 20},
			wantChronotype: ChronotypeEarlyRiser,
		},
		{
			name:           "afternoon peak",
			hours:          []int{14, 14, 9},
			wantPeak:       []int{14, 9},
			wantChronotype: ChronotypeAfternoon,
		},
		{
			name:           "night owl",
			hours:          []int{22, 22, 8},
			wantPeak:       []int{22, 8},
			wantChronotype: ChronotypeNightOwl,
		},
		{
			name:           "top three only",
			hours:          []int{1, 1, 1, 1, 5, 5, 5, 9, 9, 13},
			wantPeak:       []int{1, 5, 9},
			wantChronotype: ChronotypeEarlyRiser,
		},
		{
			name:           "no completed tasks",
			hours:          nil,
			wantPeak:       nil,
			wantChronotype: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var tasks []*models.Task
			for _, h := range tt.hours {
				tasks = append(tasks, taskAt(true, models.TaskPriorityLow, at(h)))
			}

			m := DeriveMetrics(&Snapshot{Tasks: tasks}, day.Add(48*time.Hour))

			if len(m.PeakHours) != len(tt.wantPeak) {
				t.Fatalf("PeakHours = %v, want %v", m.PeakHours, tt.wantPeak)
			}
			for i, h := range tt.wantPeak {
				if m.PeakHours[i] != h {
					t.Errorf("PeakHours[%d] = %d, want %d", i, m.PeakHours[i], h)
				}
			}
			if m.Chronotype != tt.wantChronotype {
				t.Errorf("Chronotype = %q, want %q", m.Chronotype, tt.wantChronotype)
			}
		})
	}
}

func TestDeriveMetrics_HourlyHistogramIgnoresPending(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	snapshot := &Snapshot{
		Tasks: []*models.Task{
			taskAt(true, models.TaskPriorityLow, day.Add(10*time.Hour)),
			taskAt(false, models.TaskPriorityLow, day.Add(10*time.Hour)),
		},
	}

	m := DeriveMetrics(snapshot, day.Add(48*time.Hour))

	if m.HourlyActivity[10] != 1 {
		t.Errorf("HourlyActivity[10] = %d, want 1", m.HourlyActivity[10])
	}
}

func TestGoalDaysRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	datePtr := func(y int, mo time.Month, d int) *time.Time {
		v := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name    string
		target  *time.Time
		want    int
		wantSet bool
	}{
		{name: "no target date", target: nil, want: 0, wantSet: false},
		{name: "due today", target: datePtr(2026, 8, 31), want: 0, wantSet: true},
		{name: "due tomorrow despite late evening", target: datePtr(2026, 9, 1), want: 1, wantSet: true},
		{name: "due in a week", target: datePtr(2026, 9, 7), want: 7, wantSet: true},
		{name: "overdue goes negative", target: datePtr(2026, 8, 25), want: -6, wantSet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			goal := &models.Goal{TargetDate: tt.target}
			got, ok := GoalDaysRemaining(goal, now)
			if ok != tt.wantSet {
				t.Fatalf("GoalDaysRemaining ok = %v, want %v", ok, tt.wantSet)
			}
			if got != tt.want {
				t.Errorf("GoalDaysRemaining = %d, want %d", got, tt.want)
			}
		})
	}
}
