package analysis

import (
	"math"
	"time"

	"github.com/flowloop/momentum-api/internal/models"
)

// Chronotype buckets derived from the single busiest hour
const (
	ChronotypeEarlyRiser = "early riser"
	ChronotypeAfternoon  = "afternoon"
	ChronotypeNightOwl   = "night owl"
)

// Metrics are the derived values shared across all analysis templates
type Metrics struct {
	CompletedToday      int
	PendingHighPriority []*models.Task
	RecentMoods         []string
	AvgFocusMinutes     int
	HourlyActivity      [24]int
	PeakHours           []int
	Chronotype          string
}

// DeriveMetrics computes the shared metrics from one snapshot. The snapshot
// slices are expected in most-recent-first order, as the repositories
// return them.
func DeriveMetrics(snapshot *Snapshot, now time.Time) Metrics {
	m := Metrics{
		CompletedToday:      completedToday(snapshot.Tasks, now),
		PendingHighPriority: pendingHighPriority(snapshot.Tasks),
		RecentMoods:         recentMoods(snapshot.JournalEntries, 5),
		AvgFocusMinutes:     avgFocusMinutes(snapshot.FocusSessions),
	}
	m.HourlyActivity, m.PeakHours = hourlyActivity(snapshot.Tasks)
	m.Chronotype = chronotype(m.PeakHours)
	return m
}

// completedToday counts tasks whose completion timestamp falls on the
// current calendar date. Tasks carry no separate completed_at column, so
// updated_at of a completed task is its completion timestamp.
func completedToday(tasks []*models.Task, now time.Time) int {
	count := 0
	y, mo, d := now.Date()
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		ty, tmo, td := t.UpdatedAt.Date()
		if ty == y && tmo == mo && td == d {
			count++
		}
	}
	return count
}

func pendingHighPriority(tasks []*models.Task) []*models.Task {
	var pending []*models.Task
	for _, t := range tasks {
		if !t.Completed && t.Priority == models.TaskPriorityHigh {
			pending = append(pending, t)
		}
	}
	return pending
}

// recentMoods returns the mood labels of the n most recent journal
// entries, dropping entries without a mood. Fewer than n values come back
// when moods are missing; the window is not widened to compensate.
func recentMoods(entries []*models.JournalEntry, n int) []string {
	if len(entries) > n {
		entries = entries[:n]
	}
	var moods []string
	for _, e := range entries {
		if e.Mood != nil && *e.Mood != "" {
			moods = append(moods, *e.Mood)
		}
	}
	return moods
}

// avgFocusMinutes is the arithmetic mean of session durations rounded to
// an integer, 0 when there are no sessions
func avgFocusMinutes(sessions []*models.FocusSession) int {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return int(math.Round(float64(total) / float64(len(sessions))))
}

// hourlyActivity buckets completed tasks by the hour of day of their
// completion timestamp and returns the histogram plus the top-3 peak
// hours. Ties are broken by first-seen order over the task list, matching
// the unspecified-but-stable grouping order of the upstream source rather
// than any value-based rule.
func hourlyActivity(tasks []*models.Task) ([24]int, []int) {
	var histogram [24]int
	firstSeen := make(map[int]int)
	order := 0

	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		hour := t.UpdatedAt.Hour()
		if histogram[hour] == 0 {
			firstSeen[hour] = order
			order++
		}
		histogram[hour]++
	}

	var seen []int
	for hour := range firstSeen {
		seen = append(seen, hour)
	}
	// selection sort by count desc, first-seen asc on ties; the slice is
	// at most 24 entries so simplicity wins
	for i := 0; i < len(seen); i++ {
		best := i
		for j := i + 1; j < len(seen); j++ {
			if histogram[seen[j]] > histogram[seen[best]] ||
				(histogram[seen[j]] == histogram[seen[best]] && firstSeen[seen[j]] < firstSeen[seen[best]]) {
				best = j
			}
		}
		seen[i], seen[best] = seen[best], seen[i]
	}

	if len(seen) > 3 {
		seen = seen[:3]
	}
	return histogram, seen
}

// chronotype classifies the user by their single busiest hour. With no
// completed tasks there is no signal and the label is empty.
func chronotype(peakHours []int) string {
	if len(peakHours) == 0 {
		return ""
	}
	top := peakHours[0]
	switch {
	case top < 12:
		return ChronotypeEarlyRiser
	case top < 17:
		return ChronotypeAfternoon
	default:
		return ChronotypeNightOwl
	}
}

// GoalDaysRemaining returns the calendar-day difference between the goal's
// target date and now. Overdue goals yield negative values, passed through
// verbatim to the prompt text. The second return is false when the goal
// has no target date.
func GoalDaysRemaining(goal *models.Goal, now time.Time) (int, bool) {
	if goal.TargetDate == nil {
		return 0, false
	}
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := goal.TargetDate.In(now.Location())
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, now.Location())
	return int(targetDay.Sub(nowDay).Hours() / 24), true
}
