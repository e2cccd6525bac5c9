package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/flowloop/momentum-api/internal/analysis"
	"github.com/flowloop/momentum-api/internal/models"
)

// PromptBuilder renders one analysis template from the shared metrics and
// the raw snapshot. Builders are pure functions: all the hard-to-test
// natural-language content lives here, isolated from the fetch/derive/
// call/parse control flow.
type PromptBuilder func(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt

// promptTable maps each analysis type to its template
var promptTable = map[models.AnalysisType]PromptBuilder{
	models.AnalysisDailyBriefing:       buildDailyBriefing,
	models.AnalysisSmartPrioritization: buildSmartPrioritization,
	models.AnalysisCrossInsights:       buildCrossInsights,
	models.AnalysisGoalPrediction:      buildGoalPrediction,
	models.AnalysisHabitDNA:            buildHabitDNA,
	models.AnalysisFlowPrediction:      buildFlowPrediction,
	models.AnalysisMoodAnalysis:        buildMoodAnalysis,
}

// BuildPrompt renders the template for the given analysis type
func BuildPrompt(analysisType models.AnalysisType, m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) (Prompt, error) {
	builder, ok := promptTable[analysisType]
	if !ok {
		return Prompt{}, fmt.Errorf("no prompt template for analysis type %q", analysisType)
	}
	return builder(m, s, specific, now), nil
}

// sharedContext renders the metric lines common to most templates
func sharedContext(m analysis.Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Tasks completed today: %d\n", m.CompletedToday)
	fmt.Fprintf(&b, "- Pending high-priority tasks: %d\n", len(m.PendingHighPriority))
	if len(m.RecentMoods) > 0 {
		fmt.Fprintf(&b, "- Recent moods (newest first): %s\n", strings.Join(m.RecentMoods, ", "))
	} else {
		b.WriteString("- Recent moods: none recorded\n")
	}
	fmt.Fprintf(&b, "- Average focus session: %d minutes\n", m.AvgFocusMinutes)
	if len(m.PeakHours) > 0 {
		hours := make([]string, 0, len(m.PeakHours))
		for _, h := range m.PeakHours {
			hours = append(hours, fmt.Sprintf("%d:00", h))
		}
		fmt.Fprintf(&b, "- Peak productivity hours: %s\n", strings.Join(hours, ", "))
		fmt.Fprintf(&b, "- Productivity type: %s\n", m.Chronotype)
	} else {
		b.WriteString("- Peak productivity hours: no completed tasks yet\n")
	}
	return b.String()
}

// appendSpecific attaches the caller's opaque specific_data payload when present
func appendSpecific(b *strings.Builder, specific json.RawMessage) {
	if len(specific) > 0 && string(specific) != "null" {
		fmt.Fprintf(b, "\nAdditional data supplied by the client:\n%s\n", string(specific))
	}
}

func buildDailyBriefing(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "It is %s. Prepare today's briefing for this user.\n\n", now.Format("Monday, January 2 2006, 15:04"))
	b.WriteString("Current state:\n")
	b.WriteString(sharedContext(m))

	if len(m.PendingHighPriority) > 0 {
		b.WriteString("\nHigh-priority tasks still open:\n")
		for _, t := range m.PendingHighPriority {
			fmt.Fprintf(&b, "- %s", t.Title)
			if t.DueDate != nil {
				fmt.Fprintf(&b, " (due %s)", t.DueDate.Format("2006-01-02"))
			}
			b.WriteString("\n")
		}
	}

	if len(s.ActiveQuests) > 0 {
		b.WriteString("\nActive quests:\n")
		for _, q := range s.ActiveQuests {
			fmt.Fprintf(&b, "- %s (%d/%d)\n", q.Title, q.CurrentProgress, q.TargetValue)
		}
	}
	if s.Profile != nil {
		fmt.Fprintf(&b, "\nPlayer level %d with %d XP.\n", s.Profile.Level, s.Profile.ExperiencePoints)
	}
	appendSpecific(&b, specific)

	return Prompt{
		System: `You are a personal productivity coach preparing a short morning briefing. Respond with only a JSON object in this exact shape:
{
  "greeting": "one warm sentence",
  "focus_areas": ["up to 3 short strings"],
  "schedule_suggestion": "one sentence placing hard work in the user's peak hours",
  "motivation": "one encouraging sentence"
}
Return only valid JSON, no other text.`,
		User: b.String(),
	}
}

func buildSmartPrioritization(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "It is %s. Order this user's open tasks.\n\n", now.Format(time.RFC3339))
	b.WriteString("Current state:\n")
	b.WriteString(sharedContext(m))

	b.WriteString("\nOpen tasks:\n")
	for _, t := range s.Tasks {
		if t.Completed {
			continue
		}
		fmt.Fprintf(&b, "- %s [priority: %s]", t.Title, t.Priority)
		if t.DueDate != nil {
			fmt.Fprintf(&b, " [due: %s]", t.DueDate.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}
	appendSpecific(&b, specific)

	return Prompt{
		System: `You are a prioritization strategist. Given a user's open tasks and their productivity patterns, produce an ordered plan. Respond with only a JSON object in this exact shape:
{
  "ordered_tasks": [{"title": "task title", "reason": "one short sentence"}],
  "strategy": "one sentence describing the overall ordering logic"
}
Return only valid JSON, no other text.`,
		User: b.String(),
	}
}

func buildCrossInsights(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt {
	var b strings.Builder
	b.WriteString("Find non-obvious connections across this user's productivity data.\n\n")
	b.WriteString("Current state:\n")
	b.WriteString(sharedContext(m))

	if len(s.Habits) > 0 {
		b.WriteString("\nHabits:\n")
		for _, h := range s.Habits {
			fmt.Fprintf(&b, "- %s [%s, %s, streak %d]\n", h.Title, h.Category, h.Frequency, h.Streak)
		}
	}
	if len(s.Goals) > 0 {
		b.WriteString("\nGoals:\n")
		for _, g := range s.Goals {
			fmt.Fprintf(&b, "- %s [%s, %d%% complete]\n", g.Title, g.Category, g.Progress)
		}
	}
	appendSpecific(&b, specific)

	return Prompt{
		System: `You are a behavioral analyst who connects patterns across tasks, habits, moods, and focus data. Respond with only a JSON object in this exact shape:
{
  "insights": [{"observation": "what the data shows", "connection": "the cross-domain link", "suggestion": "one actionable step"}]
}
Provide 2 to 4 insights. Return only valid JSON, no other text.`,
		User: b.String(),
	}
}

func buildGoalPrediction(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s. Forecast this user's goals.\n\n", now.Format("2006-01-02"))
	b.WriteString("Current state:\n")
	b.WriteString(sharedContext(m))

	b.WriteString("\nGoals:\n")
	for _, g := range s.Goals {
		fmt.Fprintf(&b, "- %s [%s, %d%% complete", g.Title, g.Category, g.Progress)
		if g.Completed {
			b.WriteString(", already completed")
		}
		// Negative day counts for overdue goals pass through verbatim.
		if days, ok := analysis.GoalDaysRemaining(g, now); ok {
			fmt.Fprintf(&b, ", %d days remaining", days)
		} else {
			b.WriteString(", no target date")
		}
		b.WriteString("]\n")
	}
	appendSpecific(&b, specific)

	return Prompt{
		System: `You are a goal completion forecaster. Estimate how each goal will play out from its progress and time remaining. Respond with only a JSON object in this exact shape:
{
  "predictions": [{"goal": "goal title", "likelihood": "high|medium|low", "projected_completion": "YYYY-MM-DD or a short phrase", "risk": "the main thing that could derail it"}]
}
Return only valid JSON, no other text.`,
		User: b.String(),
	}
}

func buildHabitDNA(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt {
	var b strings.Builder
	b.WriteString("Build this user's habit profile.\n\n")
	b.WriteString("Current state:\n")
	b.WriteString(sharedContext(m))

	if len(s.Habits) > 0 {
		b.WriteString("\nHabits:\n")
		completionsByHabit := make(map[string]int)
		for _, c := range s.HabitCompletions {
			completionsByHabit[c.HabitID.String()]++
		}
		for _, h := range s.Habits {
			fmt.Fprintf(&b, "- %s [%s, %s, streak %d, %d completions on record]\n",
				h.Title, h.Category, h.Frequency, h.Streak, completionsByHabit[h.ID.String()])
		}
	} else {
		b.WriteString("\nNo habits tracked yet.\n")
	}
	appendSpecific(&b, specific)

	return Prompt{
		System: `You are a habit formation profiler. Derive the user's "habit DNA" from their streaks and completion history. Respond with only a JSON object in this exact shape:
{
  "profile": {
    "consistency_type": "a two-word archetype",
    "strongest_habit": "habit title",
    "weakest_habit": "habit title",
    "dna_summary": "two sentences describing the pattern"
  }
}
Return only valid JSON, no other text.`,
		User: b.String(),
	}
}

func buildFlowPrediction(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt {
	var b strings.Builder
	b.WriteString("Predict this user's next flow windows.\n\n")
	b.WriteString("Current state:\n")
	b.WriteString(sharedContext(m))

	if len(s.FocusSessions) > 0 {
		// Chronological order reads better for sequence prediction; the
		// repository returns newest first.
		b.WriteString("\nPast focus sessions (oldest first):\n")
		for i := len(s.FocusSessions) - 1; i >= 0; i-- {
			fs := s.FocusSessions[i]
			fmt.Fprintf(&b, "- %s starting at hour %d, %d minutes\n",
				fs.StartedAt.Format("2006-01-02"), fs.StartedAt.Hour(), fs.DurationMinutes)
		}
	} else {
		b.WriteString("\nNo focus sessions recorded yet.\n")
	}
	appendSpecific(&b, specific)

	return Prompt{
		System: `You are a flow-state forecaster. From the user's focus session history, predict the time windows where deep work is most likely to succeed. Respond with only a JSON object in this exact shape:
{
  "windows": [{"start_hour": 0, "end_hour": 0, "confidence": "high|medium|low"}],
  "rationale": "one or two sentences explaining the prediction"
}
Hours are integers 0-23. Return only valid JSON, no other text.`,
		User: b.String(),
	}
}

func buildMoodAnalysis(m analysis.Metrics, s *analysis.Snapshot, specific json.RawMessage, now time.Time) Prompt {
	var b strings.Builder
	b.WriteString("Analyze how this user's mood relates to their productivity.\n\n")
	b.WriteString("Current state:\n")
	b.WriteString(sharedContext(m))

	if len(s.JournalEntries) > 0 {
		b.WriteString("\nJournal moods (newest first):\n")
		for _, e := range s.JournalEntries {
			mood := "not recorded"
			if e.Mood != nil && *e.Mood != "" {
				mood = *e.Mood
			}
			fmt.Fprintf(&b, "- %s: %s\n", e.CreatedAt.Format("2006-01-02"), mood)
		}
	} else {
		b.WriteString("\nNo journal entries yet.\n")
	}
	appendSpecific(&b, specific)

	return Prompt{
		System: `You are a mood-productivity analyst. Relate the user's journaled moods to their task and focus output. Respond with only a JSON object in this exact shape:
{
  "correlation": "one sentence on how mood tracks productivity for this user",
  "drivers": ["up to 3 short strings naming likely mood drivers"],
  "recommendation": "one actionable sentence"
}
Return only valid JSON, no other text.`,
		User: b.String(),
	}
}
