package analysis

import (
	"context"
	"fmt"

	"github.com/flowloop/momentum-api/internal/database"
	"github.com/flowloop/momentum-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxTasks is the task snapshot bound (most recently updated first)
	MaxTasks = 100
	// MaxJournalEntries is the journal snapshot bound
	MaxJournalEntries = 30
	// MaxFocusSessions is the focus session snapshot bound
	MaxFocusSessions = 100
	// MaxHabitCompletions is the habit completion snapshot bound
	MaxHabitCompletions = 365
)

// Snapshot is the read-only bundle of one user's records used by every
// analysis template. It is fetched once per request and never cached.
type Snapshot struct {
	Tasks            []*models.Task
	Habits           []*models.Habit
	HabitCompletions []*models.HabitCompletion
	Goals            []*models.Goal
	JournalEntries   []*models.JournalEntry
	FocusSessions    []*models.FocusSession
	ActiveQuests     []*models.Quest
	Profile          *models.PlayerProfile
}

// SnapshotSource fetches one user's record bundle
type SnapshotSource interface {
	Fetch(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
}

// Fetcher assembles snapshots from the entity repositories
type Fetcher struct {
	tasks   database.TaskRepositoryInterface
	habits  database.HabitRepositoryInterface
	goals   database.GoalRepositoryInterface
	journal database.JournalRepositoryInterface
	focus   database.FocusRepositoryInterface
	quests  database.QuestRepositoryInterface
}

// NewFetcher creates a snapshot fetcher backed by the given repositories
func NewFetcher(
	tasks database.TaskRepositoryInterface,
	habits database.HabitRepositoryInterface,
	goals database.GoalRepositoryInterface,
	journal database.JournalRepositoryInterface,
	focus database.FocusRepositoryInterface,
	quests database.QuestRepositoryInterface,
) *Fetcher {
	return &Fetcher{
		tasks:   tasks,
		habits:  habits,
		goals:   goals,
		journal: journal,
		focus:   focus,
		quests:  quests,
	}
}

var _ SnapshotSource = (*Fetcher)(nil)

// Fetch runs the eight snapshot queries concurrently and waits for all of
// them. The first failure cancels the remaining queries and fails the
// whole fetch; there is no partial-result tolerance.
func (f *Fetcher) Fetch(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	snapshot := &Snapshot{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := f.tasks.GetRecentByUserID(ctx, userID, MaxTasks)
		if err != nil {
			return fmt.Errorf("failed to fetch tasks: %w", err)
		}
		snapshot.Tasks = tasks
		return nil
	})

	g.Go(func() error {
		habits, err := f.habits.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch habits: %w", err)
		}
		snapshot.Habits = habits
		return nil
	})

	g.Go(func() error {
		completions, err := f.habits.GetRecentCompletions(ctx, userID, MaxHabitCompletions)
		if err != nil {
			return fmt.Errorf("failed to fetch habit completions: %w", err)
		}
		snapshot.HabitCompletions = completions
		return nil
	})

	g.Go(func() error {
		goals, err := f.goals.GetByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch goals: %w", err)
		}
		snapshot.Goals = goals
		return nil
	})

	g.Go(func() error {
		entries, err := f.journal.GetRecentByUserID(ctx, userID, MaxJournalEntries)
		if err != nil {
			return fmt.Errorf("failed to fetch journal entries: %w", err)
		}
		snapshot.JournalEntries = entries
		return nil
	})

	g.Go(func() error {
		sessions, err := f.focus.GetRecentByUserID(ctx, userID, MaxFocusSessions)
		if err != nil {
			return fmt.Errorf("failed to fetch focus sessions: %w", err)
		}
		snapshot.FocusSessions = sessions
		return nil
	})

	g.Go(func() error {
		quests, err := f.quests.GetActiveByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch quests: %w", err)
		}
		snapshot.ActiveQuests = quests
		return nil
	})

	g.Go(func() error {
		profile, err := f.quests.GetPlayerProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch player profile: %w", err)
		}
		snapshot.Profile = profile
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
