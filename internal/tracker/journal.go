package tracker

import (
	"context"
	"fmt"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

type JournalResult struct {
	Habits []engine.Habit
	Habit  engine.Habit
	Entry  engine.JournalEntry
	User   *engine.User
	// Completed is set when writing the entry also completed the day.
	Completed bool
	XPAwarded int
	LeveledUp bool
	NewBadges []engine.Badge
}

// AddJournalEntry stores a reflection for day, replacing an earlier one. Reflecting on an
// open day completes it with the completion reward; reflecting on a completed day earns
// the smaller reflection bonus.
func (s *Service) AddJournalEntry(ctx context.Context, habitID string, day engine.Day, note string, mood engine.Mood) (*JournalResult, error) {
	if day.IsZero() {
		return nil, &engine.ValidationError{Field: "day", Reason: "is required"}
	}
	if !mood.IsValid() {
		return nil, &engine.ValidationError{Field: "mood", Value: string(mood), Reason: "want great, neutral or difficult"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	i, err := findOwned(habits, u, habitID)
	if err != nil {
		return nil, err
	}

	h := &habits[i]
	entry := h.Reflect(day, note, mood, s.now())
	res := &JournalResult{Entry: entry, User: u}

	var r reward
	if h.IsCompleted(day) {
		r = s.grant(u, habits, engine.XPPerReflection)
	} else {
		h.Toggle(day, s.Today())
		res.Completed = true
		r = s.grant(u, habits, engine.XPPerCompletion)
	}
	res.XPAwarded = r.xp
	res.LeveledUp = r.leveledUp
	res.NewBadges = r.badges

	if err := s.persist(ctx, habits, u); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	s.log.Debug("journal entry", "habit", habitID, "day", day.String(), "mood", string(mood), "completed", res.Completed)

	res.Habits = habits
	res.Habit = *h
	return res, nil
}
