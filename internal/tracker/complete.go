package tracker

import (
	"context"
	"fmt"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

type ToggleResult struct {
	Habits         []engine.Habit
	Habit          engine.Habit
	User           *engine.User
	NewlyCompleted bool
	XPAwarded      int
	LevelBefore    int
	LevelAfter     int
	LeveledUp      bool
	NewBadges      []engine.Badge
}

// reward is the progression outcome of one XP grant plus the badge pass that follows it.
type reward struct {
	xp          int
	levelBefore int
	levelAfter  int
	leveledUp   bool
	badges      []engine.Badge
}

// grant adds amount XP to u and awards any badges the user now qualifies for.
func (s *Service) grant(u *engine.User, habits []engine.Habit, amount int) reward {
	r := reward{xp: amount, levelBefore: engine.LevelForXP(u.XP)}
	r.leveledUp = u.AddXP(amount)
	r.levelAfter = u.Level
	r.badges = u.Award(engine.EvaluateBadges(u.Progression, s.currentHabits(habits, u), s.now())...)
	return r
}

// ToggleCompletion flips day on the habit. Only an absent→present transition earns XP
// and triggers badge evaluation; undoing never takes XP or badges away.
func (s *Service) ToggleCompletion(ctx context.Context, habitID string, day engine.Day) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggle(ctx, habitID, day)
}

func (s *Service) toggle(ctx context.Context, habitID string, day engine.Day) (*ToggleResult, error) {
	if day.IsZero() {
		return nil, &engine.ValidationError{Field: "day", Reason: "is required"}
	}
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
	newly := h.Toggle(day, s.Today())

	res := &ToggleResult{
		NewlyCompleted: newly,
		LevelBefore:    engine.LevelForXP(u.XP),
	}
	res.LevelAfter = res.LevelBefore

	var changed *engine.User
	if newly {
		r := s.grant(u, habits, engine.XPPerCompletion)
		res.XPAwarded = r.xp
		res.LevelAfter = r.levelAfter
		res.LeveledUp = r.leveledUp
		res.NewBadges = r.badges
		changed = u
	}

	if err := s.persist(ctx, habits, changed); err != nil {
		return nil, err
	}

	s.log.Debug("habit toggled", "habit", habitID, "day", day.String(), "done", newly, "streak", h.Streak)
	if res.LeveledUp {
		s.log.Info("level up", "user", u.ID, "level", res.LevelAfter)
	}
	for _, b := range res.NewBadges {
		s.log.Info("badge unlocked", "user", u.ID, "badge", b.ID)
	}

	res.Habits = habits
	res.Habit = *h
	res.User = u
	return res, nil
}

// FocusResult describes the effect of a finished focus session.
type FocusResult struct {
	// Completed is set when the session completed the day instead of granting the bonus.
	Completed bool
	Toggle    *ToggleResult
	Habit     engine.Habit
	User      *engine.User
	XPAwarded int
	LeveledUp bool
	NewBadges []engine.Badge
}

// CompleteFocusSession finishes a timed session on a habit. An open day is completed
// (the usual completion reward); an already-completed day earns the focus bonus instead.
func (s *Service) CompleteFocusSession(ctx context.Context, habitID string, day engine.Day) (*FocusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if day.IsZero() {
		return nil, &engine.ValidationError{Field: "day", Reason: "is required"}
	}
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

	if !habits[i].IsCompleted(day) {
		tr, err := s.toggle(ctx, habitID, day)
		if err != nil {
			return nil, err
		}
		return &FocusResult{
			Completed: true,
			Toggle:    tr,
			Habit:     tr.Habit,
			User:      tr.User,
			XPAwarded: tr.XPAwarded,
			LeveledUp: tr.LeveledUp,
			NewBadges: tr.NewBadges,
		}, nil
	}

	r := s.grant(u, habits, engine.XPPerFocusSession)
	if err := s.users.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.log.Debug("focus bonus", "habit", habitID, "xp", r.xp)
	return &FocusResult{
		Habit:     habits[i],
		User:      u,
		XPAwarded: r.xp,
		LeveledUp: r.leveledUp,
		NewBadges: r.badges,
	}, nil
}

// AddXP grants amount XP to the signed-in user. A negative amount is rejected.
func (s *Service) AddXP(ctx context.Context, amount int) (*engine.User, bool, error) {
	if amount < 0 {
		return nil, false, &engine.ValidationError{Field: "xp amount", Value: fmt.Sprint(amount), Reason: "must not be negative"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, false, err
	}
	leveled := u.AddXP(amount)
	if amount == 0 {
		return u, false, nil
	}
	if err := s.users.SaveUser(ctx, u); err != nil {
		return nil, false, fmt.Errorf("save user: %w", err)
	}
	return u, leveled, nil
}

// EvaluateBadges runs the catalog against the signed-in user's habits and stores any
// badges newly unlocked. Calling it again without progress returns nothing.
func (s *Service) EvaluateBadges(ctx context.Context) ([]engine.Badge, error) {
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
	added := u.Award(engine.EvaluateBadges(u.Progression, s.currentHabits(habits, u), s.now())...)
	if len(added) == 0 {
		return nil, nil
	}
	if err := s.users.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return added, nil
}
