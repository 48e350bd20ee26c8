package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

// Document is the export format: the user and their habits in the persisted JSON shape.
type Document struct {
	ExportedAt time.Time      `json:"exportedAt"`
	User       *engine.User   `json:"user"`
	Habits     []engine.Habit `json:"habits"`
}

// Export returns the signed-in user's data as indented JSON.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	doc := Document{
		ExportedAt: s.now().UTC(),
		User:       u,
		Habits:     ownedHabits(habits, u),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

type ImportResult struct {
	Added    int
	Replaced int
}

// Import merges exported habits into the signed-in user's collection by id. Imported
// habits are re-owned by the current user. Progression is only taken from the document
// when it is ahead of the stored one, so XP never goes down.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
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

	today := s.Today()
	res := &ImportResult{}
	for _, h := range doc.Habits {
		if h.ID == "" {
			h.ID = s.newID()
		}
		h.UserID = u.ID
		h.Refresh(today)
		i := engine.FindHabit(habits, h.ID)
		switch {
		case i < 0:
			habits = append(habits, h)
			res.Added++
		case ownedBy(habits[i], u):
			habits[i] = h
			res.Replaced++
		default:
			return nil, fmt.Errorf("import: habit %q belongs to another user", h.ID)
		}
	}

	var changed *engine.User
	if doc.User != nil {
		if doc.User.XP > u.XP {
			u.AddXP(doc.User.XP - u.XP)
			changed = u
		}
		if len(u.Award(doc.User.Badges...)) > 0 {
			changed = u
		}
	}
	if err := s.persist(ctx, habits, changed); err != nil {
		return nil, err
	}
	s.log.Info("imported habits", "added", res.Added, "replaced", res.Replaced)
	return res, nil
}
