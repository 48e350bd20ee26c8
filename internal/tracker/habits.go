package tracker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

// HabitInput carries user-entered habit fields. On update, empty fields keep their
// current value.
type HabitInput struct {
	Name        string
	Category    string
	Frequency   string
	Color       string
	Description string
	StartDate   string
}

type habitFields struct {
	name      string
	category  engine.Category
	frequency engine.Frequency
	color     string
	start     engine.Day
}

func parseHabitInput(in HabitInput, requireName bool) (habitFields, error) {
	var f habitFields
	f.name = strings.TrimSpace(in.Name)
	if requireName && f.name == "" {
		return f, &engine.ValidationError{Field: "name", Reason: "is required"}
	}
	var err error
	if in.Category != "" {
		if f.category, err = engine.ParseCategory(in.Category); err != nil {
			return f, err
		}
	}
	if in.Frequency != "" || requireName {
		if f.frequency, err = engine.ParseFrequency(in.Frequency); err != nil {
			return f, err
		}
	}
	if in.Color != "" {
		if f.color, err = engine.ParseColor(in.Color); err != nil {
			return f, err
		}
	}
	if s := strings.TrimSpace(in.StartDate); s != "" {
		if f.start, err = engine.ParseDay(s); err != nil {
			return f, err
		}
	}
	return f, nil
}

func newHabitID() string {
	return uuid.New().String()
}

// CreateHabit adds a habit for the signed-in user with an empty ledger and journal.
func (s *Service) CreateHabit(ctx context.Context, in HabitInput) (*engine.Habit, error) {
	f, err := parseHabitInput(in, true)
	if err != nil {
		return nil, err
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

	h := engine.Habit{
		ID:          s.newID(),
		Name:        f.name,
		Category:    f.category,
		Frequency:   f.frequency,
		StartDate:   f.start,
		Description: strings.TrimSpace(in.Description),
		Color:       f.color,
		UserID:      u.ID,
	}
	if h.StartDate.IsZero() {
		h.StartDate = s.Today()
	}
	if h.Color == "" {
		h.Color = engine.DefaultColor
	}
	if h.Category == "" {
		h.Category = engine.CategoryHealth
	}

	habits = append(habits, h)
	if err := s.persist(ctx, habits, nil); err != nil {
		return nil, err
	}
	s.log.Info("habit created", "habit", h.ID, "name", h.Name, "category", string(h.Category))
	return &h, nil
}

// UpdateHabit changes the descriptive fields of a habit. Logs, journal and streaks are
// untouched.
func (s *Service) UpdateHabit(ctx context.Context, id string, in HabitInput) (*engine.Habit, error) {
	f, err := parseHabitInput(in, false)
	if err != nil {
		return nil, err
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
	i, err := findOwned(habits, u, id)
	if err != nil {
		return nil, err
	}

	h := &habits[i]
	if f.name != "" {
		h.Name = f.name
	}
	if f.category != "" {
		h.Category = f.category
	}
	if f.frequency != "" {
		h.Frequency = f.frequency
	}
	if f.color != "" {
		h.Color = f.color
	}
	if !f.start.IsZero() {
		h.StartDate = f.start
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		h.Description = d
	}

	if err := s.persist(ctx, habits, nil); err != nil {
		return nil, err
	}
	out := habits[i]
	return &out, nil
}

// SetArchived hides (or restores) a habit from today's views. Its history is kept.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) (*engine.Habit, error) {
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
	i, err := findOwned(habits, u, id)
	if err != nil {
		return nil, err
	}
	habits[i].Archived = archived
	if err := s.persist(ctx, habits, nil); err != nil {
		return nil, err
	}
	s.log.Info("habit archived", "habit", id, "archived", archived)
	out := habits[i]
	return &out, nil
}

// DeleteHabit removes the habit and its history. XP and badges already earned stay.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	habits, err := s.loadHabits(ctx)
	if err != nil {
		return err
	}
	i, err := findOwned(habits, u, id)
	if err != nil {
		return err
	}
	habits = append(habits[:i], habits[i+1:]...)
	if err := s.persist(ctx, habits, nil); err != nil {
		return err
	}
	s.log.Info("habit deleted", "habit", id)
	return nil
}

// ListHabits returns the signed-in user's habits with streaks refreshed against today.
// Habits stored without an owner are claimed by the user and saved.
func (s *Service) ListHabits(ctx context.Context, includeArchived bool) ([]engine.Habit, error) {
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

	claimed := 0
	for i := range habits {
		if habits[i].UserID == "" {
			habits[i].UserID = u.ID
			claimed++
		}
	}
	if claimed > 0 {
		if err := s.persist(ctx, habits, nil); err != nil {
			return nil, err
		}
		s.log.Info("claimed legacy habits", "user", u.ID, "count", claimed)
	}

	today := s.Today()
	out := []engine.Habit{}
	for _, h := range habits {
		if h.UserID != u.ID {
			continue
		}
		if h.Archived && !includeArchived {
			continue
		}
		h.Refresh(today)
		out = append(out, h)
	}
	return out, nil
}

// Habit returns one of the signed-in user's habits.
func (s *Service) Habit(ctx context.Context, id string) (*engine.Habit, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	i, err := findOwned(habits, u, id)
	if err != nil {
		return nil, err
	}
	h := habits[i]
	h.Refresh(s.Today())
	return &h, nil
}

type seedHabit struct {
	name        string
	category    engine.Category
	color       string
	description string
}

var defaultHabits = []seedHabit{
	{"Deep Work Session", engine.CategoryProductivity, "#714B67", "90 minutes of uninterrupted focus."},
	{"Hydration Target", engine.CategoryHealth, "#5CB85C", "3 Liters minimum."},
	{"Market Research", engine.CategoryLearning, "#F0AD4E", "Read financial reports."},
}

// SeedDefaults gives a user with no habits the starter set. It returns how many habits
// were created.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.currentUser(ctx)
	if err != nil {
		return 0, err
	}
	habits, err := s.loadHabits(ctx)
	if err != nil {
		return 0, err
	}
	for _, h := range habits {
		if h.UserID == u.ID {
			return 0, nil
		}
	}

	today := s.Today()
	for _, sh := range defaultHabits {
		habits = append(habits, engine.Habit{
			ID:          s.newID(),
			Name:        sh.name,
			Category:    sh.category,
			Frequency:   engine.FrequencyDaily,
			StartDate:   today,
			Description: sh.description,
			Color:       sh.color,
			UserID:      u.ID,
		})
	}
	if err := s.persist(ctx, habits, nil); err != nil {
		return 0, err
	}
	return len(defaultHabits), nil
}
