// Package tracker orchestrates habit completions, reflections and progression for the
// signed-in user on top of the pure engine package.
//
// Every mutating operation loads the whole habit collection, changes one record and saves
// the whole collection back. A Service serializes those cycles with a mutex.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/identity"
)

type HabitStore interface {
	LoadHabits(ctx context.Context) ([]engine.Habit, error)
	SaveHabits(ctx context.Context, habits []engine.Habit) error
}

type UserStore interface {
	LoadUser(ctx context.Context, id string) (*engine.User, error)
	SaveUser(ctx context.Context, u *engine.User) error
}

// StateStore is optionally implemented by a HabitStore that can write habits and the
// user in one step. storage.Repo implements it.
type StateStore interface {
	SaveState(ctx context.Context, habits []engine.Habit, u *engine.User) error
}

// Identity reports the signed-in user, or nil when signed out.
type Identity interface {
	CurrentUser(ctx context.Context) (*engine.User, error)
}

type Service struct {
	mu       sync.Mutex
	habits   HabitStore
	users    UserStore
	identity Identity
	now      func() time.Time
	log      *slog.Logger
	newID    func() string
}

type Option func(*Service)

// WithClock replaces time.Now. Today is derived from the clock in its own location.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIDGenerator replaces the uuid generator used for new habits.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(habits HabitStore, users UserStore, id Identity, opts ...Option) *Service {
	s := &Service{
		habits:   habits,
		users:    users,
		identity: id,
		now:      time.Now,
		log:      slog.Default(),
		newID:    newHabitID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current calendar day per the service clock.
func (s *Service) Today() engine.Day {
	return engine.DayOf(s.now())
}

// User returns the signed-in user.
func (s *Service) User(ctx context.Context) (*engine.User, error) {
	return s.currentUser(ctx)
}

func (s *Service) currentUser(ctx context.Context) (*engine.User, error) {
	u, err := s.identity.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	if u == nil {
		return nil, identity.ErrNotSignedIn
	}
	return u, nil
}

func (s *Service) loadHabits(ctx context.Context) ([]engine.Habit, error) {
	habits, err := s.habits.LoadHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	return habits, nil
}

// findOwned locates id in habits among the ones u may change. Habits of other users are
// reported as missing.
func findOwned(habits []engine.Habit, u *engine.User, id string) (int, error) {
	i := engine.FindHabit(habits, id)
	if i < 0 || !ownedBy(habits[i], u) {
		return -1, &engine.NotFoundError{Kind: "habit", ID: id}
	}
	return i, nil
}

// ownedBy treats habits without an owner as belonging to whoever is signed in.
func ownedBy(h engine.Habit, u *engine.User) bool {
	return h.UserID == "" || h.UserID == u.ID
}

func ownedHabits(habits []engine.Habit, u *engine.User) []engine.Habit {
	out := make([]engine.Habit, 0, len(habits))
	for _, h := range habits {
		if ownedBy(h, u) {
			out = append(out, h)
		}
	}
	return out
}

// currentHabits returns u's habits with streaks recomputed as of today. Stored streaks
// go stale when a user stops logging, and badges must see the live value.
func (s *Service) currentHabits(habits []engine.Habit, u *engine.User) []engine.Habit {
	owned := ownedHabits(habits, u)
	today := s.Today()
	for i := range owned {
		owned[i].Refresh(today)
	}
	return owned
}

// persist writes the habit collection and, when u is non-nil, the user.
func (s *Service) persist(ctx context.Context, habits []engine.Habit, u *engine.User) error {
	if u != nil {
		if st, ok := s.habits.(StateStore); ok {
			if err := st.SaveState(ctx, habits, u); err != nil {
				return fmt.Errorf("save state: %w", err)
			}
			return nil
		}
	}
	if err := s.habits.SaveHabits(ctx, habits); err != nil {
		return fmt.Errorf("save habits: %w", err)
	}
	if u != nil {
		if err := s.users.SaveUser(ctx, u); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
	}
	return nil
}

// ResolveHabitID expands a unique id prefix among the user's habits.
func (s *Service) ResolveHabitID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", &engine.ValidationError{Field: "habit id", Reason: "is required"}
	}
	u, err := s.currentUser(ctx)
	if err != nil {
		return "", err
	}
	habits, err := s.loadHabits(ctx)
	if err != nil {
		return "", err
	}

	var match string
	for _, h := range ownedHabits(habits, u) {
		if h.ID == prefix {
			return h.ID, nil
		}
		if strings.HasPrefix(h.ID, prefix) {
			if match != "" {
				return "", &engine.ValidationError{Field: "habit id", Value: prefix, Reason: "ambiguous prefix"}
			}
			match = h.ID
		}
	}
	if match == "" {
		return "", &engine.NotFoundError{Kind: "habit", ID: prefix}
	}
	return match, nil
}
