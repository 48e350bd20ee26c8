package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/tracker"
)

// Tracker is what the board needs from tracker.Service.
type Tracker interface {
	User(ctx context.Context) (*engine.User, error)
	ListHabits(ctx context.Context, includeArchived bool) ([]engine.Habit, error)
	ToggleCompletion(ctx context.Context, habitID string, day engine.Day) (*tracker.ToggleResult, error)
	CompleteFocusSession(ctx context.Context, habitID string, day engine.Day) (*tracker.FocusResult, error)
	Today() engine.Day
}

func RunBoard(ctx context.Context, svc Tracker, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
