package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/tracker"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc Tracker

	width  int
	height int

	user   *engine.User
	habits []engine.Habit

	// day is the day being logged; it starts at today and can be moved back.
	day      engine.Day
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	user   *engine.User
	habits []engine.Habit
	err    error
}

type toggledMsg struct {
	name string
	res  *tracker.ToggleResult
	err  error
}

type focusedMsg struct {
	name string
	res  *tracker.FocusResult
	err  error
}

func newBoardModel(ctx context.Context, svc Tracker) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		day:     svc.Today(),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.User(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		habits, err := m.svc.ListHabits(m.ctx, false)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{user: u, habits: habits}
	}
}

func (m boardModel) toggleCmd(h engine.Habit) tea.Cmd {
	day := m.day
	return func() tea.Msg {
		res, err := m.svc.ToggleCompletion(m.ctx, h.ID, day)
		return toggledMsg{name: h.Name, res: res, err: err}
	}
}

func (m boardModel) focusCmd(h engine.Habit) tea.Cmd {
	day := m.day
	return func() tea.Msg {
		res, err := m.svc.CompleteFocusSession(m.ctx, h.ID, day)
		return focusedMsg{name: h.Name, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.habits = msg.habits
		if m.selected >= len(m.habits) {
			m.selected = len(m.habits) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = toggleLog(msg.name, msg.res)
		return m, m.loadCmd()
	case focusedMsg:
		if msg.err != nil {
			m.lastLog = "Focus failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Focus session on %s: +%d XP", msg.name, msg.res.XPAwarded)
		if msg.res.LeveledUp {
			m.lastLog += " " + ui.BadgeLevelUp
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.habits)-1 {
				m.selected++
			}
			return m, nil
		case "left", "h":
			m.day = m.day.AddDays(-1)
			return m, nil
		case "right", "l":
			if today := m.svc.Today(); m.day.Before(today) {
				m.day = m.day.AddDays(1)
			}
			return m, nil
		case "t":
			m.day = m.svc.Today()
			return m, nil
		case "c", " ", "enter":
			h, ok := m.current()
			if !ok {
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Toggling %s…", h.Name)
			return m, m.toggleCmd(h)
		case "f":
			h, ok := m.current()
			if !ok {
				return m, nil
			}
			return m, m.focusCmd(h)
		}
	}
	return m, nil
}

func (m boardModel) current() (engine.Habit, bool) {
	if m.selected < 0 || m.selected >= len(m.habits) {
		return engine.Habit{}, false
	}
	return m.habits[m.selected], true
}

func toggleLog(name string, res *tracker.ToggleResult) string {
	if !res.NewlyCompleted {
		return fmt.Sprintf("Unmarked %s.", name)
	}
	s := fmt.Sprintf("Completed %s: +%d XP (level %d → %d)", name, res.XPAwarded, res.LevelBefore, res.LevelAfter)
	if res.LeveledUp {
		s += " " + ui.BadgeLevelUp
	}
	for _, b := range res.NewBadges {
		s += " " + ui.BadgeText(b)
	}
	return s
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.user == nil {
		return "Lumina: loading…"
	}
	return fmt.Sprintf("Lumina | %s | %s", m.user.Name, ui.LevelLine(m.user.Progression))
}

func (m boardModel) renderSidebar() string {
	if m.user == nil {
		return "Badges\n\nLoading…"
	}
	lines := []string{"Badges"}
	for _, a := range engine.Achievements(m.user.Progression) {
		mark := "  "
		if a.Earned {
			mark = a.Icon
		}
		lines = append(lines, fmt.Sprintf("%s %s", mark, a.Name))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- ←/→ or h/l: day")
	lines = append(lines, "- t: back to today")
	lines = append(lines, "- c/space: toggle")
	lines = append(lines, "- f: focus session")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	title := "Today"
	if m.day != m.svc.Today() {
		title = m.day.String()
	}
	out := []string{fmt.Sprintf("%s (%s)", title, m.day.Weekday())}
	if len(m.habits) == 0 {
		out = append(out, "(no habits yet, try `lum add`)")
		return strings.Join(out, "\n")
	}
	for i, h := range m.habits {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		due := ""
		if !h.Frequency.ScheduledOn(m.day, h.StartDate) {
			due = " (rest day)"
		}
		out = append(out, fmt.Sprintf("%s%s %s %s %s%s", cursor, ui.DoneIcon(h.IsCompleted(m.day)), ui.Swatch(h.Color), h.Name, ui.StreakText(h.Streak, h.BestStreak), due))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
