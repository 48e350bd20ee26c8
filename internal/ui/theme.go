package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

// Lumina theme (CLI + TUI).

const (
	IconHabit   = "🌿"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconOpen    = "⬜"
	IconTrophy  = "🏆"
	IconFire    = "🔥"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconArchive = "📦"
	IconJournal = "📝"
	IconCoach   = "🤖"
	IconChart   = "📊"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Swatch renders a block in the habit's own color.
func Swatch(hex string) string {
	if hex == "" {
		hex = engine.DefaultColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

func CategoryText(c engine.Category) string {
	return fmt.Sprintf("%s %s", c.Icon(), Muted.Render(c.Label()))
}

func MoodText(m engine.Mood) string {
	switch m {
	case engine.MoodGreat:
		return Good.Render("great")
	case engine.MoodNeutral:
		return H2.Render("neutral")
	case engine.MoodDifficult:
		return Warn.Render("difficult")
	default:
		return Muted.Render(string(m))
	}
}

func DoneIcon(done bool) string {
	if done {
		return IconDone
	}
	return IconOpen
}

func StreakText(cur, best int) string {
	s := fmt.Sprintf("%s %d", IconFire, cur)
	if cur == 0 {
		s = Muted.Render(s)
	} else if cur >= 7 {
		s = Gold.Render(s)
	}
	return s + Muted.Render(fmt.Sprintf(" (best %d)", best))
}

// ProgressBar renders into/span as a fixed-width bar.
func ProgressBar(into, span, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if span > 0 {
		filled = into * width / span
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}

// LevelLine is "Level N  [bar] into/span XP".
func LevelLine(p engine.Progression) string {
	into, span := p.ToNextLevel()
	return fmt.Sprintf("%s %s %s", Gold.Render(fmt.Sprintf("Level %d", engine.LevelForXP(p.XP))), ProgressBar(into, span, 20), Muted.Render(fmt.Sprintf("%d/%d XP", into, span)))
}

func BadgeText(b engine.Badge) string {
	return fmt.Sprintf("%s %s", b.Icon, Gold.Render(b.Name))
}
