package engine

import "time"

// Badge is an unlocked achievement as stored on the user.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// BadgePredicate decides whether a user qualifies for a badge.
type BadgePredicate func(p Progression, habits []Habit) bool

// BadgeDefinition is one entry of the static catalog.
type BadgeDefinition struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Qualifies   BadgePredicate
}

// Badge stamps the definition as unlocked at the given time.
func (d BadgeDefinition) Badge(at time.Time) Badge {
	return Badge{ID: d.ID, Name: d.Name, Icon: d.Icon, Description: d.Description, UnlockedAt: at.UTC()}
}

const (
	BadgeFirstStep   = "first_step"
	BadgeWeekWarrior = "week_warrior"
	BadgePolymath    = "polymath"
	BadgeDedicated   = "dedicated"
	BadgeCenturion   = "centurion"
)

// Catalog is the fixed set of badges. New rules are added here only.
var Catalog = []BadgeDefinition{
	{
		ID: BadgeFirstStep, Name: "First Step", Icon: "🌱",
		Description: "Complete a habit for the first time",
		Qualifies:   completionsAtLeast(1),
	},
	{
		ID: BadgeWeekWarrior, Name: "Week Warrior", Icon: "🔥",
		Description: "Reach a 7 day streak",
		Qualifies: func(_ Progression, habits []Habit) bool {
			return MaxStreak(habits) >= 7
		},
	},
	{
		ID: BadgePolymath, Name: "Polymath", Icon: "🧠",
		Description: "Keep active habits in 3 different categories",
		Qualifies: func(_ Progression, habits []Habit) bool {
			return ActiveCategories(habits) >= 3
		},
	},
	{
		ID: BadgeDedicated, Name: "Dedicated", Icon: "⭐",
		Description: "Reach level 5",
		Qualifies: func(p Progression, _ []Habit) bool {
			return LevelForXP(p.XP) >= 5
		},
	},
	{
		ID: BadgeCenturion, Name: "Centurion", Icon: "🏆",
		Description: "Log 100 completions",
		Qualifies:   completionsAtLeast(100),
	},
}

func completionsAtLeast(n int) BadgePredicate {
	return func(_ Progression, habits []Habit) bool {
		return TotalCompletions(habits) >= n
	}
}

// LookupBadge returns the catalog entry for id.
func LookupBadge(id string) (BadgeDefinition, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return BadgeDefinition{}, false
}

// EvaluateBadges returns the badges p newly qualifies for, stamped at now.
// Badges already held are skipped. The result is not applied; see Progression.Award.
func EvaluateBadges(p Progression, habits []Habit, now time.Time) []Badge {
	var out []Badge
	for _, def := range Catalog {
		if p.HasBadge(def.ID) {
			continue
		}
		if def.Qualifies(p, habits) {
			out = append(out, def.Badge(now))
		}
	}
	return out
}

// Achievement is a catalog entry with its earned status, for display.
type Achievement struct {
	BadgeDefinition
	Earned     bool
	UnlockedAt time.Time
}

// Achievements lists every catalog badge with whether p holds it.
func Achievements(p Progression) []Achievement {
	out := make([]Achievement, 0, len(Catalog))
	for _, def := range Catalog {
		a := Achievement{BadgeDefinition: def}
		for _, b := range p.Badges {
			if b.ID == def.ID {
				a.Earned = true
				a.UnlockedAt = b.UnlockedAt
				break
			}
		}
		out = append(out, a)
	}
	return out
}
