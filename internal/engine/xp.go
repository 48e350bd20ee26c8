package engine

import (
	"fmt"
	"math"
)

const (
	// XPLevelCoef scales the quadratic curve: level n starts at XPLevelCoef*(n-1)^2.
	XPLevelCoef = 100

	// Rewards granted by the orchestration layer.
	XPPerCompletion   = 10
	XPPerReflection   = 5
	XPPerFocusSession = 50
)

// XPRequiredForLevel returns the total XP at which level starts.
// Level 1 (and anything below) requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return XPLevelCoef * n * n
}

// LevelForXP returns floor(sqrt(xp/100)) + 1.
func LevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}
	lvl := int(math.Sqrt(float64(xp)/XPLevelCoef)) + 1
	// Guard float rounding at exact thresholds.
	for XPRequiredForLevel(lvl+1) <= xp {
		lvl++
	}
	for lvl > 1 && XPRequiredForLevel(lvl) > xp {
		lvl--
	}
	return lvl
}

// Progression is a user's cumulative XP, derived level and unlocked badges.
// XP never decreases and a badge id is held at most once.
type Progression struct {
	XP     int     `json:"xp"`
	Level  int     `json:"level"`
	Badges []Badge `json:"badges"`
}

// AddXP adds a non-negative amount and reports whether the level went up.
// A negative amount is a caller bug and panics.
func (p *Progression) AddXP(amount int) (leveledUp bool) {
	if amount < 0 {
		panic(&ValidationError{Field: "xp amount", Value: fmt.Sprint(amount), Reason: "must not be negative"})
	}
	before := p.normalizedLevel()
	p.XP += amount
	p.Level = LevelForXP(p.XP)
	return p.Level > before
}

// ToNextLevel returns XP earned inside the current level and the span of the level.
func (p Progression) ToNextLevel() (into, span int) {
	lvl := LevelForXP(p.XP)
	cur := XPRequiredForLevel(lvl)
	next := XPRequiredForLevel(lvl + 1)
	return p.XP - cur, next - cur
}

// HasBadge reports whether id is already unlocked.
func (p Progression) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Award appends badges not already held and returns the ones actually added.
func (p *Progression) Award(badges ...Badge) []Badge {
	var added []Badge
	for _, b := range badges {
		if p.HasBadge(b.ID) {
			continue
		}
		p.Badges = append(p.Badges, b)
		added = append(added, b)
	}
	return added
}

// normalizedLevel repairs a stored level that drifted from XP (hand-edited exports).
func (p *Progression) normalizedLevel() int {
	p.Level = LevelForXP(p.XP)
	return p.Level
}
