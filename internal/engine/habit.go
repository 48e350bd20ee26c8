package engine

import "time"

// Habit is the aggregate for one tracked habit. Logs and Journal are owned by the
// habit and only change through Toggle and Reflect.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Frequency   Frequency `json:"frequency"`
	StartDate   Day       `json:"startDate"`
	Description string    `json:"description,omitempty"`
	Streak      int       `json:"streak"`
	BestStreak  int       `json:"bestStreak"`
	Logs        Ledger    `json:"logs"`
	Journal     Journal   `json:"journal"`
	Color       string    `json:"color"`
	Archived    bool      `json:"archived"`
	UserID      string    `json:"userId"`
}

// Toggle flips the completion of day and recomputes the streak fields as of today.
// It reports true only for an absent→present transition.
func (h *Habit) Toggle(day, today Day) (wasNewlyCompleted bool) {
	done := h.Logs.Toggle(day)
	h.Refresh(today)
	return done
}

// Refresh recomputes Streak as of today and ratchets BestStreak.
func (h *Habit) Refresh(today Day) {
	h.Streak = ComputeStreak(h.Logs, today)
	h.BestStreak = RatchetBest(h.BestStreak, h.Streak)
}

// Reflect attaches a journal entry to day.
func (h *Habit) Reflect(day Day, note string, mood Mood, at time.Time) JournalEntry {
	return h.Journal.AddEntry(day, note, mood, at)
}

func (h Habit) IsCompleted(day Day) bool {
	return h.Logs.IsCompleted(day)
}

// Clone returns a deep copy so callers can mutate without aliasing the ledger maps.
func (h Habit) Clone() Habit {
	c := h
	c.Logs = h.Logs.Clone()
	c.Journal = h.Journal.Clone()
	return c
}

// FindHabit returns the index of id in habits, or -1.
func FindHabit(habits []Habit, id string) int {
	for i := range habits {
		if habits[i].ID == id {
			return i
		}
	}
	return -1
}

// TotalCompletions sums ledger counts across habits, archived ones included.
func TotalCompletions(habits []Habit) int {
	n := 0
	for i := range habits {
		n += habits[i].Logs.Count()
	}
	return n
}

// MaxStreak is the highest current streak across habits.
func MaxStreak(habits []Habit) int {
	max := 0
	for i := range habits {
		if habits[i].Streak > max {
			max = habits[i].Streak
		}
	}
	return max
}

// ActiveCategories counts distinct categories among non-archived habits.
func ActiveCategories(habits []Habit) int {
	seen := map[Category]bool{}
	for i := range habits {
		if habits[i].Archived {
			continue
		}
		seen[habits[i].Category] = true
	}
	return len(seen)
}
