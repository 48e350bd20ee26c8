package engine

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Ledger is the sparse set of days on which a habit was completed.
// Absence means not completed; the ledger never holds a "false" entry.
type Ledger struct {
	days map[Day]struct{}
}

// NewLedger returns a ledger holding the given days.
func NewLedger(days ...Day) Ledger {
	l := Ledger{}
	for _, d := range days {
		l.mark(d)
	}
	return l
}

// Toggle marks day completed, or unmarks it if it already was.
// It returns the new state for day.
func (l *Ledger) Toggle(day Day) bool {
	day.mustBeValid()
	if l.IsCompleted(day) {
		delete(l.days, day)
		return false
	}
	l.mark(day)
	return true
}

func (l Ledger) IsCompleted(day Day) bool {
	_, ok := l.days[day]
	return ok
}

// Count is the number of completed days.
func (l Ledger) Count() int {
	return len(l.days)
}

// Days returns the completed days in ascending order.
func (l Ledger) Days() []Day {
	out := make([]Day, 0, len(l.days))
	for d := range l.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Clone returns an independent copy.
func (l Ledger) Clone() Ledger {
	c := Ledger{}
	for d := range l.days {
		c.mark(d)
	}
	return c
}

func (l *Ledger) mark(day Day) {
	day.mustBeValid()
	if l.days == nil {
		l.days = make(map[Day]struct{})
	}
	l.days[day] = struct{}{}
}

// MarshalJSON writes the ledger as {"YYYY-MM-DD": true, ...}.
func (l Ledger) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, len(l.days))
	for d := range l.days {
		m[d.String()] = true
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads {"YYYY-MM-DD": bool}; false entries are dropped.
func (l *Ledger) UnmarshalJSON(b []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	l.days = nil
	for k, done := range m {
		if !done {
			continue
		}
		d, err := ParseDay(k)
		if err != nil {
			return fmt.Errorf("ledger: %w", err)
		}
		l.mark(d)
	}
	return nil
}
