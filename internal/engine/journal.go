package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

type Mood string

const (
	MoodGreat     Mood = "great"
	MoodNeutral   Mood = "neutral"
	MoodDifficult Mood = "difficult"
)

func (m Mood) IsValid() bool {
	switch m {
	case MoodGreat, MoodNeutral, MoodDifficult:
		return true
	default:
		return false
	}
}

func ParseMood(input string) (Mood, error) {
	m := Mood(strings.TrimSpace(strings.ToLower(input)))
	if m == "" {
		return MoodGreat, nil
	}
	if !m.IsValid() {
		return "", &ValidationError{Field: "mood", Value: input, Reason: "want great, neutral or difficult"}
	}
	return m, nil
}

// JournalEntry is the reflection attached to one day of a habit.
type JournalEntry struct {
	Note      string    `json:"note"`
	Mood      Mood      `json:"mood"`
	Timestamp time.Time `json:"timestamp"`
}

// Journal maps a day to at most one reflection.
type Journal struct {
	entries map[Day]JournalEntry
}

// AddEntry stores the entry for day, replacing any earlier one.
func (j *Journal) AddEntry(day Day, note string, mood Mood, at time.Time) JournalEntry {
	day.mustBeValid()
	if !mood.IsValid() {
		panic(&ValidationError{Field: "mood", Value: string(mood), Reason: "unknown mood"})
	}
	if j.entries == nil {
		j.entries = make(map[Day]JournalEntry)
	}
	e := JournalEntry{Note: note, Mood: mood, Timestamp: at.UTC()}
	j.entries[day] = e
	return e
}

func (j Journal) Entry(day Day) (JournalEntry, bool) {
	e, ok := j.entries[day]
	return e, ok
}

func (j Journal) Len() int { return len(j.entries) }

// Days returns the annotated days in ascending order.
func (j Journal) Days() []Day {
	out := make([]Day, 0, len(j.entries))
	for d := range j.entries {
		out = append(out, d)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Before(out[b]) })
	return out
}

func (j Journal) Clone() Journal {
	c := Journal{}
	for d, e := range j.entries {
		if c.entries == nil {
			c.entries = make(map[Day]JournalEntry, len(j.entries))
		}
		c.entries[d] = e
	}
	return c
}

func (j Journal) MarshalJSON() ([]byte, error) {
	m := make(map[string]JournalEntry, len(j.entries))
	for d, e := range j.entries {
		m[d.String()] = e
	}
	return json.Marshal(m)
}

func (j *Journal) UnmarshalJSON(b []byte) error {
	var m map[string]JournalEntry
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	j.entries = nil
	for k, e := range m {
		d, err := ParseDay(k)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		if !e.Mood.IsValid() {
			return fmt.Errorf("journal %s: %w", k, &ValidationError{Field: "mood", Value: string(e.Mood), Reason: "want great, neutral or difficult"})
		}
		if j.entries == nil {
			j.entries = make(map[Day]JournalEntry, len(m))
		}
		j.entries[d] = e
	}
	return nil
}
