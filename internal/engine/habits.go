package engine

import (
	"regexp"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekly   Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekdays, FrequencyWeekly:
		return true
	default:
		return false
	}
}

// ParseFrequency parses user input; empty input means daily.
func ParseFrequency(input string) (Frequency, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return FrequencyDaily, nil
	}
	f := Frequency(s)
	if !f.IsValid() {
		return "", &ValidationError{Field: "frequency", Value: input, Reason: "want daily, weekdays or weekly"}
	}
	return f, nil
}

// ScheduledOn reports whether a habit with this frequency is due on d.
// It only drives the "today" view; streaks ignore it.
func (f Frequency) ScheduledOn(d Day, start Day) bool {
	switch f {
	case FrequencyWeekdays:
		wd := d.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case FrequencyWeekly:
		if start.IsZero() {
			return d.Weekday() == time.Monday
		}
		return d.Weekday() == start.Weekday()
	default:
		return true
	}
}

type Category string

const (
	CategoryHealth       Category = "health"
	CategoryProductivity Category = "productivity"
	CategoryMindfulness  Category = "mindfulness"
	CategoryLearning     Category = "learning"
	CategoryFitness      Category = "fitness"
	CategorySocial       Category = "social"
)

// CategoryOption is the display metadata for a category.
type CategoryOption struct {
	ID    Category
	Label string
	Icon  string
}

var Categories = []CategoryOption{
	{ID: CategoryHealth, Label: "Physical", Icon: "❤️"},
	{ID: CategoryProductivity, Label: "Output", Icon: "⚡"},
	{ID: CategoryMindfulness, Label: "Mental", Icon: "🌙"},
	{ID: CategoryLearning, Label: "Growth", Icon: "📖"},
	{ID: CategoryFitness, Label: "Training", Icon: "🏃"},
	{ID: CategorySocial, Label: "Network", Icon: "👥"},
}

func (c Category) IsValid() bool {
	for _, o := range Categories {
		if o.ID == c {
			return true
		}
	}
	return false
}

// Label returns the display label, or the raw id for unknown categories.
func (c Category) Label() string {
	for _, o := range Categories {
		if o.ID == c {
			return o.Label
		}
	}
	return string(c)
}

func (c Category) Icon() string {
	for _, o := range Categories {
		if o.ID == c {
			return o.Icon
		}
	}
	return "•"
}

// ParseCategory accepts either the id or the display label.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	for _, o := range Categories {
		if string(o.ID) == s || strings.ToLower(o.Label) == s {
			return o.ID, nil
		}
	}
	return "", &ValidationError{Field: "category", Value: input, Reason: "unknown category"}
}

// Palette is the set of named habit colors.
var Palette = []string{
	"#008784", // teal
	"#714B67", // purple
	"#F0AD4E", // orange
	"#D9534F", // red
	"#5BC0DE", // blue
	"#5CB85C", // green
	"#7C3AED", // violet
	"#374151", // gray
	"#EC4899", // pink
}

const DefaultColor = "#008784"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor accepts a #rrggbb hex value; empty input means DefaultColor.
func ParseColor(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return DefaultColor, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if !hexColor.MatchString(s) {
		return "", &ValidationError{Field: "color", Value: input, Reason: "want #rrggbb"}
	}
	return strings.ToUpper(s), nil
}
