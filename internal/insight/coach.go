// Package insight produces motivational coaching text about a user's habits through a
// text generation backend. It only reads habits; nothing here changes tracked state.
package insight

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

const (
	Greeting = "Hello! I'm Lumina. How can I help you today?"

	FallbackNoKey  = "Please configure your API Key to receive personalized AI coaching."
	FallbackError  = "Great job focusing on your goals today!"
	FallbackEmpty  = "Keep going! Consistency is key."
	FallbackOnline = "I'm having trouble connecting right now. Please try again later."
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Generator turns a conversation into the model's next reply.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

var insightPrompt = template.Must(template.New("insight").Parse(`You are a motivational habit coach.
Analyze the following habit data for a user:
{{range .}}- {{.Name}}: Current Streak {{.Streak}}, Best {{.BestStreak}}. Category: {{.Category}}.
{{end}}
Provide a short, punchy, and motivating insight or tip (max 2 sentences).
Focus on the positive but give a gentle nudge if streaks are low.
Do not use markdown formatting.
`))

var chatPrompt = template.Must(template.New("chat").Parse(`Context:
Habits: {{.Habits}}
User Query: {{.Query}}
`))

type Coach struct {
	gen Generator
	log *slog.Logger
}

// NewCoach returns a coach over gen. A nil gen yields the "configure your key" reply.
func NewCoach(gen Generator, log *slog.Logger) *Coach {
	if log == nil {
		log = slog.Default()
	}
	return &Coach{gen: gen, log: log}
}

func (c *Coach) Configured() bool { return c.gen != nil }

// Insight returns a short tip about habits. Failures degrade to fixed text.
func (c *Coach) Insight(ctx context.Context, habits []engine.Habit) string {
	if c.gen == nil {
		return FallbackNoKey
	}
	prompt, err := render(insightPrompt, habits)
	if err != nil {
		c.log.Error("render insight prompt", "err", err)
		return FallbackError
	}
	out, err := c.gen.Generate(ctx, []Message{{Role: RoleUser, Text: prompt}})
	if err != nil {
		c.log.Warn("insight generation failed", "err", err)
		return FallbackError
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return FallbackEmpty
	}
	return out
}

// Chat answers message given earlier turns. The current habits are sent as context with
// the query; archived habits are left out.
func (c *Coach) Chat(ctx context.Context, habits []engine.Habit, history []Message, message string) string {
	if c.gen == nil {
		return FallbackNoKey
	}
	var names []string
	for _, h := range habits {
		if !h.Archived {
			names = append(names, h.Name)
		}
	}
	prompt, err := render(chatPrompt, struct {
		Habits string
		Query  string
	}{strings.Join(names, ", "), strings.TrimSpace(message)})
	if err != nil {
		c.log.Error("render chat prompt", "err", err)
		return FallbackOnline
	}

	msgs := make([]Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Text: prompt})

	out, err := c.gen.Generate(ctx, msgs)
	if err != nil {
		c.log.Warn("chat generation failed", "err", err)
		return FallbackOnline
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return FallbackOnline
	}
	return out
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
