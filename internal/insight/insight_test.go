package insight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

type fakeGenerator struct {
	reply string
	err   error
	got   []Message
}

func (f *fakeGenerator) Generate(_ context.Context, msgs []Message) (string, error) {
	f.got = msgs
	return f.reply, f.err
}

var sampleHabits = []engine.Habit{
	{ID: "1", Name: "Walk", Category: engine.CategoryHealth, Streak: 3, BestStreak: 5},
	{ID: "2", Name: "Old", Category: engine.CategorySocial, Archived: true},
}

func TestInsightFallbacks(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, FallbackNoKey, NewCoach(nil, nil).Insight(ctx, sampleHabits))
	assert.Equal(t, FallbackError, NewCoach(&fakeGenerator{err: errors.New("boom")}, nil).Insight(ctx, sampleHabits))
	assert.Equal(t, FallbackEmpty, NewCoach(&fakeGenerator{reply: "  "}, nil).Insight(ctx, sampleHabits))
}

func TestInsightPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: "Nice streak!\n"}
	out := NewCoach(gen, nil).Insight(context.Background(), sampleHabits)
	assert.Equal(t, "Nice streak!", out)

	require.Len(t, gen.got, 1)
	assert.Contains(t, gen.got[0].Text, "- Walk: Current Streak 3, Best 5. Category: health.")
	assert.Contains(t, gen.got[0].Text, "max 2 sentences")
}

func TestChatSendsHistoryAndContext(t *testing.T) {
	gen := &fakeGenerator{reply: "Try mornings."}
	history := []Message{{Role: RoleModel, Text: Greeting}}

	out := NewCoach(gen, nil).Chat(context.Background(), sampleHabits, history, "when should I walk?")
	assert.Equal(t, "Try mornings.", out)

	require.Len(t, gen.got, 2)
	assert.Equal(t, RoleModel, gen.got[0].Role)
	last := gen.got[1].Text
	assert.Contains(t, last, "Habits: Walk\n")
	assert.NotContains(t, last, "Old")
	assert.Contains(t, last, "User Query: when should I walk?")

	failing := NewCoach(&fakeGenerator{err: errors.New("down")}, nil)
	assert.Equal(t, FallbackOnline, failing.Chat(context.Background(), nil, nil, "hi"))
}

func TestGeminiClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.Len(t, req.Contents, 1) {
			assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		}

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi "},{"text":"there"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", WithBaseURL(srv.URL), WithModel("test-model"))
	out, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Text: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", out)
}

func TestGeminiClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":{"code":503,"message":"overloaded"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("k", WithBaseURL(srv.URL), WithRetryDelay(time.Millisecond))
	out, err := c.Generate(context.Background(), []Message{{Text: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGeminiClientClientErrorIsFinal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad key"}}`))
	}))
	defer srv.Close()

	c := NewGeminiClient("k", WithBaseURL(srv.URL), WithRetryDelay(time.Millisecond))
	_, err := c.Generate(context.Background(), []Message{{Text: "x"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bad key"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err = NewGeminiClient("").Generate(context.Background(), []Message{{Text: "x"}})
	assert.Error(t, err)
}
