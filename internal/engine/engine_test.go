package engine

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC)

func newTestHabit(id string, cat Category) Habit {
	return Habit{
		ID:        id,
		Name:      "habit " + id,
		Category:  cat,
		Frequency: FrequencyDaily,
		StartDate: MustParseDay("2024-01-01"),
		Color:     DefaultColor,
	}
}

func TestDayArithmeticAcrossMonthAndYear(t *testing.T) {
	d := MustParseDay("2024-03-01")
	if got := d.AddDays(-1).String(); got != "2024-02-29" {
		t.Fatalf("2024-03-01 - 1 = %s, want 2024-02-29", got)
	}
	if got := MustParseDay("2023-12-31").AddDays(1).String(); got != "2024-01-01" {
		t.Fatalf("2023-12-31 + 1 = %s, want 2024-01-01", got)
	}
	if !MustParseDay("2024-01-01").Before(MustParseDay("2024-01-02")) {
		t.Fatalf("expected 01-01 before 01-02")
	}
	if MustParseDay("2024-06-01") != NewDay(2024, time.May, 32) {
		t.Fatalf("NewDay should normalize May 32 to June 1")
	}
}

func TestDayOfIgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	morning := time.Date(2024, 5, 10, 0, 5, 0, 0, loc)
	night := time.Date(2024, 5, 10, 23, 55, 0, 0, loc)
	if DayOf(morning) != DayOf(night) {
		t.Fatalf("same local date should map to the same day")
	}
	// 23:55 at UTC+5 is still 18:55 UTC the same date, but 00:05 is the previous UTC date.
	if DayOf(morning.UTC()) == DayOf(morning) {
		t.Fatalf("day must follow the location of the supplied time")
	}
}

func TestParseDayRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "2024-13-01", "10/05/2024", "2024-5-1x"} {
		if _, err := ParseDay(in); err == nil {
			t.Fatalf("ParseDay(%q) expected error", in)
		}
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	d := MustParseDay("2024-05-10")
	l := NewLedger(MustParseDay("2024-05-01"))

	for _, start := range []bool{false, true} {
		if start != l.IsCompleted(d) {
			l.Toggle(d)
		}
		l.Toggle(d)
		l.Toggle(d)
		if l.IsCompleted(d) != start {
			t.Fatalf("double toggle changed state from %v", start)
		}
	}
	if l.Count() != 2 {
		t.Fatalf("count=%d, want 2", l.Count())
	}
}

func TestToggleReturnsNewState(t *testing.T) {
	var l Ledger
	d := MustParseDay("2030-01-01") // future days are accepted
	if !l.Toggle(d) {
		t.Fatalf("first toggle should complete")
	}
	if l.Toggle(d) {
		t.Fatalf("second toggle should undo")
	}
	if l.Count() != 0 {
		t.Fatalf("count=%d, want 0", l.Count())
	}
}

func TestComputeStreakEmptyLedger(t *testing.T) {
	if got := ComputeStreak(Ledger{}, DayOf(testNow)); got != 0 {
		t.Fatalf("empty ledger streak=%d, want 0", got)
	}
}

func TestComputeStreakAnchors(t *testing.T) {
	today := MustParseDay("2024-05-10")
	l := NewLedger(today.AddDays(-2), today.AddDays(-1), today)

	if got := ComputeStreak(l, today); got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}

	// Unmarking today moves the anchor to yesterday; the run D-2..D-1 remains.
	l.Toggle(today)
	if got := ComputeStreak(l, today); got != 2 {
		t.Fatalf("streak after undo today=%d, want 2", got)
	}

	// Seen from tomorrow, both "today" and "yesterday" are misses.
	if got := ComputeStreak(l, today.AddDays(1)); got != 0 {
		t.Fatalf("streak seen from tomorrow=%d, want 0", got)
	}

	l.Toggle(today)
	if got := ComputeStreak(l, today.AddDays(1)); got != 3 {
		t.Fatalf("streak anchored on yesterday=%d, want 3", got)
	}
}

func TestComputeStreakStopsAtFirstGap(t *testing.T) {
	today := MustParseDay("2024-05-10")
	l := NewLedger(
		today, today.AddDays(-1),
		// gap at -2
		today.AddDays(-3), today.AddDays(-4), today.AddDays(-5), today.AddDays(-6),
	)
	if got := ComputeStreak(l, today); got != 2 {
		t.Fatalf("streak=%d, want 2", got)
	}
	if got := LongestRun(l); got != 4 {
		t.Fatalf("longest run=%d, want 4", got)
	}
}

func TestWeekdayHabitsDoNotSkipWeekends(t *testing.T) {
	// 2024-05-13 is a Monday; Sat 11 and Sun 12 are not marked.
	monday := MustParseDay("2024-05-13")
	l := NewLedger(monday, MustParseDay("2024-05-10"), MustParseDay("2024-05-09"))
	if got := ComputeStreak(l, monday); got != 1 {
		t.Fatalf("streak=%d, want 1", got)
	}
}

func TestBestStreakNeverDecreases(t *testing.T) {
	today := MustParseDay("2024-05-10")
	h := newTestHabit("h1", CategoryHealth)

	ops := []Day{
		today.AddDays(-4), today.AddDays(-3), today.AddDays(-2), today.AddDays(-1), today,
		today.AddDays(-2), // break the run in the middle
		today.AddDays(-1),
		today,
		today.AddDays(-2),
	}
	best := h.BestStreak
	for i, d := range ops {
		h.Toggle(d, today)
		if h.BestStreak < best {
			t.Fatalf("op %d: best went from %d to %d", i, best, h.BestStreak)
		}
		if h.BestStreak < h.Streak {
			t.Fatalf("op %d: best %d < current %d", i, h.BestStreak, h.Streak)
		}
		best = h.BestStreak
	}
	if h.BestStreak != 5 {
		t.Fatalf("best=%d, want 5", h.BestStreak)
	}
}

func TestHabitToggleReportsNewCompletion(t *testing.T) {
	today := MustParseDay("2024-05-10")
	h := newTestHabit("h1", CategoryHealth)
	if !h.Toggle(today, today) {
		t.Fatalf("expected newly completed")
	}
	if h.Streak != 1 || h.BestStreak != 1 {
		t.Fatalf("streak=%d best=%d, want 1/1", h.Streak, h.BestStreak)
	}
	if h.Toggle(today, today) {
		t.Fatalf("undo must not report a completion")
	}
	if h.Streak != 0 || h.BestStreak != 1 {
		t.Fatalf("after undo streak=%d best=%d, want 0/1", h.Streak, h.BestStreak)
	}
}

func TestLevelCurve(t *testing.T) {
	cases := []struct{ xp, level int }{
		{0, 1}, {99, 1}, {100, 2}, {399, 2}, {400, 3}, {899, 3}, {900, 4}, {1600, 5},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.level {
			t.Fatalf("LevelForXP(%d)=%d, want %d", c.xp, got, c.level)
		}
	}
	for n := 1; n <= 30; n++ {
		if got := LevelForXP(XPRequiredForLevel(n)); got != n {
			t.Fatalf("LevelForXP(XPRequiredForLevel(%d))=%d", n, got)
		}
	}
}

func TestAddXP(t *testing.T) {
	p := Progression{Level: 1}
	if p.AddXP(0) {
		t.Fatalf("AddXP(0) should not level up")
	}
	if p.XP != 0 || p.Level != 1 {
		t.Fatalf("AddXP(0) changed state: %+v", p)
	}
	if !p.AddXP(100) {
		t.Fatalf("AddXP(100) from 0 should level up")
	}
	if p.Level != 2 {
		t.Fatalf("level=%d, want 2", p.Level)
	}
	if p.AddXP(100) {
		t.Fatalf("200 XP should stay at level 2")
	}
	if p.XP != 200 || p.Level != 2 {
		t.Fatalf("got %+v, want xp=200 level=2", p)
	}
}

func TestAddXPNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on negative XP")
		}
	}()
	p := Progression{Level: 1}
	p.AddXP(-1)
}

func TestFirstStepUnlocksOnce(t *testing.T) {
	today := MustParseDay("2024-05-10")
	h := newTestHabit("h1", CategoryHealth)
	h.Toggle(today, today)
	habits := []Habit{h}
	p := Progression{Level: 1}

	first := EvaluateBadges(p, habits, testNow)
	if len(first) != 1 || first[0].ID != BadgeFirstStep {
		t.Fatalf("first evaluation=%v, want [first_step]", first)
	}
	if added := p.Award(first...); len(added) != 1 {
		t.Fatalf("award added %d, want 1", len(added))
	}

	if again := EvaluateBadges(p, habits, testNow); len(again) != 0 {
		t.Fatalf("second evaluation=%v, want empty", again)
	}
	if added := p.Award(first...); len(added) != 0 {
		t.Fatalf("re-award added %d, want 0", len(added))
	}
	if len(p.Badges) != 1 {
		t.Fatalf("badges=%d, want 1", len(p.Badges))
	}
}

func TestPolymathNeedsThreeActiveCategories(t *testing.T) {
	p := Progression{Level: 1}
	two := []Habit{
		newTestHabit("a", CategoryHealth),
		newTestHabit("b", CategoryHealth),
		newTestHabit("c", CategoryHealth),
		newTestHabit("d", CategoryLearning),
	}
	if hasBadge(EvaluateBadges(p, two, testNow), BadgePolymath) {
		t.Fatalf("polymath unlocked with 2 categories")
	}

	archived := newTestHabit("e", CategorySocial)
	archived.Archived = true
	if hasBadge(EvaluateBadges(p, append(two, archived), testNow), BadgePolymath) {
		t.Fatalf("archived habits must not count toward polymath")
	}

	three := append(two, newTestHabit("f", CategorySocial))
	if !hasBadge(EvaluateBadges(p, three, testNow), BadgePolymath) {
		t.Fatalf("polymath should unlock with 3 categories")
	}
}

func TestStreakAndLevelBadges(t *testing.T) {
	today := MustParseDay("2024-05-10")
	h := newTestHabit("h1", CategoryFitness)
	for i := 6; i >= 0; i-- {
		h.Toggle(today.AddDays(-i), today)
	}
	p := Progression{XP: XPRequiredForLevel(5), Level: 5}
	got := EvaluateBadges(p, []Habit{h}, testNow)
	for _, id := range []string{BadgeFirstStep, BadgeWeekWarrior, BadgeDedicated} {
		if !hasBadge(got, id) {
			t.Fatalf("missing %s in %v", id, got)
		}
	}
	if hasBadge(got, BadgeCenturion) {
		t.Fatalf("centurion unlocked with 7 completions")
	}
}

func TestCenturionCountsArchivedHabits(t *testing.T) {
	start := MustParseDay("2024-01-01")
	a := newTestHabit("a", CategoryHealth)
	b := newTestHabit("b", CategoryLearning)
	b.Archived = true
	for i := 0; i < 60; i++ {
		a.Logs.Toggle(start.AddDays(i))
		if i < 40 {
			b.Logs.Toggle(start.AddDays(i))
		}
	}
	got := EvaluateBadges(Progression{Level: 1}, []Habit{a, b}, testNow)
	if !hasBadge(got, BadgeCenturion) {
		t.Fatalf("centurion should unlock at 100 completions, got %v", got)
	}
}

func TestDedicatedFollowsXPNotStoredLevel(t *testing.T) {
	drifted := Progression{XP: 0, Level: 9}
	if hasBadge(EvaluateBadges(drifted, nil, testNow), BadgeDedicated) {
		t.Fatalf("dedicated unlocked from a stale level with 0 XP")
	}
	behind := Progression{XP: XPRequiredForLevel(5), Level: 1}
	if !hasBadge(EvaluateBadges(behind, nil, testNow), BadgeDedicated) {
		t.Fatalf("dedicated should unlock at level-5 XP")
	}
}

func TestJournalRejectsUnknownMood(t *testing.T) {
	var j Journal
	err := json.Unmarshal([]byte(`{"2024-05-10":{"note":"x","mood":"ecstatic","timestamp":"2024-05-10T09:30:00Z"}}`), &j)
	if err == nil {
		t.Fatalf("expected error for unknown mood")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "mood" {
		t.Fatalf("err=%v, want mood ValidationError", err)
	}
}

func TestJournalUpsert(t *testing.T) {
	d := MustParseDay("2024-05-10")
	var j Journal
	j.AddEntry(d, "first", MoodDifficult, testNow)
	j.AddEntry(d, "second", MoodGreat, testNow.Add(time.Hour))
	if j.Len() != 1 {
		t.Fatalf("len=%d, want 1", j.Len())
	}
	e, ok := j.Entry(d)
	if !ok || e.Note != "second" || e.Mood != MoodGreat {
		t.Fatalf("entry=%+v ok=%v", e, ok)
	}
	if _, err := ParseMood("ecstatic"); err == nil {
		t.Fatalf("expected invalid mood error")
	}
}

func TestHabitJSONRoundTrip(t *testing.T) {
	today := MustParseDay("2024-05-10")
	h := newTestHabit("h1", CategoryMindfulness)
	h.UserID = "u1"
	h.Description = "10 minutes"
	for i := 3; i >= 0; i-- {
		h.Toggle(today.AddDays(-i), today)
	}
	h.Toggle(today.AddDays(-2), today)
	h.Reflect(today, "calm", MoodNeutral, testNow)

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, k := range []string{"id", "name", "category", "frequency", "startDate", "streak", "bestStreak", "logs", "journal", "color", "archived", "userId"} {
		if _, ok := raw[k]; !ok {
			t.Fatalf("missing key %q in %s", k, data)
		}
	}
	if logs := raw["logs"].(map[string]any); logs["2024-05-10"] != true {
		t.Fatalf("logs=%v", logs)
	}

	var back Habit
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Streak != h.Streak || back.BestStreak != h.BestStreak {
		t.Fatalf("streaks %d/%d, want %d/%d", back.Streak, back.BestStreak, h.Streak, h.BestStreak)
	}
	if back.Logs.Count() != h.Logs.Count() {
		t.Fatalf("logs count=%d, want %d", back.Logs.Count(), h.Logs.Count())
	}
	for _, d := range h.Logs.Days() {
		if !back.Logs.IsCompleted(d) {
			t.Fatalf("lost completion %s", d)
		}
	}
	e, ok := back.Journal.Entry(today)
	if !ok || e.Note != "calm" || e.Mood != MoodNeutral || !e.Timestamp.Equal(testNow) {
		t.Fatalf("journal entry=%+v ok=%v", e, ok)
	}
	if back.StartDate != h.StartDate {
		t.Fatalf("startDate=%s, want %s", back.StartDate, h.StartDate)
	}
}

func TestLedgerDecodingDropsFalse(t *testing.T) {
	var l Ledger
	if err := json.Unmarshal([]byte(`{"2024-05-01": true, "2024-05-02": false}`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.Count() != 1 || !l.IsCompleted(MustParseDay("2024-05-01")) {
		t.Fatalf("ledger=%v", l.Days())
	}
}

func TestStartDateAcceptsTimestamp(t *testing.T) {
	var h Habit
	if err := json.Unmarshal([]byte(`{"id":"1","startDate":"2024-02-03T10:00:00.000Z"}`), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if h.StartDate.String() != "2024-02-03" {
		t.Fatalf("startDate=%s", h.StartDate)
	}
}

func TestUserJSONShape(t *testing.T) {
	u := NewUser("u1", "Ada", "ada@example.com")
	u.AddXP(150)
	u.Award(EvaluateBadges(u.Progression, nil, testNow)...)
	u.Award(Catalog[0].Badge(testNow))

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["xp"].(float64) != 150 || raw["level"].(float64) != 2 {
		t.Fatalf("xp/level not flattened: %s", data)
	}
	badges := raw["badges"].([]any)
	if len(badges) != 1 || badges[0].(map[string]any)["unlockedAt"] == nil {
		t.Fatalf("badges=%v", badges)
	}
}

func TestParseInputs(t *testing.T) {
	if c, err := ParseCategory("Growth"); err != nil || c != CategoryLearning {
		t.Fatalf("ParseCategory(Growth)=%q, %v", c, err)
	}
	if _, err := ParseCategory("cooking"); err == nil {
		t.Fatalf("expected unknown category error")
	}
	if f, err := ParseFrequency(""); err != nil || f != FrequencyDaily {
		t.Fatalf("ParseFrequency(\"\")=%q, %v", f, err)
	}
	if c, err := ParseColor("5cb85c"); err != nil || c != "#5CB85C" {
		t.Fatalf("ParseColor=%q, %v", c, err)
	}
	if _, err := ParseColor("green"); err == nil {
		t.Fatalf("expected color error")
	}
}

func hasBadge(badges []Badge, id string) bool {
	for _, b := range badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
