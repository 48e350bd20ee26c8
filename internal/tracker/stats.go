package tracker

import (
	"context"
	"math"
	"sort"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
)

// DayStat is the share of active habits completed on one day.
type DayStat struct {
	Day       engine.Day
	Completed int
	Total     int
	Percent   int
}

type StreakStat struct {
	HabitID    string
	Name       string
	Color      string
	BestStreak int
}

type Stats struct {
	TotalCheckIns int
	// WeeklyConsistency is the mean of Week's percentages.
	WeeklyConsistency int
	LongestStreak     int
	Week              []DayStat
	TopStreaks        []StreakStat
	Progression       engine.Progression
}

const topStreakCount = 5

// ComputeStats summarizes habits over the seven days ending on today. Archived habits
// count toward check-ins and best streaks but not toward the weekly percentages.
func ComputeStats(habits []engine.Habit, today engine.Day) Stats {
	var st Stats
	st.TotalCheckIns = engine.TotalCompletions(habits)

	active := 0
	for _, h := range habits {
		if !h.Archived {
			active++
		}
		if h.BestStreak > st.LongestStreak {
			st.LongestStreak = h.BestStreak
		}
	}

	sum := 0
	for i := 6; i >= 0; i-- {
		d := today.AddDays(-i)
		ds := DayStat{Day: d, Total: active}
		for _, h := range habits {
			if !h.Archived && h.IsCompleted(d) {
				ds.Completed++
			}
		}
		if active > 0 {
			ds.Percent = percent(ds.Completed, active)
		}
		sum += ds.Percent
		st.Week = append(st.Week, ds)
	}
	if active > 0 {
		st.WeeklyConsistency = int(math.Round(float64(sum) / 7))
	}

	sorted := make([]engine.Habit, len(habits))
	copy(sorted, habits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].BestStreak > sorted[j].BestStreak })
	for i := 0; i < len(sorted) && i < topStreakCount; i++ {
		h := sorted[i]
		st.TopStreaks = append(st.TopStreaks, StreakStat{HabitID: h.ID, Name: h.Name, Color: h.Color, BestStreak: h.BestStreak})
	}
	return st
}

func percent(n, total int) int {
	return int(math.Round(float64(n) * 100 / float64(total)))
}

// Stats returns the analytics summary for the signed-in user.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.loadHabits(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	owned := ownedHabits(habits, u)
	for i := range owned {
		owned[i].Refresh(today)
	}
	st := ComputeStats(owned, today)
	st.Progression = u.Progression
	return &st, nil
}
