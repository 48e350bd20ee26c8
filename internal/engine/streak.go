package engine

// ComputeStreak returns the current streak of l as seen on today.
//
// The walk is anchored at today when today is completed, otherwise at yesterday
// when yesterday is completed (today can still be checked in before midnight).
// With neither, the streak is 0. Every calendar day counts; frequency is not consulted.
func ComputeStreak(l Ledger, today Day) int {
	cur := today
	if !l.IsCompleted(cur) {
		cur = today.AddDays(-1)
		if !l.IsCompleted(cur) {
			return 0
		}
	}

	streak := 0
	for l.IsCompleted(cur) {
		streak++
		cur = cur.AddDays(-1)
	}
	return streak
}

// RatchetBest returns the best streak after observing current.
// Best only ever moves forward; it is not recomputed from history, so unmarking
// a day inside an earlier best run leaves the recorded best untouched.
func RatchetBest(previousBest, current int) int {
	if current > previousBest {
		return current
	}
	return previousBest
}

// LongestRun returns the longest run of consecutive completed days anywhere in l.
// It is informational (stats) and never feeds BestStreak.
func LongestRun(l Ledger) int {
	best, run := 0, 0
	var prev Day
	for i, d := range l.Days() {
		if i > 0 && prev.AddDays(1) == d {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		prev = d
	}
	return best
}
