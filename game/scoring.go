package game

import "time"

// Score tables by difficulty tier. Unknown tiers fall back to tier 1.
var (
	baseScores = map[int]int{1: 30, 2: 60, 3: 100}
	penalties  = map[int]int{1: -20, 2: -30, 3: -40}
)

// Score computes the score delta for a single guess. It depends on nothing
// but its arguments.
//
// Correct guesses earn base(difficulty) plus a speed bonus of
// floor(base * timeRemaining / roundDuration), so the delta stays within
// [base, 2*base]. Incorrect guesses cost a flat penalty by difficulty,
// independent of time.
func Score(correct bool, difficulty int, timeRemaining, roundDuration time.Duration) int {
	if !correct {
		if p, ok := penalties[difficulty]; ok {
			return p
		}
		return penalties[1]
	}

	base, ok := baseScores[difficulty]
	if !ok {
		base = baseScores[1]
	}
	if roundDuration <= 0 {
		return base
	}

	if timeRemaining < 0 {
		timeRemaining = 0
	}
	if timeRemaining > roundDuration {
		timeRemaining = roundDuration
	}

	bonus := int(int64(base) * timeRemaining.Nanoseconds() / roundDuration.Nanoseconds())
	return base + bonus
}
