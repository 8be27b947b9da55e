// Package gamification converts answer and quiz outcomes into points,
// streaks, and achievement unlocks, and keeps the cumulative player stats.
package gamification

import (
	"math"
	"strconv"
	"time"
)

// Base point values.
const (
	CorrectAnswerPoints = 10
	RetryCorrectPoints  = 5
	LearntBonusPoints   = 25
	QuizCompletePoints  = 50
)

// Answer-time thresholds for the speed multiplier.
const (
	lightningTime = 3 * time.Second
	fastTime      = 5 * time.Second
	goodTime      = 10 * time.Second
	normalTime    = 20 * time.Second
)

// streakTier maps a minimum streak length to its point multiplier. Checked
// highest first; only the best matching tier applies.
type streakTier struct {
	threshold  int
	multiplier float64
}

var streakTiers = []streakTier{
	{20, 3.0},
	{10, 2.0},
	{5, 1.5},
	{3, 1.25},
}

// PointsBreakdown itemizes how an answer's points were computed, for the
// score popup.
type PointsBreakdown struct {
	Base             int
	TimeMultiplier   float64
	StreakMultiplier float64
	Total            int
	BonusReasons     []string
}

// CalculatePoints scores a single answered round. Incorrect answers earn
// nothing. Correct answers start from the base (reduced for retries) and are
// scaled by how fast the answer came and by the running streak.
func CalculatePoints(correct bool, elapsed time.Duration, streak int, isRetry bool) PointsBreakdown {
	if !correct {
		return PointsBreakdown{TimeMultiplier: 1, StreakMultiplier: 1}
	}

	base := CorrectAnswerPoints
	if isRetry {
		base = RetryCorrectPoints
	}

	var reasons []string
	timeMult := 0.8
	switch {
	case elapsed < lightningTime:
		timeMult = 2.0
		reasons = append(reasons, "Lightning fast!")
	case elapsed < fastTime:
		timeMult = 1.5
		reasons = append(reasons, "Quick answer!")
	case elapsed < goodTime:
		timeMult = 1.2
		reasons = append(reasons, "Good pace")
	case elapsed < normalTime:
		timeMult = 1.0
	}

	streakMult := 1.0
	for _, tier := range streakTiers {
		if streak >= tier.threshold {
			streakMult = tier.multiplier
			reasons = append(reasons, streakReason(streak))
			break
		}
	}

	return PointsBreakdown{
		Base:             base,
		TimeMultiplier:   timeMult,
		StreakMultiplier: streakMult,
		Total:            int(math.Round(float64(base) * timeMult * streakMult)),
		BonusReasons:     reasons,
	}
}

func streakReason(streak int) string {
	return strconv.Itoa(streak) + " streak!"
}

// LearntBonus is the flat award for mastering a question.
func LearntBonus() int {
	return LearntBonusPoints
}

// QuizCompleteBonus scales the completion award by session accuracy, up to
// double for a perfect run. accuracy is in percent.
func QuizCompleteBonus(accuracy float64) int {
	return int(math.Round(QuizCompletePoints * (1 + accuracy/100)))
}
