package gamification

import (
	"testing"
	"time"
)

func TestCalculatePoints_Incorrect(t *testing.T) {
	b := CalculatePoints(false, time.Second, 5, false)
	if b.Total != 0 {
		t.Errorf("Total = %d, want 0", b.Total)
	}
	if b.Base != 0 {
		t.Errorf("Base = %d, want 0", b.Base)
	}
}

func TestCalculatePoints_TimeTiers(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{2 * time.Second, 2.0},
		{4 * time.Second, 1.5},
		{8 * time.Second, 1.2},
		{15 * time.Second, 1.0},
		{30 * time.Second, 0.8},
	}
	for _, tt := range tests {
		b := CalculatePoints(true, tt.elapsed, 0, false)
		if b.TimeMultiplier != tt.want {
			t.Errorf("TimeMultiplier(%v) = %v, want %v", tt.elapsed, b.TimeMultiplier, tt.want)
		}
	}
}

func TestCalculatePoints_StreakTiers(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{2, 1.0},
		{3, 1.25},
		{5, 1.5},
		{10, 2.0},
		{20, 3.0},
		{25, 3.0},
	}
	for _, tt := range tests {
		b := CalculatePoints(true, 15*time.Second, tt.streak, false)
		if b.StreakMultiplier != tt.want {
			t.Errorf("StreakMultiplier(streak=%d) = %v, want %v", tt.streak, b.StreakMultiplier, tt.want)
		}
	}
}

func TestCalculatePoints_RetryBase(t *testing.T) {
	fresh := CalculatePoints(true, 15*time.Second, 0, false)
	retry := CalculatePoints(true, 15*time.Second, 0, true)
	if fresh.Base != CorrectAnswerPoints {
		t.Errorf("fresh Base = %d, want %d", fresh.Base, CorrectAnswerPoints)
	}
	if retry.Base != RetryCorrectPoints {
		t.Errorf("retry Base = %d, want %d", retry.Base, RetryCorrectPoints)
	}
}

func TestCalculatePoints_Rounding(t *testing.T) {
	// Base 10 at 1.5x time and 1.25x streak is 18.75, rounded to 19.
	b := CalculatePoints(true, 4*time.Second, 3, false)
	if b.Total != 19 {
		t.Errorf("Total = %d, want 19", b.Total)
	}
}

func TestQuizCompleteBonus(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     int
	}{
		{0, 50},
		{50, 75},
		{100, 100},
	}
	for _, tt := range tests {
		if got := QuizCompleteBonus(tt.accuracy); got != tt.want {
			t.Errorf("QuizCompleteBonus(%v) = %d, want %d", tt.accuracy, got, tt.want)
		}
	}
}

func TestLearntBonus(t *testing.T) {
	if LearntBonus() != 25 {
		t.Errorf("LearntBonus() = %d, want 25", LearntBonus())
	}
}
