package answercheck

import (
	"testing"

	"github.com/abhisek/quizlab/internal/quiz"
)

func taskWith(selected []int) quiz.Task {
	// Two correct answers followed by two incorrect ones.
	answers := []quiz.Answer{
		{Text: "a", IsCorrect: true},
		{Text: "b", IsCorrect: true},
		{Text: "c"},
		{Text: "d"},
	}
	for _, i := range selected {
		answers[i].IsSelected = true
	}
	return quiz.Task{ID: "t", Answers: answers}
}

func TestCheckClosed(t *testing.T) {
	tests := []struct {
		name      string
		selected  []int
		wantScore int
		wantWon   bool
	}{
		{"exactly the correct subset", []int{0, 1}, 2, true},
		{"one correct only", []int{0}, 1, false},
		{"everything selected", []int{0, 1, 2, 3}, 0, false},
		{"nothing selected", nil, 0, false},
		{"one correct one wrong", []int{0, 2}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, won := CheckClosed(taskWith(tt.selected))
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if won != tt.wantWon {
				t.Errorf("won = %v, want %v", won, tt.wantWon)
			}
		})
	}
}

func TestOpenWon_Threshold(t *testing.T) {
	if OpenWon(50) {
		t.Error("OpenWon(50) = true, want false")
	}
	if !OpenWon(51) {
		t.Error("OpenWon(51) = false, want true")
	}
}

func TestValidScore(t *testing.T) {
	for _, score := range []int{0, 51, 100} {
		if !ValidScore(score) {
			t.Errorf("ValidScore(%d) = false, want true", score)
		}
	}
	for _, score := range []int{-1, 101} {
		if ValidScore(score) {
			t.Errorf("ValidScore(%d) = true, want false", score)
		}
	}
}

func TestGradingError_Message(t *testing.T) {
	err := &GradingError{Score: 140}
	if err.Error() == "" {
		t.Error("empty error message")
	}
}
