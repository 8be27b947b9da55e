package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizlab/internal/gamification"
)

func testData() Data {
	return Data{
		Correct:     5,
		Incorrect:   2,
		Accuracy:    71.4,
		LearntCount: 3,
		Bonus:       64,
		TotalPoints: 412,
		BestStreak:  4,
		Unlocked: []gamification.Achievement{
			{ID: "first_steps", Name: "First Steps", Description: "Answer your first question", Points: 10},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testData())
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testData())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	for _, want := range []string{"Correct: 5", "Questions learnt: 3", "+64 points", "First Steps"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NoAchievementsSection(t *testing.T) {
	d := testData()
	d.Unlocked = nil
	view := New(d).View(80, 24)
	if strings.Contains(view, "New achievements") {
		t.Error("expected no achievements section without unlocks")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testData())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testData())
	if len(s.KeyHints()) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(s.KeyHints()))
	}
}
