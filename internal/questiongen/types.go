// Package questiongen turns source text into quiz tasks using an LLM
// provider.
package questiongen

import (
	"context"

	"github.com/abhisek/quizlab/internal/quiz"
)

// Kind selects the shape of generated questions.
type Kind string

const (
	// KindClosed is multiple choice with exactly one correct answer.
	KindClosed Kind = "closed"
	// KindClosedMulti is multiple choice with two or more correct answers.
	KindClosedMulti Kind = "closed-multi"
	// KindOpen is free text, graded by the LLM.
	KindOpen Kind = "open"
)

// ContentFocus selects which parts of the source text questions target.
type ContentFocus string

const (
	FocusAll       ContentFocus = "all"
	FocusImportant ContentFocus = "important"
)

// Difficulty selects the difficulty band of generated questions.
type Difficulty string

const (
	DifficultyMixed  Difficulty = "mixed"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Style selects whether questions test concepts or recall of the text.
type Style string

const (
	StyleConceptual Style = "conceptual"
	StyleTextBased  Style = "text-based"
)

// Settings controls one generation run.
type Settings struct {
	OpenCount   int
	ClosedCount int

	// AllowMultipleCorrect mixes single- and multi-answer closed questions;
	// ForceMultipleCorrect makes every closed question multi-answer.
	AllowMultipleCorrect bool
	ForceMultipleCorrect bool

	ContentFocus       ContentFocus
	Difficulty         Difficulty
	Style              Style
	CustomInstructions string

	MinAnswersPerQuestion int
	MaxAnswersPerQuestion int
}

// Normalize fills unset fields with defaults.
func (s Settings) Normalize() Settings {
	if s.ContentFocus == "" {
		s.ContentFocus = FocusImportant
	}
	if s.Difficulty == "" {
		s.Difficulty = DifficultyMixed
	}
	if s.Style == "" {
		s.Style = StyleConceptual
	}
	if s.MinAnswersPerQuestion < 2 {
		s.MinAnswersPerQuestion = 4
	}
	if s.MaxAnswersPerQuestion < s.MinAnswersPerQuestion {
		s.MaxAnswersPerQuestion = s.MinAnswersPerQuestion
	}
	return s
}

// Generator produces quiz tasks from source text.
type Generator interface {
	Generate(ctx context.Context, sourceText string, settings Settings) ([]quiz.Task, error)
}
