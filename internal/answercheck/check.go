// Package answercheck decides whether a single answered task won its round.
// It never mutates the task; selection clearing and retry flags belong to
// the pool.
package answercheck

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizlab/internal/quiz"
)

// ErrScoreOutOfRange reports a grading score outside [0,100].
var ErrScoreOutOfRange = errors.New("grading score out of range [0,100]")

// OpenWinThreshold is the minimum grading score that counts as a win for an
// open question.
const OpenWinThreshold = 51

// Grader scores a free-text answer against the source text on a 0-100 scale.
// acceptedAnswer, when non-empty, is a previously user-accepted answer the
// grader should treat leniently.
type Grader interface {
	CheckOpenAnswer(ctx context.Context, sourceText, question, answer, acceptedAnswer string) (int, error)
}

// GradingError reports a failed or out-of-range grading call. The round
// stays unchecked and the caller may retry.
type GradingError struct {
	Score int // the out-of-range value, if one was returned
	Err   error
}

func (e *GradingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("grading open answer: %v", e.Err)
	}
	return fmt.Sprintf("grading open answer: score %d out of range [0,100]", e.Score)
}

func (e *GradingError) Unwrap() error { return e.Err }

// ClosedScore computes the net score of a closed question: +1 per selected
// correct answer, -1 per selected incorrect one, 0 for unselected answers.
func ClosedScore(answers []quiz.Answer) int {
	score := 0
	for _, a := range answers {
		if !a.IsSelected {
			continue
		}
		if a.IsCorrect {
			score++
		} else {
			score--
		}
	}
	return score
}

// CheckClosed scores a closed task. The round is won iff the net score
// equals the number of correct answers, i.e. exactly the correct subset was
// selected, no more, no less.
func CheckClosed(t quiz.Task) (score int, won bool) {
	score = ClosedScore(t.Answers)
	return score, score == t.CorrectCount()
}

// OpenWon reports whether a grading score wins the round.
func OpenWon(score int) bool {
	return score >= OpenWinThreshold
}

// ValidScore reports whether a grading score is in the accepted range.
func ValidScore(score int) bool {
	return score >= 0 && score <= 100
}
