package questiongen

import "errors"

// Validation errors for generated questions.
var (
	errEmptyQuestion   = errors.New("question text is empty")
	errEmptyAnswer     = errors.New("answer text is empty")
	errTooFewAnswers   = errors.New("closed question needs at least two answers")
	errNoCorrectAnswer = errors.New("closed question has no correct answer")
)

// validateQuestion checks a raw generated question before assembly. A
// question with answers is closed and must carry at least two of them,
// at least one marked correct; without that, every round on it would be
// unwinnable or trivially won by selecting nothing.
func validateQuestion(q generatedQuestion) error {
	if q.Question == "" {
		return errEmptyQuestion
	}
	if len(q.Answers) == 0 {
		return nil // open question
	}
	if len(q.Answers) < 2 {
		return errTooFewAnswers
	}
	hasCorrect := false
	for _, a := range q.Answers {
		if a.Content == "" {
			return errEmptyAnswer
		}
		if a.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return errNoCorrectAnswer
	}
	return nil
}
