package quiz

import "time"

// Question is the immutable content of a single quiz question.
// IsOpen selects the grading mode: free-text (graded by the LLM) when true,
// multi-select when false.
type Question struct {
	Text   string `json:"text"`
	IsOpen bool   `json:"isOpen"`
}

// Answer is one option of a closed question. IsCorrect is the ground truth
// (possibly rewritten by an override); IsSelected is per-instance scratch
// state mutated while the learner answers a round.
type Answer struct {
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
	IsSelected bool   `json:"isSelected,omitempty"`
}

// AnswerOverride records a user correction that supersedes the generated
// ground truth for a task.
type AnswerOverride struct {
	// CorrectAnswerIndices is the accepted correct set for closed questions.
	CorrectAnswerIndices []int `json:"correctAnswerIndices,omitempty"`

	// AcceptedOpenAnswer is the accepted free-text answer for open questions,
	// passed to the grader as a leniency hint on later retries.
	AcceptedOpenAnswer string `json:"acceptedOpenAnswer,omitempty"`

	// Hint and Explanation cache generated helper text for this question.
	Hint        string `json:"hint,omitempty"`
	Explanation string `json:"explanation,omitempty"`

	OverriddenAt time.Time `json:"overriddenAt"`
}

// Task is one live instance of a question: the unit drawn from the pool and
// tracked through a session. Instances sharing an ID are copies of the same
// canonical task; overrides apply to all of them.
type Task struct {
	ID       string   `json:"id"`
	Question Question `json:"question"`
	Answers  []Answer `json:"answers,omitempty"` // nil for open questions

	// IsRetry marks an instance spawned by a prior failure of this task.
	IsRetry bool `json:"isRetry,omitempty"`

	// IsRemoved marks a canonical task excluded by the user.
	IsRemoved bool `json:"isRemoved,omitempty"`

	Override *AnswerOverride `json:"answerOverride,omitempty"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.Answers != nil {
		c.Answers = make([]Answer, len(t.Answers))
		copy(c.Answers, t.Answers)
	}
	if t.Override != nil {
		o := *t.Override
		if t.Override.CorrectAnswerIndices != nil {
			o.CorrectAnswerIndices = append([]int(nil), t.Override.CorrectAnswerIndices...)
		}
		c.Override = &o
	}
	return c
}

// FreshCopy returns a deep copy with per-round scratch state cleared and the
// retry flag set as given.
func (t Task) FreshCopy(isRetry bool) Task {
	c := t.Clone()
	c.IsRetry = isRetry
	for i := range c.Answers {
		c.Answers[i].IsSelected = false
	}
	return c
}

// CorrectCount returns the number of answers marked correct. Zero for open
// questions.
func (t Task) CorrectCount() int {
	n := 0
	for _, a := range t.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// SelectedIndices returns the indices of currently selected answers.
func (t Task) SelectedIndices() []int {
	var idx []int
	for i, a := range t.Answers {
		if a.IsSelected {
			idx = append(idx, i)
		}
	}
	return idx
}

// NonRemoved filters out tasks the user removed.
func NonRemoved(tasks []Task) []Task {
	var out []Task
	for _, t := range tasks {
		if !t.IsRemoved {
			out = append(out, t)
		}
	}
	return out
}
