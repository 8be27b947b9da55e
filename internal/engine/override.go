package engine

import (
	"github.com/abhisek/quizlab/internal/pool"
	"github.com/abhisek/quizlab/internal/quiz"
)

// Accept treats the learner's answer as correct. The answer key is
// rewritten on the canonical task and every pending pool instance. When the
// round had been scored as a loss, the retries injected for it are
// withdrawn and the counters are flipped; on an already-won round only the
// answer key changes. The round stays on screen: the caller advances with
// Next as usual.
func Accept(s State) (State, Outcome, error) {
	if s.Current == nil {
		return s, Outcome{}, ErrNoCurrentTask
	}
	if !s.Checked {
		return s, Outcome{}, ErrNotChecked
	}

	ov := quiz.AnswerOverride{OverriddenAt: now()}
	if s.Current.Question.IsOpen {
		ov.AcceptedOpenAnswer = s.OpenAnswer
	} else {
		ov.CorrectAnswerIndices = s.Current.SelectedIndices()
	}

	cur := s.Current.Clone()
	applyOverride(&cur, ov)
	s.Current = &cur

	tasks := s.cloneTasks()
	for i := range tasks {
		if tasks[i].ID == cur.ID {
			applyOverride(&tasks[i], ov)
		}
	}
	s.Tasks = tasks

	p := s.clonePool()
	if !s.RoundWon {
		p = pool.RemoveRetries(p, cur.ID)
	}
	for i := range p {
		if p[i].ID == cur.ID {
			applyOverride(&p[i], ov)
		}
	}
	s.Pool = p

	wasLearnt := s.Learnt[cur.ID]
	learnt := s.cloneLearnt()
	learnt[cur.ID] = true
	s.Learnt = learnt

	if !s.RoundWon {
		s.RoundWon = true
		s.Correct++
		if s.Incorrect > 0 {
			s.Incorrect--
		}
	}
	return s, Outcome{
		Won:         true,
		Score:       s.OpenScore,
		WasRetry:    cur.IsRetry,
		NewlyLearnt: !wasLearnt,
	}, nil
}

// applyOverride rewrites a task's answer key in place from an accepted
// answer. Closed tasks get their correct flags replaced by the accepted
// selection; open tasks carry the accepted text for the grader.
func applyOverride(t *quiz.Task, ov quiz.AnswerOverride) {
	o := ov
	t.Override = &o
	if t.Question.IsOpen {
		return
	}
	accepted := make(map[int]bool, len(ov.CorrectAnswerIndices))
	for _, i := range ov.CorrectAnswerIndices {
		accepted[i] = true
	}
	for i := range t.Answers {
		t.Answers[i].IsCorrect = accepted[i]
	}
}

// Remove drops the current task from the quiz entirely: the canonical task
// is flagged removed, every pool copy is purged, the learnt entry is
// deleted, any counter update from the current round is undone, and the
// session advances to the next task.
func Remove(s State) (State, error) {
	if s.Current == nil {
		return s, ErrNoCurrentTask
	}
	if !s.Checked {
		return s, ErrNotChecked
	}
	id := s.Current.ID

	tasks := s.cloneTasks()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].IsRemoved = true
		}
	}
	s.Tasks = tasks
	s.Pool = pool.RemoveID(s.clonePool(), id)

	if s.Learnt[id] {
		learnt := s.cloneLearnt()
		delete(learnt, id)
		s.Learnt = learnt
	}

	if s.RoundWon && s.Correct > 0 {
		s.Correct--
	}
	if !s.RoundWon && s.Incorrect > 0 {
		s.Incorrect--
	}
	return drawNext(s), nil
}
