package engine

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/quizlab/internal/answercheck"
	"github.com/abhisek/quizlab/internal/pool"
	"github.com/abhisek/quizlab/internal/quiz"
)

// Outcome describes what a scoring transition did, for callers that award
// points and track stats.
type Outcome struct {
	Won          bool
	Score        int  // open questions only, 0..100
	WasRetry     bool // the answered instance was a re-injected copy
	NewlyLearnt  bool // the task id entered the learnt set on this round
	RetriesAdded int  // copies re-injected into the pool on a loss
}

// Start begins the session and draws the first task.
func Start(s State) State {
	s.Started = true
	return drawNext(s)
}

// Next advances past a checked round. It returns ErrNotChecked when the
// current round has not been scored.
func Next(s State) (State, error) {
	if s.Current == nil {
		return s, ErrNoCurrentTask
	}
	if !s.Checked {
		return s, ErrNotChecked
	}
	return drawNext(s), nil
}

// drawNext pops the pool head into Current and resets round state. An empty
// pool ends the quiz.
func drawNext(s State) State {
	s.Checked = false
	s.RoundWon = false
	s.OpenAnswer = ""
	s.OpenScore = 0
	next, rest, ok := pool.DrawNext(s.Pool)
	if !ok {
		s.Current = nil
		s.Pool = nil
		s.Ended = true
		return s
	}
	s.Current = &next
	s.Pool = rest
	return s
}

// ToggleAnswer flips the selection on answer i of the current closed task.
// It is a no-op after the round is checked or when i is out of range.
func ToggleAnswer(s State, i int) State {
	if s.Current == nil || s.Checked || s.Current.Question.IsOpen {
		return s
	}
	if i < 0 || i >= len(s.Current.Answers) {
		return s
	}
	cur := s.Current.Clone()
	cur.Answers[i].IsSelected = !cur.Answers[i].IsSelected
	s.Current = &cur
	return s
}

// SetOpenAnswer records the free-text answer for the current open task.
func SetOpenAnswer(s State, text string) State {
	if s.Current == nil || s.Checked || !s.Current.Question.IsOpen {
		return s
	}
	s.OpenAnswer = text
	return s
}

// CheckClosed scores the current closed round: one point per correct
// selection, minus one per wrong selection, won only on a full match. A loss
// re-injects retry copies and reshuffles the pool.
func CheckClosed(s State, rng *rand.Rand, cfg Config) (State, Outcome, error) {
	if s.Current == nil {
		return s, Outcome{}, ErrNoCurrentTask
	}
	if s.Checked {
		return s, Outcome{}, ErrAlreadyChecked
	}
	if s.Current.Question.IsOpen {
		return s, Outcome{}, ErrWrongKind
	}
	_, won := answercheck.CheckClosed(*s.Current)
	return settleRound(s, won, 0, rng, cfg), Outcome{
		Won:          won,
		WasRetry:     s.Current.IsRetry,
		NewlyLearnt:  won && !s.Learnt[s.Current.ID],
		RetriesAdded: retriesFor(*s.Current, won, cfg),
	}, nil
}

// ApplyOpenScore feeds a grader score (0..100) back into the session for the
// current open round. The pass mark is answercheck.OpenWinThreshold.
func ApplyOpenScore(s State, score int, rng *rand.Rand, cfg Config) (State, Outcome, error) {
	if s.Current == nil {
		return s, Outcome{}, ErrNoCurrentTask
	}
	if s.Checked {
		return s, Outcome{}, ErrAlreadyChecked
	}
	if !s.Current.Question.IsOpen {
		return s, Outcome{}, ErrWrongKind
	}
	if !answercheck.ValidScore(score) {
		return s, Outcome{}, answercheck.ErrScoreOutOfRange
	}
	won := answercheck.OpenWon(score)
	next := settleRound(s, won, score, rng, cfg)
	return next, Outcome{
		Won:          won,
		Score:        score,
		WasRetry:     s.Current.IsRetry,
		NewlyLearnt:  won && !s.Learnt[s.Current.ID],
		RetriesAdded: retriesFor(*s.Current, won, cfg),
	}, nil
}

// settleRound applies a win or loss to the session: counters, the learnt
// set, and on a loss the retry re-injection with a full reshuffle.
func settleRound(s State, won bool, score int, rng *rand.Rand, cfg Config) State {
	cfg = cfg.Normalize()
	s.Checked = true
	s.RoundWon = won
	s.OpenScore = score
	if won {
		s.Correct++
		learnt := s.cloneLearnt()
		learnt[s.Current.ID] = true
		s.Learnt = learnt
		return s
	}
	s.Incorrect++
	copies := cfg.FailedOriginalCopies
	if s.Current.IsRetry {
		copies = cfg.FailedRetryCopies
	}
	s.Pool = pool.Reinject(s.clonePool(), *s.Current, copies, rng)
	return s
}

func retriesFor(t quiz.Task, won bool, cfg Config) int {
	if won {
		return 0
	}
	cfg = cfg.Normalize()
	if t.IsRetry {
		return cfg.FailedRetryCopies
	}
	return cfg.FailedOriginalCopies
}

// Reset rebuilds the pool from the canonical tasks (keeping removals and
// overrides) and starts a new run with cleared counters.
func Reset(s State, cfg Config, rng *rand.Rand) State {
	return Start(New(s.Tasks, cfg, rng))
}

// now is swapped in override tests.
var now = time.Now
