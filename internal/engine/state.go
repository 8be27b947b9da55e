// Package engine is the adaptive quiz session state machine. It turns a
// static list of generated tasks into a repeating practice loop: a
// multiplicity-weighted shuffled pool of pending instances, retry
// re-injection on failure, user overrides, and resumable progress.
//
// All transitions are pure functions from one State value to the next so the
// engine stays testable and independent of the UI layer. The only suspension
// point — grading an open answer — happens outside the engine: the caller
// runs the grader and feeds the score back through ApplyOpenScore.
package engine

import (
	"errors"
	"math/rand/v2"

	"github.com/abhisek/quizlab/internal/pool"
	"github.com/abhisek/quizlab/internal/quiz"
)

var (
	// ErrNoCurrentTask is returned when a transition needs a drawn task and
	// none is active.
	ErrNoCurrentTask = errors.New("no current task")

	// ErrAlreadyChecked is returned when CheckClosed or ApplyOpenScore is
	// called twice for the same round.
	ErrAlreadyChecked = errors.New("round already checked")

	// ErrNotChecked is returned when a transition requires a checked round.
	ErrNotChecked = errors.New("round not checked yet")

	// ErrWrongKind is returned when a closed check is applied to an open
	// task or vice versa.
	ErrWrongKind = errors.New("check does not match question kind")
)

// Config holds the pool settings the engine consumes. All values are
// positive; Normalize clamps anything below 1.
type Config struct {
	PoolSize             int // fresh copies of each task at quiz start
	FailedOriginalCopies int // retries injected when a fresh instance fails
	FailedRetryCopies    int // retries injected when a retry instance fails
}

// Normalize returns the config with all values clamped to >= 1.
func (c Config) Normalize() Config {
	if c.PoolSize < 1 {
		c.PoolSize = 1
	}
	if c.FailedOriginalCopies < 1 {
		c.FailedOriginalCopies = 1
	}
	if c.FailedRetryCopies < 1 {
		c.FailedRetryCopies = 1
	}
	return c
}

// State is the full session state. Transition functions return a new State;
// callers must not mutate a State they have handed to the engine.
type State struct {
	// Tasks is the canonical task list. Immutable during a session except
	// for IsRemoved and Override patches applied by Accept and Remove.
	Tasks []quiz.Task

	// Pool is the shuffled queue of pending instances.
	Pool []quiz.Task

	// Current is the task being answered, nil between rounds.
	Current *quiz.Task

	Checked  bool // the current round has been scored
	RoundWon bool
	Started  bool
	Ended    bool

	// OpenAnswer is the learner's free text for the current open round.
	OpenAnswer string
	// OpenScore is the grading result of the last checked open round.
	OpenScore int

	// Learnt is the set of task ids that reached at least one success this
	// session.
	Learnt map[string]bool

	Correct   int
	Incorrect int
}

// New builds a fresh, not-started session over the given canonical tasks.
func New(tasks []quiz.Task, cfg Config, rng *rand.Rand) State {
	cfg = cfg.Normalize()
	return State{
		Tasks:  tasks,
		Pool:   pool.Build(tasks, cfg.PoolSize, rng),
		Learnt: map[string]bool{},
	}
}

// TotalQuestions returns the number of canonical non-removed tasks.
func (s State) TotalQuestions() int {
	return len(quiz.NonRemoved(s.Tasks))
}

// Accuracy returns the session accuracy in percent, 0 when nothing was
// answered.
func (s State) Accuracy() float64 {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total) * 100
}

// cloneLearnt copies the learnt set for copy-on-write transitions.
func (s State) cloneLearnt() map[string]bool {
	m := make(map[string]bool, len(s.Learnt))
	for k, v := range s.Learnt {
		m[k] = v
	}
	return m
}

// cloneTasks copies the canonical list so override patches do not alias the
// previous state.
func (s State) cloneTasks() []quiz.Task {
	out := make([]quiz.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		out[i] = t.Clone()
	}
	return out
}

// clonePool copies the pool slice (instances are copied shallowly and then
// replaced wholesale wherever they are patched).
func (s State) clonePool() []quiz.Task {
	out := make([]quiz.Task, len(s.Pool))
	for i, t := range s.Pool {
		out[i] = t.Clone()
	}
	return out
}
