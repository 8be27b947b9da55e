package quiz

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizlab/internal/answercheck"
	"github.com/abhisek/quizlab/internal/engine"
	"github.com/abhisek/quizlab/internal/gamification"
	"github.com/abhisek/quizlab/internal/grader"
	qz "github.com/abhisek/quizlab/internal/quiz"
	"github.com/abhisek/quizlab/internal/router"
	"github.com/abhisek/quizlab/internal/screen"
	"github.com/abhisek/quizlab/internal/screens/summary"
	"github.com/abhisek/quizlab/internal/ui/components"
	"github.com/abhisek/quizlab/internal/ui/layout"
)

// stateStore is the keyed snapshot storage the quiz screen persists to.
type stateStore interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Clear(key string) error
}

// QuizScreen runs one quiz session: draw, answer, check, repeat.
type QuizScreen struct {
	st         stateStore
	tracker    *gamification.Tracker
	grader     answercheck.Grader
	assist     *grader.Assistant
	cfg        engine.Config
	rng        *rand.Rand
	sourceText string

	state   engine.State
	answers components.AnswerList
	input   components.TextInput

	// grading is the open-answer in-flight lock; re-entrant checks are
	// rejected while a grade is pending.
	grading        bool
	pendingElapsed time.Duration
	assistBusy     bool
	hint           string
	explanation    string
	notice         string

	lastOutcome engine.Outcome
	lastAnswer  gamification.AnswerResult
	lastLearnt  *gamification.LearntResult
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// Options bundles the quiz screen dependencies. Grader and Assistant may be
// nil when no LLM provider is configured; open questions then report a
// notice instead of grading.
type Options struct {
	Store      stateStore
	Tracker    *gamification.Tracker
	Grader     answercheck.Grader
	Assistant  *grader.Assistant
	Config     engine.Config
	SourceText string
}

// New starts a fresh session over tasks.
func New(tasks []qz.Task, opts Options) *QuizScreen {
	s := newScreen(opts)
	s.state = engine.Start(engine.New(tasks, s.cfg, s.rng))
	return s
}

// Launch resumes a saved session when a snapshot matches the task set,
// otherwise starts fresh. Corrupt or stale snapshots are discarded.
func Launch(tasks []qz.Task, opts Options) *QuizScreen {
	if opts.Store != nil {
		if snap, err := engine.LoadProgress(opts.Store, tasks); err == nil && snap != nil {
			return Resume(*snap, tasks, opts)
		}
	}
	return New(tasks, opts)
}

// Resume continues a session from a saved snapshot.
func Resume(snap engine.Snapshot, tasks []qz.Task, opts Options) *QuizScreen {
	s := newScreen(opts)
	s.state = engine.Restore(snap, tasks)
	return s
}

func newScreen(opts Options) *QuizScreen {
	return &QuizScreen{
		st:         opts.Store,
		tracker:    opts.Tracker,
		grader:     opts.Grader,
		assist:     opts.Assistant,
		cfg:        opts.Config.Normalize(),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		sourceText: opts.SourceText,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.tracker.StartSession()
	s.setupRound()
	s.persist()
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.state.Ended {
		return []layout.KeyHint{
			{Key: "R", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.grading {
		return []layout.KeyHint{{Key: "...", Description: "Grading"}}
	}
	if s.state.Checked {
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if !s.state.RoundWon {
			hints = append(hints, layout.KeyHint{Key: "A", Description: "Accept my answer"})
		}
		hints = append(hints, layout.KeyHint{Key: "X", Description: "Remove question"})
		if s.assist != nil {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return hints
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Check"}}
	if s.current() != nil && !s.current().Question.IsOpen {
		hints = append([]layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Space", Description: "Toggle"},
		}, hints...)
	}
	if s.assist != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
	}
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradeResultMsg:
		return s.handleGradeResult(msg)

	case hintMsg:
		s.assistBusy = false
		if msg.Err != nil {
			s.notice = "Hint unavailable: " + msg.Err.Error()
		} else {
			s.hint = msg.Text
		}
		return s, nil

	case explanationMsg:
		s.assistBusy = false
		if msg.Err != nil {
			s.notice = "Explanation unavailable: " + msg.Err.Error()
		} else {
			s.explanation = msg.Text
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.inTextEntry() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// inTextEntry reports whether keystrokes belong to the open-answer input.
func (s *QuizScreen) inTextEntry() bool {
	cur := s.current()
	return cur != nil && cur.Question.IsOpen && !s.state.Checked && !s.grading && !s.state.Ended
}

func (s *QuizScreen) current() *qz.Task {
	return s.state.Current
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	s.notice = ""

	if s.state.Ended {
		switch key {
		case "r", "R":
			s.restart()
			return s, nil
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.grading {
		return s, nil
	}

	if s.state.Checked {
		return s.handleFeedbackKey(key)
	}

	return s.handleAnswerKey(msg, key)
}

func (s *QuizScreen) handleAnswerKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	cur := s.current()
	if cur == nil {
		return s, nil
	}

	if key == "tab" && s.assist != nil && !s.assistBusy {
		s.assistBusy = true
		return s, s.requestHint()
	}

	if cur.Question.IsOpen {
		if key == "enter" {
			return s.submitOpen()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		s.state = engine.SetOpenAnswer(s.state, s.input.Value())
		return s, cmd
	}

	switch key {
	case "up", "k", "down", "j":
		var cmd tea.Cmd
		s.answers, cmd = s.answers.Update(msg)
		return s, cmd
	case "space", " ":
		s.answers.Toggle(s.answers.Cursor)
		s.state = engine.ToggleAnswer(s.state, s.answers.Cursor)
		return s, nil
	case "enter":
		return s.checkClosed()
	}

	return s, nil
}

func (s *QuizScreen) handleFeedbackKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "n":
		return s.advance()
	case "a", "A":
		s.acceptAnswer()
		return s, nil
	case "x", "X":
		return s.removeQuestion()
	case "e", "E":
		if s.assist != nil && !s.assistBusy && s.explanation == "" {
			s.assistBusy = true
			return s, s.requestExplanation()
		}
	}
	return s, nil
}

func (s *QuizScreen) checkClosed() (screen.Screen, tea.Cmd) {
	elapsed := s.tracker.StopTimer()

	st, outcome, err := engine.CheckClosed(s.state, s.rng, s.cfg)
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.state = st
	s.lastOutcome = outcome
	s.revealAnswers()
	s.recordAnswer(outcome, elapsed)
	s.persist()
	return s, nil
}

func (s *QuizScreen) submitOpen() (screen.Screen, tea.Cmd) {
	if strings.TrimSpace(s.state.OpenAnswer) == "" {
		return s, nil
	}
	if s.grader == nil {
		s.notice = "Open questions need an LLM provider for grading. Set an API key and restart."
		return s, nil
	}

	s.pendingElapsed = s.tracker.StopTimer()
	s.grading = true

	cur := s.current()
	question := cur.Question.Text
	answer := s.state.OpenAnswer
	accepted := ""
	if cur.Override != nil {
		accepted = cur.Override.AcceptedOpenAnswer
	}
	g := s.grader
	src := s.sourceText

	return s, func() tea.Msg {
		score, err := g.CheckOpenAnswer(context.Background(), src, question, answer, accepted)
		return gradeResultMsg{Score: score, Err: err}
	}
}

func (s *QuizScreen) handleGradeResult(msg gradeResultMsg) (screen.Screen, tea.Cmd) {
	s.grading = false

	if msg.Err != nil {
		s.notice = "Grading failed: " + msg.Err.Error() + " — press Enter to retry."
		s.tracker.StartTimer()
		return s, nil
	}

	st, outcome, err := engine.ApplyOpenScore(s.state, msg.Score, s.rng, s.cfg)
	if err != nil {
		s.notice = "Grading failed: " + err.Error()
		s.tracker.StartTimer()
		return s, nil
	}
	s.state = st
	s.lastOutcome = outcome
	s.recordAnswer(outcome, s.pendingElapsed)
	s.persist()
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	st, err := engine.Next(s.state)
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.state = st

	if s.state.Ended {
		return s.finish()
	}

	s.setupRound()
	s.persist()
	return s, s.input.Init()
}

func (s *QuizScreen) acceptAnswer() {
	st, outcome, err := engine.Accept(s.state)
	if err != nil {
		s.notice = err.Error()
		return
	}
	s.state = st
	s.lastOutcome = outcome
	s.revealAnswers()
	s.persist()
}

func (s *QuizScreen) removeQuestion() (screen.Screen, tea.Cmd) {
	st, err := engine.Remove(s.state)
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.state = st

	if s.state.Ended {
		return s.finish()
	}

	s.setupRound()
	s.persist()
	return s, s.input.Init()
}

func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	result := s.tracker.EndQuiz(s.state.Correct, s.state.Incorrect)
	if s.st != nil {
		_ = engine.ClearProgress(s.st)
		_ = gamification.SaveStats(s.st, s.tracker.User)
	}

	data := summary.Data{
		Correct:     s.state.Correct,
		Incorrect:   s.state.Incorrect,
		Accuracy:    result.Accuracy,
		LearntCount: len(s.state.Learnt),
		Bonus:       result.Bonus,
		TotalPoints: s.tracker.User.TotalPoints,
		BestStreak:  s.tracker.User.BestStreak,
		Unlocked:    result.Unlocked,
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(data)}
	}
}

func (s *QuizScreen) restart() {
	s.state = engine.Reset(s.state, s.cfg, s.rng)
	s.setupRound()
	s.persist()
}

// setupRound prepares the input widgets for the freshly drawn task.
func (s *QuizScreen) setupRound() {
	s.hint = ""
	s.explanation = ""
	s.notice = ""
	s.lastLearnt = nil

	cur := s.current()
	if cur == nil {
		return
	}

	if cur.Question.IsOpen {
		s.input = components.NewTextInput("Type your answer...", false, 0)
		if s.state.OpenAnswer != "" {
			s.input.Model.SetValue(s.state.OpenAnswer)
		}
	} else {
		opts := make([]components.AnswerOption, len(cur.Answers))
		for i, a := range cur.Answers {
			opts[i] = components.AnswerOption{Text: a.Text, Selected: a.IsSelected}
		}
		s.answers = components.NewAnswerList(opts)
		if s.state.Checked {
			s.revealAnswers()
		}
	}

	if !s.state.Checked {
		s.tracker.StartTimer()
	}
}

// revealAnswers rebuilds the answer list from the checked task so the
// correctness coloring follows any override.
func (s *QuizScreen) revealAnswers() {
	cur := s.current()
	if cur == nil || cur.Question.IsOpen {
		return
	}
	opts := make([]components.AnswerOption, len(cur.Answers))
	for i, a := range cur.Answers {
		opts[i] = components.AnswerOption{Text: a.Text, Selected: a.IsSelected, Correct: a.IsCorrect}
	}
	s.answers = components.NewAnswerList(opts)
	s.answers.Reveal()
}

func (s *QuizScreen) recordAnswer(outcome engine.Outcome, elapsed time.Duration) {
	cur := s.current()
	if cur == nil {
		return
	}
	s.lastAnswer = s.tracker.RecordAnswer(cur.ID, outcome.Won, elapsed, outcome.WasRetry)
	if outcome.NewlyLearnt {
		lr := s.tracker.RecordLearnt(cur.ID, len(s.state.Learnt))
		s.lastLearnt = &lr
	}
}

func (s *QuizScreen) persist() {
	if s.st == nil {
		return
	}
	if err := engine.SaveProgress(s.st, s.state); err != nil {
		s.notice = "Could not save progress: " + err.Error()
	}
	_ = gamification.SaveStats(s.st, s.tracker.User)
}

func (s *QuizScreen) requestHint() tea.Cmd {
	cur := s.current()
	assist := s.assist
	src := s.sourceText
	question := cur.Question.Text
	return func() tea.Msg {
		text, err := assist.GenerateHint(context.Background(), src, question, true)
		return hintMsg{Text: text, Err: err}
	}
}

func (s *QuizScreen) requestExplanation() tea.Cmd {
	cur := *s.current()
	assist := s.assist
	src := s.sourceText
	return func() tea.Msg {
		text, err := assist.GenerateExplanation(context.Background(), src, cur)
		return explanationMsg{Text: text, Err: err}
	}
}
