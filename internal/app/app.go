// Package app wires the screens together into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizlab/internal/answercheck"
	"github.com/abhisek/quizlab/internal/config"
	"github.com/abhisek/quizlab/internal/gamification"
	"github.com/abhisek/quizlab/internal/grader"
	"github.com/abhisek/quizlab/internal/questiongen"
	"github.com/abhisek/quizlab/internal/router"
	"github.com/abhisek/quizlab/internal/screen"
	"github.com/abhisek/quizlab/internal/screens/home"
	quizscreen "github.com/abhisek/quizlab/internal/screens/quiz"
	"github.com/abhisek/quizlab/internal/store"
	"github.com/abhisek/quizlab/internal/ui/layout"
)

// Options carries the dependencies the screens need. Generator, Grader and
// Assistant are nil when no LLM provider is configured; the affected screens
// degrade instead of failing.
type Options struct {
	Store     *store.Store
	Settings  config.Settings
	Tracker   *gamification.Tracker
	Generator questiongen.Generator
	Grader    answercheck.Grader
	Assistant *grader.Assistant
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	tracker *gamification.Tracker
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	quizOpts := quizscreen.Options{
		Store:     opts.Store,
		Tracker:   opts.Tracker,
		Grader:    opts.Grader,
		Assistant: opts.Assistant,
		Config:    opts.Settings.EngineConfig(),
	}

	homeScreen := home.New(opts.Generator, opts.Settings.Generation(), opts.Store.LibraryRepo(), opts.Tracker, quizOpts)
	return AppModel{
		router:  router.New(homeScreen),
		tracker: opts.Tracker,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	points, streak := 0, 0
	if m.tracker != nil {
		points = m.tracker.User.TotalPoints
		streak = m.tracker.User.CurrentStreak
	}
	header := layout.RenderHeader(title, points, streak, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if m.router.Depth() > 1 {
		footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
