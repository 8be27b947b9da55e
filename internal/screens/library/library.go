// Package library is the saved-quiz browser: replay, rename, delete.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizlab/internal/router"
	"github.com/abhisek/quizlab/internal/screen"
	quizscreen "github.com/abhisek/quizlab/internal/screens/quiz"
	"github.com/abhisek/quizlab/internal/store"
	"github.com/abhisek/quizlab/internal/ui/components"
	"github.com/abhisek/quizlab/internal/ui/layout"
	"github.com/abhisek/quizlab/internal/ui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeRename
	modeConfirmDelete
)

// quizzesLoadedMsg is sent when the library list query returns.
type quizzesLoadedMsg struct {
	Quizzes []*store.SavedQuiz
	Err     error
}

// LibraryScreen lists saved quizzes for replay.
type LibraryScreen struct {
	repo     store.LibraryRepo
	quizOpts quizscreen.Options

	quizzes []*store.SavedQuiz
	cursor  int
	mode    mode
	rename  components.TextInput
	errMsg  string
	loaded  bool
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New creates the library screen. quizOpts carries the shared quiz
// dependencies; the per-quiz source text is filled in at launch.
func New(repo store.LibraryRepo, quizOpts quizscreen.Options) *LibraryScreen {
	return &LibraryScreen{repo: repo, quizOpts: quizOpts}
}

func (l *LibraryScreen) Init() tea.Cmd {
	return l.loadQuizzes()
}

func (l *LibraryScreen) Title() string {
	return "Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	switch l.mode {
	case modeRename:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play"},
		{Key: "R", Description: "Rename"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LibraryScreen) loadQuizzes() tea.Cmd {
	repo := l.repo
	return func() tea.Msg {
		quizzes, err := repo.ListQuizzes(context.Background())
		return quizzesLoadedMsg{Quizzes: quizzes, Err: err}
	}
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizzesLoadedMsg:
		l.loaded = true
		if msg.Err != nil {
			l.errMsg = msg.Err.Error()
			return l, nil
		}
		l.quizzes = msg.Quizzes
		if l.cursor >= len(l.quizzes) {
			l.cursor = len(l.quizzes) - 1
		}
		if l.cursor < 0 {
			l.cursor = 0
		}
		return l, nil

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	if l.mode == modeRename {
		var cmd tea.Cmd
		l.rename, cmd = l.rename.Update(msg)
		return l, cmd
	}

	return l, nil
}

func (l *LibraryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch l.mode {
	case modeRename:
		switch key {
		case "enter":
			return l, l.applyRename()
		case "esc":
			l.mode = modeBrowse
			return l, nil
		}
		var cmd tea.Cmd
		l.rename, cmd = l.rename.Update(msg)
		return l, cmd

	case modeConfirmDelete:
		switch key {
		case "y", "Y":
			l.mode = modeBrowse
			return l, l.deleteSelected()
		case "n", "N", "esc":
			l.mode = modeBrowse
		}
		return l, nil
	}

	switch key {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.quizzes)-1 {
			l.cursor++
		}
	case "enter":
		return l.playSelected()
	case "r", "R":
		if q := l.selected(); q != nil {
			l.mode = modeRename
			l.rename = components.NewTextInput("New title...", false, 60)
			l.rename.Model.SetValue(q.Title)
			return l, l.rename.Init()
		}
	case "d", "D":
		if l.selected() != nil {
			l.mode = modeConfirmDelete
		}
	}

	return l, nil
}

func (l *LibraryScreen) selected() *store.SavedQuiz {
	if l.cursor < 0 || l.cursor >= len(l.quizzes) {
		return nil
	}
	return l.quizzes[l.cursor]
}

func (l *LibraryScreen) playSelected() (screen.Screen, tea.Cmd) {
	q := l.selected()
	if q == nil {
		return l, nil
	}

	opts := l.quizOpts
	opts.SourceText = q.SourceText

	return l, func() tea.Msg {
		return router.PushScreenMsg{Screen: quizscreen.Launch(q.Tasks, opts)}
	}
}

func (l *LibraryScreen) applyRename() tea.Cmd {
	q := l.selected()
	title := strings.TrimSpace(l.rename.Value())
	l.mode = modeBrowse
	if q == nil || title == "" || title == q.Title {
		return nil
	}

	repo := l.repo
	id := q.ID
	return func() tea.Msg {
		if err := repo.RenameQuiz(context.Background(), id, title); err != nil {
			return quizzesLoadedMsg{Err: err}
		}
		quizzes, err := repo.ListQuizzes(context.Background())
		return quizzesLoadedMsg{Quizzes: quizzes, Err: err}
	}
}

func (l *LibraryScreen) deleteSelected() tea.Cmd {
	q := l.selected()
	if q == nil {
		return nil
	}

	repo := l.repo
	id := q.ID
	return func() tea.Msg {
		if err := repo.DeleteQuiz(context.Background(), id); err != nil {
			return quizzesLoadedMsg{Err: err}
		}
		quizzes, err := repo.ListQuizzes(context.Background())
		return quizzesLoadedMsg{Quizzes: quizzes, Err: err}
	}
}

func (l *LibraryScreen) View(width, height int) string {
	if l.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Error: " + l.errMsg)
	}
	if !l.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading library...")
	}
	if len(l.quizzes) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No saved quizzes yet.\n  Generate one from the home screen.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, q := range l.quizzes {
		counts := countKinds(q)
		meta := fmt.Sprintf("%d closed · %d open · %s", counts.closed, counts.open,
			q.UpdatedAt.Local().Format("2006-01-02 15:04"))

		title := q.Title
		if l.mode == modeRename && i == l.cursor {
			title = l.rename.View()
		}

		prefix := "    "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == l.cursor {
			prefix = "  ▸ "
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		b.WriteString(style.Render(prefix + title))
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(meta))
		b.WriteString("\n")
	}

	if l.mode == modeConfirmDelete {
		if q := l.selected(); q != nil {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Error).
				Bold(true).
				Render(fmt.Sprintf("  Delete %q? [y/n]", q.Title)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

type kindCounts struct {
	closed int
	open   int
}

func countKinds(q *store.SavedQuiz) kindCounts {
	var c kindCounts
	for _, t := range q.Tasks {
		if t.Question.IsOpen {
			c.open++
		} else {
			c.closed++
		}
	}
	return c
}
