// Package home renders the main menu of the application.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizlab/internal/gamification"
	"github.com/abhisek/quizlab/internal/questiongen"
	"github.com/abhisek/quizlab/internal/router"
	"github.com/abhisek/quizlab/internal/screen"
	"github.com/abhisek/quizlab/internal/screens/achievements"
	"github.com/abhisek/quizlab/internal/screens/create"
	"github.com/abhisek/quizlab/internal/screens/library"
	quizscreen "github.com/abhisek/quizlab/internal/screens/quiz"
	"github.com/abhisek/quizlab/internal/store"
	"github.com/abhisek/quizlab/internal/ui/components"
	"github.com/abhisek/quizlab/internal/ui/layout"
	"github.com/abhisek/quizlab/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu    components.Menu
	tracker *gamification.Tracker
	llmHint string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. generator is nil when no LLM provider is
// configured; the New Quiz entry is disabled in that case.
func New(generator questiongen.Generator, genSettings questiongen.Settings, repo store.LibraryRepo, tracker *gamification.Tracker, quizOpts quizscreen.Options) *HomeScreen {
	var llmHint string
	if generator == nil {
		llmHint = "Set OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY to enable quiz generation."
	}

	items := []components.MenuItem{
		{Label: "NEW QUIZ", Disabled: generator == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: create.New(generator, genSettings, repo, quizOpts)}
			}
		}},
		{Label: "LIBRARY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: library.New(repo, quizOpts)}
			}
		}},
		{Label: "ACHIEVEMENTS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: achievements.New(tracker.User)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:    components.NewMenu(items),
		tracker: tracker,
		llmHint: llmHint,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Q U I Z L A B"))

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Turn your study notes into adaptive quizzes."))

	sections = append(sections, h.renderStats())
	sections = append(sections, h.menu.View())

	if h.llmHint != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(h.llmHint))
	}

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) renderStats() string {
	u := h.tracker.User

	accuracy := "-"
	if u.TotalQuestionsAnswered > 0 {
		accuracy = fmt.Sprintf("%d%%", 100*u.TotalCorrectAnswers/u.TotalQuestionsAnswered)
	}

	parts := []string{
		fmt.Sprintf("◆ %d pts", u.TotalPoints),
		fmt.Sprintf("★ %d streak", u.CurrentStreak),
		fmt.Sprintf("%d quizzes", u.TotalQuizzesCompleted),
		accuracy + " accuracy",
	}

	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(strings.Join(parts, "   "))
}
