// Package create generates a new quiz from a plain text file and saves it
// to the library.
package create

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/quizlab/internal/questiongen"
	qz "github.com/abhisek/quizlab/internal/quiz"
	"github.com/abhisek/quizlab/internal/router"
	"github.com/abhisek/quizlab/internal/screen"
	quizscreen "github.com/abhisek/quizlab/internal/screens/quiz"
	"github.com/abhisek/quizlab/internal/store"
	"github.com/abhisek/quizlab/internal/ui/components"
	"github.com/abhisek/quizlab/internal/ui/layout"
	"github.com/abhisek/quizlab/internal/ui/theme"
)

// generatedMsg is sent when question generation (and the library save)
// completes.
type generatedMsg struct {
	Tasks      []qz.Task
	SourceText string
	Err        error
}

// CreateScreen asks for a text file, generates questions from it, and
// launches the quiz.
type CreateScreen struct {
	generator questiongen.Generator
	settings  questiongen.Settings
	repo      store.LibraryRepo
	quizOpts  quizscreen.Options

	input      components.TextInput
	generating bool
	errMsg     string
}

var _ screen.Screen = (*CreateScreen)(nil)
var _ screen.KeyHintProvider = (*CreateScreen)(nil)

// New creates the create screen. generator may be nil when no LLM provider
// is configured.
func New(generator questiongen.Generator, settings questiongen.Settings, repo store.LibraryRepo, quizOpts quizscreen.Options) *CreateScreen {
	return &CreateScreen{
		generator: generator,
		settings:  settings,
		repo:      repo,
		quizOpts:  quizOpts,
		input:     components.NewTextInput("Path to a .txt file...", false, 0),
	}
}

func (c *CreateScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *CreateScreen) Title() string {
	return "New Quiz"
}

func (c *CreateScreen) KeyHints() []layout.KeyHint {
	if c.generating {
		return []layout.KeyHint{{Key: "...", Description: "Generating"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *CreateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		c.generating = false
		if msg.Err != nil {
			c.errMsg = msg.Err.Error()
			return c, nil
		}

		opts := c.quizOpts
		opts.SourceText = msg.SourceText
		return c, func() tea.Msg {
			return router.PushScreenMsg{Screen: quizscreen.New(msg.Tasks, opts)}
		}

	case tea.KeyMsg:
		if c.generating {
			return c, nil
		}
		if msg.String() == "enter" {
			return c.generate()
		}
		c.errMsg = ""
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	if !c.generating {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	return c, nil
}

func (c *CreateScreen) generate() (screen.Screen, tea.Cmd) {
	path := strings.TrimSpace(c.input.Value())
	if path == "" {
		return c, nil
	}

	if c.generator == nil {
		c.errMsg = "Question generation needs an LLM provider. Set an API key and restart."
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.errMsg = fmt.Sprintf("Cannot read %s: %v", path, err)
		return c, nil
	}
	sourceText := strings.TrimSpace(string(data))
	if sourceText == "" {
		c.errMsg = "The file is empty."
		return c, nil
	}

	c.generating = true
	c.errMsg = ""

	generator := c.generator
	settings := c.settings
	repo := c.repo
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return c, func() tea.Msg {
		ctx := context.Background()

		tasks, err := generator.Generate(ctx, sourceText, settings)
		if err != nil {
			return generatedMsg{Err: err}
		}

		now := time.Now()
		saved := &store.SavedQuiz{
			ID:         uuid.NewString(),
			Title:      title,
			SourceText: sourceText,
			Tasks:      tasks,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.SaveQuiz(ctx, saved); err != nil {
			return generatedMsg{Err: fmt.Errorf("saving quiz: %w", err)}
		}

		return generatedMsg{Tasks: tasks, SourceText: sourceText}
	}
}

func (c *CreateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Create a quiz from your study material"))
	b.WriteString("\n\n")

	if c.generating {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Generating questions... this can take a moment."))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("File: " + c.input.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d closed and %d open questions will be generated.",
			c.settings.ClosedCount, c.settings.OpenCount)))

	if c.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(c.errMsg))
	}

	return b.String()
}
