// Package summary shows the end-of-quiz results panel.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizlab/internal/gamification"
	"github.com/abhisek/quizlab/internal/router"
	"github.com/abhisek/quizlab/internal/screen"
	"github.com/abhisek/quizlab/internal/ui/components"
	"github.com/abhisek/quizlab/internal/ui/layout"
	"github.com/abhisek/quizlab/internal/ui/theme"
)

// Data is everything the summary displays.
type Data struct {
	Correct     int
	Incorrect   int
	Accuracy    float64
	LearntCount int
	Bonus       int
	TotalPoints int
	BestStreak  int
	Unlocked    []gamification.Achievement
}

// SummaryScreen displays quiz results.
type SummaryScreen struct {
	data Data
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for the given results.
func New(data Data) *SummaryScreen {
	return &SummaryScreen{data: data}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	d := s.data

	var b strings.Builder
	b.WriteString("\n")

	center := func(style lipgloss.Style, text string) {
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(text))
		b.WriteString("\n")
	}

	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Quiz Complete!")
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Correct: %d    Incorrect: %d    Accuracy: %.0f%%", d.Correct, d.Incorrect, d.Accuracy))

	barWidth := width - 30
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth > 4 {
		bar := components.NewProgressBar("", d.Accuracy/100, false, barWidth)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Questions learnt: %d", d.LearntCount))
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		fmt.Sprintf("Completion bonus: +%d points", d.Bonus))
	center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Total points: %d    Best streak: %d", d.TotalPoints, d.BestStreak))

	if len(d.Unlocked) > 0 {
		b.WriteString("\n")
		center(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true), "New achievements")
		for _, a := range d.Unlocked {
			center(lipgloss.NewStyle().Foreground(theme.Text),
				fmt.Sprintf("%s · %s (+%d)", a.Name, a.Description, a.Points))
		}
	}

	b.WriteString("\n")
	center(lipgloss.NewStyle().Foreground(theme.TextDim), "Press Enter to continue")

	return b.String()
}
