package quiz

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizlab/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.state.Ended {
		return s.renderEnded(width)
	}

	cur := s.current()
	if cur == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparing quiz...")
	}

	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(cur.Question.Text))
	b.WriteString("\n\n")

	if cur.Question.IsOpen {
		b.WriteString(s.renderOpenArea(width))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.answers.View()))
	}

	if s.hint != "" {
		b.WriteString("\n")
		b.WriteString(s.renderAside(width, "Hint", s.hint, theme.Secondary))
	}

	if s.state.Checked {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}

	if s.explanation != "" {
		b.WriteString("\n")
		b.WriteString(s.renderAside(width, "Why", s.explanation, theme.Secondary))
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
	}

	return b.String()
}

func (s *QuizScreen) renderInfoLine(width int) string {
	kind := "Multiple choice"
	if cur := s.current(); cur != nil && cur.Question.IsOpen {
		kind = "Open question"
	}
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %d questions", kind, s.state.TotalQuestions()))

	retry := ""
	if cur := s.current(); cur != nil && cur.IsRetry {
		retry = lipgloss.NewStyle().Foreground(theme.Accent).Render("retry  ")
	}

	right := retry + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s %d  pool %d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.state.Correct,
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			s.state.Incorrect,
			len(s.state.Pool),
		))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *QuizScreen) renderOpenArea(width int) string {
	if s.grading {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Grading your answer...")
	}
	if s.state.Checked {
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render("Your answer: " + s.state.OpenAnswer))
		return b.String()
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
}

func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder

	if s.state.RoundWon {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
	}

	if cur := s.current(); cur != nil && cur.Question.IsOpen {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Score: %d/100", s.state.OpenScore)))
	}

	bd := s.lastAnswer.Breakdown
	if bd.Total > 0 {
		reasons := ""
		if len(bd.BonusReasons) > 0 {
			reasons = "  (" + strings.Join(bd.BonusReasons, ", ") + ")"
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("+%d points%s", bd.Total, reasons)))
	}

	if s.lastLearnt != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Bold(true).
			Render(fmt.Sprintf("Learnt! +%d bonus points", s.lastLearnt.Bonus)))
	}

	for _, a := range s.unlockedThisRound() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("Achievement unlocked: %s %s (+%d)", a.Name, a.Description, a.Points)))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Enter to continue"))

	return b.String()
}

func (s *QuizScreen) renderEnded(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Correct %d  ·  Incorrect %d  ·  Accuracy %.0f%%",
			s.state.Correct, s.state.Incorrect, s.state.Accuracy())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("R to restart, Esc to go back"))
	return b.String()
}

func (s *QuizScreen) renderAside(width int, label, text string, color color.Color) string {
	body := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Render(lipgloss.NewStyle().Foreground(color).Bold(true).Render(label+": ") + text)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

// unlockedThisRound merges answer and learnt unlocks for the feedback panel.
func (s *QuizScreen) unlockedThisRound() []achievementView {
	var out []achievementView
	for _, a := range s.lastAnswer.Unlocked {
		out = append(out, achievementView{a.Name, a.Description, a.Points})
	}
	if s.lastLearnt != nil {
		for _, a := range s.lastLearnt.Unlocked {
			out = append(out, achievementView{a.Name, a.Description, a.Points})
		}
	}
	return out
}

type achievementView struct {
	Name        string
	Description string
	Points      int
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
