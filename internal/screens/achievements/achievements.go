// Package achievements lists the achievement table with unlock status.
package achievements

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizlab/internal/gamification"
	"github.com/abhisek/quizlab/internal/screen"
	"github.com/abhisek/quizlab/internal/ui/layout"
	"github.com/abhisek/quizlab/internal/ui/theme"
)

// AchievementsScreen shows every visible achievement and the unlock state.
// Hidden achievements only appear once unlocked.
type AchievementsScreen struct {
	user   gamification.UserStats
	offset int
}

var _ screen.Screen = (*AchievementsScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementsScreen)(nil)

// New creates the achievements screen for a player record.
func New(user gamification.UserStats) *AchievementsScreen {
	return &AchievementsScreen{user: user}
}

func (a *AchievementsScreen) Init() tea.Cmd {
	return nil
}

func (a *AchievementsScreen) Title() string {
	return "Achievements"
}

func (a *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (a *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if a.offset > 0 {
			a.offset--
		}
	case "down", "j":
		if a.offset < len(a.visible())-1 {
			a.offset++
		}
	}
	return a, nil
}

func (a *AchievementsScreen) visible() []gamification.Achievement {
	unlocked := make(map[string]bool, len(a.user.UnlockedAchievements))
	for _, u := range a.user.UnlockedAchievements {
		unlocked[u.ID] = true
	}
	return gamification.VisibleAchievements(unlocked)
}

func (a *AchievementsScreen) View(width, height int) string {
	visible := a.visible()

	unlockedCount := 0
	for _, ach := range visible {
		if a.user.HasUnlocked(ach.ID) {
			unlockedCount++
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("Achievements — %d of %d unlocked", unlockedCount, len(visible))))
	b.WriteString("\n\n")

	rows := height - 4
	if rows < 1 {
		rows = 1
	}
	end := a.offset + rows
	if end > len(visible) {
		end = len(visible)
	}

	for _, ach := range visible[a.offset:end] {
		b.WriteString(a.renderRow(ach, width))
		b.WriteString("\n")
	}

	return b.String()
}

func (a *AchievementsScreen) renderRow(ach gamification.Achievement, width int) string {
	mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("[ ]")
	nameStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	if a.user.HasUnlocked(ach.ID) {
		mark = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("[✓]")
		nameStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		descStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	line := fmt.Sprintf("  %s %s  %s  %s",
		mark,
		nameStyle.Render(ach.Name),
		descStyle.Render(ach.Description),
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("+%d", ach.Points)),
	)
	return line
}
