package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizlab/internal/ui/theme"
)

// AnswerList is a multi-select answer picker for closed questions. Before
// the round is checked it highlights the cursor and marks toggled answers;
// after checking it colors every answer by correctness.
type AnswerList struct {
	Options  []AnswerOption
	Cursor   int
	Revealed bool
}

// AnswerOption is one selectable answer row.
type AnswerOption struct {
	Text     string
	Selected bool
	Correct  bool
}

// NewAnswerList creates an answer list with the cursor on the first row.
func NewAnswerList(options []AnswerOption) AnswerList {
	return AnswerList{Options: options}
}

// Update handles cursor movement. Toggling is reported through ToggleMsg so
// the owning screen can keep the session state authoritative.
func (a AnswerList) Update(msg tea.Msg) (AnswerList, tea.Cmd) {
	if a.Revealed {
		return a, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if a.Cursor > 0 {
			a.Cursor--
		}
	case "down", "j":
		if a.Cursor < len(a.Options)-1 {
			a.Cursor++
		}
	}

	return a, nil
}

// Toggle flips the selection marker on row i.
func (a *AnswerList) Toggle(i int) {
	if i < 0 || i >= len(a.Options) || a.Revealed {
		return
	}
	a.Options[i].Selected = !a.Options[i].Selected
}

// Reveal switches the list into post-check display mode.
func (a *AnswerList) Reveal() {
	a.Revealed = true
}

// View renders the answer rows.
func (a AnswerList) View() string {
	var s string

	for i, opt := range a.Options {
		marker := "[ ]"
		if opt.Selected {
			marker = "[x]"
		}

		prefix := "  "
		if i == a.Cursor && !a.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s", prefix, marker, opt.Text)

		if a.Revealed {
			switch {
			case opt.Correct && opt.Selected:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line+"  ✓") + "\n"
			case opt.Correct && !opt.Selected:
				s += lipgloss.NewStyle().Foreground(theme.Accent).Render(line+"  (missed)") + "\n"
			case !opt.Correct && opt.Selected:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line+"  ✗") + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
			continue
		}

		if i == a.Cursor {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
