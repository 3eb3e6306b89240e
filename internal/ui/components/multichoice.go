package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/ui/theme"
)

// MultiChoice is a lettered option selector. Options are picked with the
// arrow keys and Enter, or directly by letter.
type MultiChoice struct {
	Options  []string
	Letters  []string
	Selected int
	Cursor   bool
}

// NewMultiChoice creates a selector labelled a), b), c)...
func NewMultiChoice(options []string) MultiChoice {
	letters := make([]string, len(options))
	for i := range options {
		letters[i] = string(rune('a' + i))
	}
	return MultiChoice{Options: options, Letters: letters, Cursor: true}
}

// NewTrueFalse creates a two-option selector answered with t or f.
func NewTrueFalse() MultiChoice {
	return MultiChoice{
		Options: []string{"True", "False"},
		Letters: []string{"t", "f"},
		Cursor:  true,
	}
}

// Update handles navigation. chosen is the picked letter, or "" when the
// key did not pick anything.
func (m MultiChoice) Update(msg tea.Msg) (mc MultiChoice, chosen string) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, ""
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, ""
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, ""
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Letters) {
			return m, m.Letters[m.Selected]
		}
		return m, ""
	}

	for i, l := range m.Letters {
		if strings.EqualFold(key, l) {
			m.Selected = i
			return m, l
		}
	}
	return m, ""
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		line := fmt.Sprintf("%s)  %s", m.Letters[i], opt)
		if i == m.Selected {
			b.WriteString(theme.Selected.Render(CursorPrefix(m.Cursor) + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
