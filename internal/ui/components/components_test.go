package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_LetterPicks(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome", "Madrid"})
	m, chosen := m.Update(keyPress('c'))
	assert.Equal(t, "c", chosen)
	assert.Equal(t, 2, m.Selected)
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome"})

	m, chosen := m.Update(specialKey(tea.KeyDown))
	assert.Empty(t, chosen)
	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 1, m.Selected, "selection stops at the last option")

	m, _ = m.Update(specialKey(tea.KeyUp))
	_, chosen = m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "a", chosen)
}

func TestMultiChoice_IgnoresOtherKeys(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome"})
	_, chosen := m.Update(keyPress('z'))
	assert.Empty(t, chosen)
}

func TestTrueFalse(t *testing.T) {
	m := NewTrueFalse()
	_, chosen := m.Update(keyPress('f'))
	assert.Equal(t, "f", chosen)

	view := m.View()
	assert.Contains(t, view, "t)  True")
	assert.Contains(t, view, "f)  False")
}

func TestMultiChoice_CursorMarker(t *testing.T) {
	m := NewMultiChoice([]string{"Paris"})
	assert.Contains(t, m.View(), "▸")
	m.Cursor = false
	assert.NotContains(t, m.View(), "▸")
}

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	item := func(name string, disabled bool) MenuItem {
		return MenuItem{Label: name, Disabled: disabled, Action: func() tea.Cmd {
			ran = name
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("one", true), item("two", false), item("three", true), item("four", false)})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 3, m.Selected)
	m.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, "four", ran)
}

func TestCursorPrefix(t *testing.T) {
	assert.Equal(t, len(CursorPrefix(false)), strings.Count(CursorPrefix(false), " "))
	assert.Contains(t, CursorPrefix(true), "▸")
}

func TestProgressDots(t *testing.T) {
	out := ProgressDots([]DotState{DotCorrect, DotIncorrect, DotCurrent, DotPending})
	assert.Equal(t, 2, strings.Count(out, "●"))
	assert.Contains(t, out, "○")
	assert.Contains(t, out, "◉")
}
