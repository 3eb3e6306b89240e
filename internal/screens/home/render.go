package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/screens/welcome"
	"github.com/abhisek/trivia/internal/session"
	"github.com/abhisek/trivia/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := height < 26

	var sections []string
	if compact {
		sections = append(sections, centered(cw, theme.Title.Render("T R I V I A")))
	} else {
		sections = append(sections, centered(cw, welcome.RenderBanner(width)))
	}
	sections = append(sections, centered(cw, theme.Subtitle.Render("Choose a topic")))
	sections = append(sections, renderMenuBox(h.menu.View(), cw))
	sections = append(sections, renderSettings(h.kind, h.count(), h.cursor, cw))

	if h.custom {
		sections = append(sections, renderCustomTopic(h.input.View(), cw))
	}

	gap := "\n\n"
	if compact {
		gap = "\n"
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, gap))
}

func (h *HomeScreen) count() int {
	if h.opts.Count > 0 {
		return h.opts.Count
	}
	return session.DefaultCount
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 56 {
		w = 56
	}
	if w < 20 {
		w = 20
	}
	return w
}

func centered(cw int, s string) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func renderMenuBox(menu string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(strings.TrimRight(menu, "\n"))
}

func renderSettings(kind quiz.Kind, count int, cursor bool, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	cursorText := "off"
	if cursor {
		cursorText = "on"
	}
	line := fmt.Sprintf("%s %s   %s %s   %s %s",
		dim.Render("Type:"), value.Render(kindLabel(kind)),
		dim.Render("Questions:"), value.Render(fmt.Sprint(count)),
		dim.Render("Cursor:"), value.Render(cursorText),
	)
	return centered(cw, line)
}

func renderCustomTopic(input string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(cw).
		Padding(0, 1).
		Render(theme.Body.Render("Topic: ") + input)
}
