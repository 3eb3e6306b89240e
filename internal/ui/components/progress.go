package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// DotState is the state of one question in a ProgressDots row.
type DotState int

const (
	DotPending DotState = iota
	DotCurrent
	DotCorrect
	DotIncorrect
	DotUngraded
)

// ProgressDots renders one dot per question.
func ProgressDots(states []DotState) string {
	dots := make([]string, len(states))
	for i, s := range states {
		switch s {
		case DotCurrent:
			dots[i] = theme.Selected.Render("◉")
		case DotCorrect:
			dots[i] = theme.Correct.Render("●")
		case DotIncorrect:
			dots[i] = theme.Incorrect.Render("●")
		case DotUngraded:
			dots[i] = theme.Ungraded.Render("●")
		default:
			dots[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
		}
	}
	return strings.Join(dots, " ")
}
