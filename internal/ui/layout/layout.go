package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/ui/theme"
)

const (
	// A question with four options and its feedback fits in this size.
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is the quiz service line on the right of the header.
type Status struct {
	Text string

	// Limited highlights the line while the service is rate limited.
	Limited bool
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the rows left for the screen between header and
// footer.
func ContentHeight(header, footer string, totalHeight int) int {
	return max(totalHeight-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small for a quiz\n\nResize to at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the top bar: app name, screen title centered and
// the service status on the right.
func RenderHeader(title string, status Status, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  Trivia")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	statusStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if status.Limited {
		statusStyle = statusStyle.Foreground(theme.Warning).Bold(true)
	}
	right := ""
	if status.Text != "" {
		right = statusStyle.Render(status.Text) + "  "
	}

	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := max(width-4, 0) // border and padding

	leftGap := max((innerWidth-centerLen)/2-leftLen, 1)
	rightGap := max(innerWidth-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// FitHints drops hints from the end of the list until the rest fit on one
// footer line. The last hint (quit) is always kept.
func FitHints(hints []KeyHint, width int) []KeyHint {
	if len(hints) == 0 {
		return hints
	}
	last := hints[len(hints)-1]
	kept := hints[:len(hints)-1]
	for len(kept) > 0 && hintsWidth(append(kept[:len(kept):len(kept)], last)) > width-4 {
		kept = kept[:len(kept)-1]
	}
	return append(kept[:len(kept):len(kept)], last)
}

func hintsWidth(hints []KeyHint) int {
	w := 2
	for i, h := range hints {
		if i > 0 {
			w += 3
		}
		w += lipgloss.Width(h.Key) + 1 + lipgloss.Width(h.Description)
	}
	return w
}

// RenderFooter renders the footer with the key hints that fit.
func RenderFooter(hints []KeyHint, width int) string {
	hints = FitHints(hints, width)
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render("  " + strings.Join(parts, "   "))
}

// RenderAdvisory renders a degraded-service notice as a wrapped amber
// block indented to the question column. Empty text renders nothing.
func RenderAdvisory(text string, width int) string {
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(max(width-4, 10)).
		PaddingLeft(2).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Warning).
		Foreground(theme.Warning).
		Render(text)
}

// RenderRule renders the divider under a section heading.
func RenderRule(width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Border).
		Render("  " + strings.Repeat("─", max(width-6, 0)))
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(ContentHeight(header, footer, height)).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
