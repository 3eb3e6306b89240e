package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	domain "github.com/abhisek/trivia/internal/quiz"
	sess "github.com/abhisek/trivia/internal/session"
	"github.com/abhisek/trivia/internal/ui/components"
	"github.com/abhisek/trivia/internal/ui/layout"
	"github.com/abhisek/trivia/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	st := s.machine.State()
	switch {
	case st.Step == sess.StepLoading, st.Step == sess.StepInitial:
		return center(width, "\n\n"+s.spinner.View()+" "+
			theme.Body.Render(fmt.Sprintf("Generating your %s quiz...", s.sel.Topic.Label)))
	case st.Step == sess.StepResults:
		return s.renderResults(st, width, height)
	case st.Empty():
		return center(width, "\n\n"+theme.Body.Render("No questions were returned for this topic.")+
			"\n\n"+theme.Hint.Render("Press n to pick another topic."))
	}
	return s.renderQuestion(st, width)
}

func (s *QuizScreen) renderQuestion(st sess.State, width int) string {
	q, _ := st.Current()
	var b strings.Builder

	header := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", st.Index+1, st.Quiz.Len()))
	b.WriteString(header + "   " + components.ProgressDots(dotStates(st)))
	b.WriteString("\n")
	b.WriteString(layout.RenderRule(width))
	b.WriteString("\n")

	if st.Advisory != "" {
		b.WriteString(layout.RenderAdvisory(st.Advisory, width) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Width(max(width-4, 10)).PaddingLeft(2).
		Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")

	switch q.KindOr(st.QuestionType) {
	case domain.KindMultipleChoice, domain.KindTrueFalse:
		b.WriteString(s.choice.View())
	default:
		b.WriteString("  " + s.input.View())
	}
	b.WriteString("\n\n")

	switch {
	case st.Graded():
		if r, ok := st.LastRecord(); ok {
			b.WriteString(renderVerdict(r.Verdict))
		}
	case st.Pending:
		b.WriteString("  " + theme.Hint.Render("Checking..."))
	case s.notice != "":
		b.WriteString("  " + theme.Advisory.Render(s.notice))
	}

	return b.String()
}

func renderVerdict(v domain.Verdict) string {
	var label string
	switch {
	case !v.Graded():
		label = theme.Ungraded.Render("  Ungraded")
	case v.Correct():
		label = theme.Correct.Render("  Correct!")
	default:
		label = theme.Incorrect.Render("  Incorrect")
	}
	if v.Feedback == "" {
		return label
	}
	return label + "\n  " + theme.Body.Render(v.Feedback)
}

func (s *QuizScreen) renderResults(st sess.State, width, height int) string {
	score := sess.Score(st.Answers)
	band := sess.BandFor(score)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(width, theme.Title.Render(fmt.Sprintf("Your score: %d%%", score))))
	b.WriteString("\n")
	b.WriteString(center(width, theme.Subtitle.Render(band.Message())))
	b.WriteString("\n\n")

	barWidth := min(width-8, 50)
	bar := components.NewProgressBar("", float64(score)/100, true, barWidth)
	b.WriteString(center(width, bar.View()))
	b.WriteString("\n\n")

	if !s.reviewing {
		b.WriteString(center(width, theme.Hint.Render("Press r to review your answers.")))
		return b.String()
	}

	rows := sess.Review(st.Quiz, st.Answers)
	visible := max((height-10)/4, 1)
	end := min(s.reviewTop+visible, len(rows))
	for _, row := range rows[s.reviewTop:end] {
		b.WriteString(renderReviewRow(row, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderReviewRow(row sess.ReviewRow, width int) string {
	var mark string
	switch {
	case !row.Answered:
		mark = theme.Hint.Render("-")
	case !row.Verdict.Graded():
		mark = theme.Ungraded.Render("?")
	case row.Verdict.Correct():
		mark = theme.Correct.Render("✓")
	default:
		mark = theme.Incorrect.Render("✗")
	}

	prompt := lipgloss.NewStyle().Width(max(width-8, 10)).Foreground(theme.Text).
		Render(fmt.Sprintf("%d. %s", row.Index+1, row.Prompt))

	var b strings.Builder
	b.WriteString("  " + mark + " " + prompt + "\n")
	answer := row.UserAnswer
	if !row.Answered {
		answer = "(not answered)"
	}
	b.WriteString("      " + theme.Hint.Render("Your answer: ") + theme.Body.Render(answer) + "\n")
	if row.CorrectAnswer != "" {
		b.WriteString("      " + theme.Hint.Render("Answer: ") + theme.Body.Render(row.CorrectAnswer) + "\n")
	}
	if row.Explanation != "" {
		b.WriteString("      " + theme.Hint.Render(row.Explanation) + "\n")
	}
	return b.String()
}

func dotStates(st sess.State) []components.DotState {
	states := make([]components.DotState, st.Quiz.Len())
	for i := range states {
		if i == st.Index {
			states[i] = components.DotCurrent
		}
	}
	for _, r := range st.Answers {
		if r.Index < 0 || r.Index >= len(states) {
			continue
		}
		switch {
		case !r.Verdict.Graded():
			states[r.Index] = components.DotUngraded
		case r.Verdict.Correct():
			states[r.Index] = components.DotCorrect
		default:
			states[r.Index] = components.DotIncorrect
		}
	}
	return states
}

func center(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
