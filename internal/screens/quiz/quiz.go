// Package quiz is the screen that plays one quiz: loading, questions with
// feedback, and the results review.
package quiz

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	domain "github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	sess "github.com/abhisek/trivia/internal/session"
	"github.com/abhisek/trivia/internal/ui/components"
	"github.com/abhisek/trivia/internal/ui/layout"
)

// QuizScreen implements screen.Screen for a running quiz.
type QuizScreen struct {
	machine  *sess.Machine
	executor *sess.Executor
	sel      sess.TopicSelected
	ctx      context.Context
	cancel   context.CancelFunc

	spinner spinner.Model
	choice  components.MultiChoice
	input   components.TextInput

	// shown is the question index the widgets were built for.
	shown     int
	cursor    bool
	reviewing bool
	reviewTop int

	// notice is a rejected-input message, cleared on the next event.
	notice string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.InputCapturer = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen. The quiz starts loading on Init.
func New(machine *sess.Machine, executor *sess.Executor, sel sess.TopicSelected, cursor bool) *QuizScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuizScreen{
		machine:  machine,
		executor: executor,
		sel:      sel,
		ctx:      ctx,
		cancel:   cancel,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		shown:    -1,
		cursor:   cursor,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.dispatch(s.sel), s.spinner.Tick)
}

func (s *QuizScreen) Title() string {
	return s.sel.Topic.Label
}

// Close stops in-flight fetches and grading. It runs when the screen is
// popped.
func (s *QuizScreen) Close() {
	s.cancel()
}

// State exposes the session state for rendering and tests.
func (s *QuizScreen) State() sess.State {
	return s.machine.State()
}

func (s *QuizScreen) CapturingInput() bool {
	st := s.machine.State()
	q, ok := st.Current()
	return ok && !st.Pending && q.KindOr(st.QuestionType) == domain.KindOpenEnded
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	st := s.machine.State()
	switch {
	case st.Step == sess.StepLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case st.Step == sess.StepResults:
		review := "Review answers"
		if s.reviewing {
			review = "Hide review"
		}
		return []layout.KeyHint{
			{Key: "R", Description: review},
			{Key: "N", Description: "New quiz"},
			{Key: "Esc", Description: "Topics"},
		}
	case st.Empty():
		return []layout.KeyHint{{Key: "N", Description: "New quiz"}}
	case st.Pending:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	q, _ := st.Current()
	switch q.KindOr(st.QuestionType) {
	case domain.KindMultipleChoice:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Submit"},
		}
	case domain.KindTrueFalse:
		return []layout.KeyHint{
			{Key: "T/F", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Submit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit quiz"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case effectDoneMsg:
		if msg.owner != s || msg.Event == nil || s.ctx.Err() != nil {
			return s, nil
		}
		return s, s.dispatch(msg.Event)

	case spinner.TickMsg:
		if s.machine.State().Step != sess.StepLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.CapturingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// dispatch applies ev to the machine and schedules the resulting effects.
func (s *QuizScreen) dispatch(ev sess.Event) tea.Cmd {
	effects, err := s.machine.Handle(ev)
	if errors.Is(err, sess.ErrStale) || errors.Is(err, sess.ErrAnswerPending) {
		return nil
	}
	if err != nil {
		s.notice = err.Error()
		return nil
	}
	s.notice = ""

	cmds := make([]tea.Cmd, 0, len(effects)+1)
	for _, eff := range effects {
		cmds = append(cmds, s.run(eff))
	}
	cmds = append(cmds, s.syncQuestion())
	return tea.Batch(cmds...)
}

func (s *QuizScreen) run(eff sess.Effect) tea.Cmd {
	ctx, exec := s.ctx, s.executor
	return func() tea.Msg {
		return effectDoneMsg{owner: s, Event: exec.Run(ctx, eff)}
	}
}

// syncQuestion rebuilds the answer widgets when the question changes.
func (s *QuizScreen) syncQuestion() tea.Cmd {
	st := s.machine.State()
	q, ok := st.Current()
	if !ok || st.Index == s.shown {
		return nil
	}
	s.shown = st.Index

	switch q.KindOr(st.QuestionType) {
	case domain.KindMultipleChoice:
		s.choice = components.NewMultiChoice(q.Options)
		s.choice.Cursor = s.cursor
	case domain.KindTrueFalse:
		s.choice = components.NewTrueFalse()
		s.choice.Cursor = s.cursor
	default:
		s.input = components.NewTextInput("Type your answer...", 200)
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	st := s.machine.State()
	key := msg.String()

	switch st.Step {
	case sess.StepResults:
		return s.handleResultsKey(key)
	case sess.StepQuiz:
	default:
		return s, nil
	}

	if st.Empty() {
		if key == "n" || key == "enter" {
			return s, s.newQuiz()
		}
		return s, nil
	}
	if st.Pending {
		return s, nil
	}

	q, _ := st.Current()
	switch q.KindOr(st.QuestionType) {
	case domain.KindMultipleChoice, domain.KindTrueFalse:
		var chosen string
		s.choice, chosen = s.choice.Update(msg)
		if chosen == "" {
			return s, nil
		}
		return s, s.dispatch(sess.AnswerSubmitted{Answer: answerFor(chosen)})
	}

	switch key {
	case "enter":
		return s, s.dispatch(sess.AnswerSubmitted{Answer: s.input.Value()})
	case "esc":
		return s, s.newQuiz()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handleResultsKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "n", "enter":
		return s, s.newQuiz()
	case "r":
		s.reviewing = !s.reviewing
		s.reviewTop = 0
	case "down", "j":
		if s.reviewing && s.reviewTop < s.machine.State().Quiz.Len()-1 {
			s.reviewTop++
		}
	case "up", "k":
		if s.reviewing && s.reviewTop > 0 {
			s.reviewTop--
		}
	}
	return s, nil
}

// newQuiz resets the session and returns to topic selection.
func (s *QuizScreen) newQuiz() tea.Cmd {
	_, _ = s.machine.Handle(sess.NewQuizRequested{})
	s.cancel()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// answerFor maps a picked option letter to the submitted answer. True and
// false are sent as words.
func answerFor(letter string) string {
	switch letter {
	case "t":
		return "true"
	case "f":
		return "false"
	}
	return letter
}
