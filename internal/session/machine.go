package session

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/abhisek/trivia/internal/quiz"
)

const (
	// AdvanceDelay separates a recorded verdict from moving on, so the
	// user can read the feedback.
	AdvanceDelay = 1500 * time.Millisecond

	// DefaultCount is the number of questions per quiz.
	DefaultCount = 5

	// DegradedAdvisory is shown when an answer was graded locally.
	DegradedAdvisory = "There was a problem validating your answer. Local validation was used."
)

var (
	// ErrWrongStep rejects an event that is not valid in the current step.
	ErrWrongStep = errors.New("event not allowed in current step")

	// ErrAnswerPending rejects a second submission for the same question.
	ErrAnswerPending = errors.New("answer already submitted for this question")

	// ErrStale marks a response issued before the latest reset.
	ErrStale = errors.New("stale event dropped")

	// ErrNoQuestions rejects answers to a quiz without questions.
	ErrNoQuestions = quiz.ErrNoQuestions
)

// generation hands out tokens unique within the process, so a response
// issued for one machine never matches another machine's token.
var generation atomic.Uint64

func nextToken() uint64 {
	return generation.Add(1)
}

// Machine applies events to a session State.
type Machine struct {
	state        State
	advanceDelay time.Duration
}

// Option customizes a Machine.
type Option func(*Machine)

// WithAdvanceDelay overrides AdvanceDelay.
func WithAdvanceDelay(d time.Duration) Option {
	return func(m *Machine) { m.advanceDelay = d }
}

// New returns a machine in StepInitial.
func New(opts ...Option) *Machine {
	m := &Machine{advanceDelay: AdvanceDelay}
	for _, opt := range opts {
		opt(m)
	}
	m.state.QuestionType = quiz.KindMixed
	return m
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state.clone()
}

// Handle applies ev. On error the state is unchanged.
func (m *Machine) Handle(ev Event) ([]Effect, error) {
	switch ev := ev.(type) {
	case TopicSelected:
		return m.selectTopic(ev)
	case QuizLoaded:
		return m.loadQuiz(ev)
	case AnswerSubmitted:
		return m.submit(ev)
	case AnswerGraded:
		return m.grade(ev)
	case AdvanceDue:
		return m.advance(ev)
	case NewQuizRequested:
		m.reset()
		return nil, nil
	}
	return nil, fmt.Errorf("unknown event %T", ev)
}

func (m *Machine) selectTopic(ev TopicSelected) ([]Effect, error) {
	if m.state.Step != StepInitial {
		return nil, fmt.Errorf("select topic in %s: %w", m.state.Step, ErrWrongStep)
	}

	kind := ev.QuestionType
	if kind == "" {
		kind = quiz.KindMixed
	}
	count := ev.Count
	if count <= 0 {
		count = DefaultCount
	}

	m.state.Token = nextToken()
	m.state.Step = StepLoading
	m.state.Topic = ev.Topic
	m.state.QuestionType = kind
	m.state.Count = count
	m.state.Advisory = ""

	return []Effect{FetchQuiz{
		Token:        m.state.Token,
		Topic:        ev.Topic,
		QuestionType: kind,
		Count:        count,
	}}, nil
}

func (m *Machine) loadQuiz(ev QuizLoaded) ([]Effect, error) {
	if ev.Token != m.state.Token {
		return nil, ErrStale
	}
	if m.state.Step != StepLoading {
		return nil, fmt.Errorf("load quiz in %s: %w", m.state.Step, ErrWrongStep)
	}

	m.state.Step = StepQuiz
	m.state.Quiz = ev.Quiz
	m.state.Index = 0
	m.state.Answers = nil
	m.state.Pending = false
	m.state.Advisory = ev.Advisory
	if ev.Quiz.Len() == 0 {
		m.state.Advisory = joinAdvisory(ev.Advisory, "The quiz has no questions. Start a new quiz to try again.")
	}
	return nil, nil
}

func (m *Machine) submit(ev AnswerSubmitted) ([]Effect, error) {
	if m.state.Step != StepQuiz {
		return nil, fmt.Errorf("submit answer in %s: %w", m.state.Step, ErrWrongStep)
	}
	if m.state.Empty() {
		return nil, ErrNoQuestions
	}
	if m.state.Pending {
		return nil, ErrAnswerPending
	}
	if strings.TrimSpace(ev.Answer) == "" {
		return nil, errors.New("answer is empty")
	}

	q, _ := m.state.Current()
	m.state.Pending = true

	return []Effect{GradeAnswer{
		Token:        m.state.Token,
		SessionID:    m.state.Quiz.SessionID,
		Index:        m.state.Index,
		Question:     q,
		QuestionType: q.KindOr(m.state.QuestionType),
		Answer:       ev.Answer,
		Offline:      m.state.Quiz.Source == quiz.SourceFallback,
	}}, nil
}

func (m *Machine) grade(ev AnswerGraded) ([]Effect, error) {
	if ev.Token != m.state.Token {
		return nil, ErrStale
	}
	if m.state.Step != StepQuiz || !m.state.Pending || ev.Index != m.state.Index || m.state.Graded() {
		return nil, ErrStale
	}

	m.state.Answers = append(m.state.Answers, quiz.AnswerRecord{
		Index:      ev.Index,
		UserAnswer: ev.Answer,
		Verdict:    ev.Verdict,
	})
	if ev.Verdict.Local {
		m.state.Advisory = DegradedAdvisory
	}

	return []Effect{ScheduleAdvance{
		Token: m.state.Token,
		Index: ev.Index,
		After: m.advanceDelay,
	}}, nil
}

func (m *Machine) advance(ev AdvanceDue) ([]Effect, error) {
	if ev.Token != m.state.Token {
		return nil, ErrStale
	}
	if m.state.Step != StepQuiz || ev.Index != m.state.Index || !m.state.Graded() {
		return nil, ErrStale
	}

	m.state.Pending = false
	if m.state.IsLast() {
		m.state.Step = StepResults
		return nil, nil
	}
	m.state.Index++
	return nil, nil
}

func (m *Machine) reset() {
	m.state = State{
		Step:         StepInitial,
		QuestionType: quiz.KindMixed,
		Token:        nextToken(),
	}
}

func joinAdvisory(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}
