package session

import (
	"time"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

// Event is an input to Machine.Handle.
type Event interface {
	event()
}

// TopicSelected starts loading a quiz.
type TopicSelected struct {
	Topic        topic.Topic
	QuestionType quiz.Kind
	Count        int
}

// QuizLoaded delivers the outcome of a FetchQuiz effect.
type QuizLoaded struct {
	Token uint64
	Quiz  *quiz.Quiz

	// Advisory explains a degraded load, e.g. offline questions.
	Advisory string
}

// AnswerSubmitted is the user's answer to the current question.
type AnswerSubmitted struct {
	Answer string
}

// AnswerGraded delivers the outcome of a GradeAnswer effect.
type AnswerGraded struct {
	Token   uint64
	Index   int
	Answer  string
	Verdict quiz.Verdict
}

// AdvanceDue fires when a ScheduleAdvance delay elapses.
type AdvanceDue struct {
	Token uint64
	Index int
}

// NewQuizRequested discards everything and returns to topic selection.
type NewQuizRequested struct{}

func (TopicSelected) event()    {}
func (QuizLoaded) event()       {}
func (AnswerSubmitted) event()  {}
func (AnswerGraded) event()     {}
func (AdvanceDue) event()       {}
func (NewQuizRequested) event() {}

// Effect is work requested by the machine.
type Effect interface {
	effect()
}

// FetchQuiz asks for a quiz; its outcome is a QuizLoaded.
type FetchQuiz struct {
	Token        uint64
	Topic        topic.Topic
	QuestionType quiz.Kind
	Count        int
}

// GradeAnswer asks for a verdict; its outcome is an AnswerGraded.
type GradeAnswer struct {
	Token        uint64
	SessionID    string
	Index        int
	Question     quiz.Question
	QuestionType quiz.Kind
	Answer       string

	// Offline is set for fallback quizzes, which the service has no
	// session for.
	Offline bool
}

// ScheduleAdvance asks for an AdvanceDue after a delay.
type ScheduleAdvance struct {
	Token uint64
	Index int
	After time.Duration
}

func (FetchQuiz) effect()       {}
func (GradeAnswer) effect()     {}
func (ScheduleAdvance) effect() {}
