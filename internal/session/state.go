// Package session drives one quiz from topic selection to results.
//
// Machine is a pure reducer: Handle applies an Event to the State and
// returns the Effects the caller must run. Executor runs effects against
// the quiz service and turns their outcomes back into events. Every
// asynchronous event carries the generation Token it was issued under, so
// responses that arrive after a reset are dropped.
package session

import (
	"slices"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

// Step is the coarse position in the quiz flow.
type Step int

const (
	StepInitial Step = iota
	StepLoading
	StepQuiz
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepInitial:
		return "initial"
	case StepLoading:
		return "loading"
	case StepQuiz:
		return "quiz"
	case StepResults:
		return "results"
	}
	return "unknown"
}

// State is the full session state. It is owned by whoever calls
// Machine.Handle; State() hands out copies.
type State struct {
	Step         Step
	Topic        topic.Topic
	QuestionType quiz.Kind
	Count        int

	Quiz    *quiz.Quiz
	Index   int
	Answers []quiz.AnswerRecord

	// Advisory is a non-fatal message for the user, such as offline
	// questions being used.
	Advisory string

	// Pending is set from answer submission until the index advances.
	Pending bool

	// Token is replaced on every reset and every new quiz request. Tokens
	// are unique across machines in one process.
	Token uint64
}

// Current returns the question at Index.
func (s State) Current() (quiz.Question, bool) {
	if s.Step != StepQuiz || s.Index < 0 || s.Index >= s.Quiz.Len() {
		return quiz.Question{}, false
	}
	return s.Quiz.Questions[s.Index], true
}

// Empty reports a loaded quiz that has no questions.
func (s State) Empty() bool {
	return s.Step == StepQuiz && s.Quiz.Len() == 0
}

// Graded reports whether the current question already has a record.
func (s State) Graded() bool {
	return len(s.Answers) > s.Index
}

// LastRecord returns the most recent answer record.
func (s State) LastRecord() (quiz.AnswerRecord, bool) {
	if len(s.Answers) == 0 {
		return quiz.AnswerRecord{}, false
	}
	return s.Answers[len(s.Answers)-1], true
}

// IsLast reports whether Index is the final question.
func (s State) IsLast() bool {
	return s.Index == s.Quiz.Len()-1
}

func (s State) clone() State {
	s.Answers = slices.Clone(s.Answers)
	return s
}
