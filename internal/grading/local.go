// Package grading checks answers without the quiz service.
package grading

import (
	"fmt"

	"github.com/abhisek/trivia/internal/quiz"
)

// LocalNotice is appended to every locally graded verdict.
const LocalNotice = "(validated locally due to a connectivity issue)"

// UngradedFeedback is the feedback for answers that cannot be graded locally.
const UngradedFeedback = "Could not reach the grading service. Please compare your answer with the model answer."

// Local grades userAnswer against q using kind as the question type.
// It has no side effects: identical inputs always produce identical verdicts.
func Local(q quiz.Question, kind quiz.Kind, userAnswer string) quiz.Verdict {
	switch kind {
	case quiz.KindMultipleChoice:
		correct := userAnswer == q.CorrectLetter
		return verdict(correct, "")

	case quiz.KindTrueFalse:
		want := q.Truth.Value
		correct := quiz.ParseTruth(userAnswer) == want
		return verdict(correct, fmt.Sprintf("The correct answer is %s.", quiz.TruthLabel(want)))

	default:
		return quiz.Verdict{
			Feedback: UngradedFeedback,
			Local:    true,
		}
	}
}

// verdict builds a local verdict. Feedback carries no correct/incorrect
// label since renderers add their own.
func verdict(correct bool, wrongDetail string) quiz.Verdict {
	feedback := LocalNotice
	if !correct && wrongDetail != "" {
		feedback = wrongDetail + " " + LocalNotice
	}
	return quiz.Verdict{
		IsCorrect: quiz.Bool(correct),
		Feedback:  feedback,
		Local:     true,
	}
}
