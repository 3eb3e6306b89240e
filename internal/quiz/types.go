// Package quiz holds the quiz domain types shared by the quiz service
// client, the fallback generator, local grading and the session machine.
package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/trivia/internal/topic"
)

// Kind is the answer format of a question.
type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindTrueFalse      Kind = "true-false"
	KindOpenEnded      Kind = "open-ended"

	// KindMixed is only valid as a requested question type.
	KindMixed Kind = "mixed"
)

// ParseKind normalizes a user supplied question type.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mixed":
		return KindMixed, nil
	case "multiple-choice", "multiple_choice", "mc":
		return KindMultipleChoice, nil
	case "true-false", "true_false", "tf":
		return KindTrueFalse, nil
	case "open-ended", "open_ended", "open":
		return KindOpenEnded, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Source records where a quiz came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceLLM      Source = "llm"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Question is a single quiz question. Kind selects which of the
// variant fields are meaningful:
//   - multiple-choice: Options and CorrectLetter
//   - true-false: Truth
//   - open-ended: ModelAnswer
type Question struct {
	Kind   Kind
	Prompt string

	Options       []string
	CorrectLetter string

	Truth Truth

	ModelAnswer string

	// Explanation is shown after the question is answered.
	Explanation string

	// Topic tags the question's category. Empty for single-topic quizzes
	// returned by the quiz service.
	Topic topic.ID
}

// KindOr returns the question's own kind. When the payload carried no
// type it uses requested if that is concrete, otherwise it infers the kind
// from the fields present.
func (q Question) KindOr(requested Kind) Kind {
	if q.Kind != "" {
		return q.Kind
	}
	switch requested {
	case KindMultipleChoice, KindTrueFalse, KindOpenEnded:
		return requested
	}
	switch {
	case q.Truth.Set:
		return KindTrueFalse
	case len(q.Options) > 0:
		return KindMultipleChoice
	default:
		return KindOpenEnded
	}
}

// Validate checks the variant invariants of q.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question has no prompt")
	}
	switch q.KindOr("") {
	case KindMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple-choice question %q has %d options, need at least 2", q.Prompt, len(q.Options))
		}
		idx := LetterIndex(q.CorrectLetter)
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("multiple-choice question %q has correct answer %q outside its options", q.Prompt, q.CorrectLetter)
		}
	case KindTrueFalse:
		if !q.Truth.Set {
			return fmt.Errorf("true-false question %q has no truth value", q.Prompt)
		}
	case KindOpenEnded:
	default:
		return fmt.Errorf("question %q has unknown type %q", q.Prompt, q.Kind)
	}
	return nil
}

// CorrectAnswerText renders the expected answer for the results review.
func (q Question) CorrectAnswerText() string {
	switch q.KindOr("") {
	case KindMultipleChoice:
		idx := LetterIndex(q.CorrectLetter)
		if idx < 0 || idx >= len(q.Options) {
			return q.CorrectLetter
		}
		return fmt.Sprintf("%s) %s", q.CorrectLetter, q.Options[idx])
	case KindTrueFalse:
		return TruthLabel(q.Truth.Value)
	default:
		return q.ModelAnswer
	}
}

// Letter returns the option letter for index i ("a" for 0).
func Letter(i int) string {
	return string(rune('a' + i))
}

// LetterIndex returns the option index for a letter, or -1.
func LetterIndex(letter string) int {
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return -1
	}
	return int(letter[0] - 'a')
}

// TruthLabel renders a boolean as "True" or "False".
func TruthLabel(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// Quiz is an ordered set of questions tied to one session identifier.
type Quiz struct {
	SessionID string
	Topic     topic.ID
	Questions []Question
	Source    Source
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Questions)
}

// Verdict is the grading outcome for one answer.
type Verdict struct {
	// IsCorrect is nil when the answer could not be graded.
	IsCorrect *bool  `json:"isCorrect"`
	Feedback  string `json:"feedback"`

	// Local is set when the verdict was computed without the quiz service.
	Local bool `json:"-"`
}

// Correct reports whether the verdict is a graded correct answer.
func (v Verdict) Correct() bool {
	return v.IsCorrect != nil && *v.IsCorrect
}

// Graded reports whether a correctness decision was made.
func (v Verdict) Graded() bool {
	return v.IsCorrect != nil
}

// Bool returns a pointer to b, for building verdicts.
func Bool(b bool) *bool {
	return &b
}

// AnswerRecord is the user's answer to one question and its verdict.
type AnswerRecord struct {
	Index      int
	UserAnswer string
	Verdict    Verdict
}
