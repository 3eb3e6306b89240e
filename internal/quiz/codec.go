package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/trivia/internal/topic"
)

// Truth is the stored truth value of a true-false question. The quiz
// service sends it either as a JSON boolean or as the string "true"/"false".
type Truth struct {
	Value bool
	Set   bool
}

// NewTruth returns a set Truth.
func NewTruth(v bool) Truth {
	return Truth{Value: v, Set: true}
}

func (t *Truth) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Truth{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = NewTruth(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("truth value must be a boolean or string: %s", data)
	}
	*t = NewTruth(ParseTruth(s))
	return nil
}

func (t Truth) MarshalJSON() ([]byte, error) {
	if !t.Set {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// ParseTruth normalizes a user or payload answer: case-insensitive "true"
// is true, anything else is false.
func ParseTruth(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

type wireQuestion struct {
	Type          string   `json:"type,omitempty"`
	Question      string   `json:"question,omitempty"`
	Statement     string   `json:"statement,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	IsTrue        *Truth   `json:"isTrue,omitempty"`
	ModelAnswer   string   `json:"modelAnswer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	Topic         string   `json:"topic,omitempty"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w wireQuestion
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*q = Question{
		Kind:          Kind(w.Type),
		Prompt:        w.Question,
		Options:       w.Options,
		CorrectLetter: strings.TrimSpace(w.CorrectAnswer),
		ModelAnswer:   w.ModelAnswer,
		Explanation:   w.Explanation,
		Topic:         topic.ID(w.Topic),
	}
	if q.Prompt == "" {
		q.Prompt = w.Statement
	}
	if w.IsTrue != nil {
		q.Truth = *w.IsTrue
	}
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := wireQuestion{
		Type:        string(q.Kind),
		Options:     q.Options,
		ModelAnswer: q.ModelAnswer,
		Explanation: q.Explanation,
		Topic:       string(q.Topic),
	}
	switch q.KindOr("") {
	case KindTrueFalse:
		w.Statement = q.Prompt
		truth := q.Truth
		w.IsTrue = &truth
	case KindMultipleChoice:
		w.Question = q.Prompt
		w.CorrectAnswer = q.CorrectLetter
	default:
		w.Question = q.Prompt
	}
	return json.Marshal(w)
}

// CorrectAnswerHint returns the hint the quiz service accepts alongside an
// answer: the letter for multiple-choice, "true"/"false" for true-false,
// and "" when there is nothing to hint.
func (q Question) CorrectAnswerHint(kind Kind) string {
	switch kind {
	case KindMultipleChoice:
		return q.CorrectLetter
	case KindTrueFalse:
		if q.Truth.Value {
			return "true"
		}
		return "false"
	}
	return ""
}
