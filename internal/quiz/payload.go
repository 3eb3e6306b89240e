package quiz

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/trivia/internal/schema"
)

// ErrNoQuestions is returned for a payload that decodes to zero questions.
var ErrNoQuestions = errors.New("quiz has no questions")

// PayloadSchema describes the body of a quiz generation response.
var PayloadSchema = &schema.Schema{
	Name:        "trivia-quiz-payload",
	Description: "A generated trivia quiz with its session identifier",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sessionId": map[string]any{"type": "string"},
			"quiz": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"questions": map[string]any{
						"type":  "array",
						"items": QuestionSchema.Definition,
					},
				},
				"required": []any{"questions"},
			},
		},
		"required": []any{"quiz"},
	},
}

// QuestionSchema describes a single question on the wire.
var QuestionSchema = &schema.Schema{
	Name:        "trivia-question",
	Description: "A trivia question: multiple-choice, true-false or open-ended",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": []any{"multiple-choice", "true-false", "open-ended"},
			},
			"question":      map[string]any{"type": "string"},
			"statement":     map[string]any{"type": "string"},
			"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"correctAnswer": map[string]any{"type": "string"},
			"isTrue":        map[string]any{"type": []any{"boolean", "string", "null"}},
			"modelAnswer":   map[string]any{"type": "string"},
			"explanation":   map[string]any{"type": "string"},
			"topic":         map[string]any{"type": "string"},
		},
	},
}

type payload struct {
	SessionID string `json:"sessionId"`
	Quiz      struct {
		Questions []Question `json:"questions"`
	} `json:"quiz"`
}

// DecodePayload parses and checks a quiz generation response. Questions
// without a type take requested as their kind when it is concrete.
func DecodePayload(raw json.RawMessage, requested Kind) (*Quiz, error) {
	if err := schema.Validate(PayloadSchema, raw); err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode quiz payload: %w", err)
	}
	if len(p.Quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]Question, len(p.Quiz.Questions))
	for i, q := range p.Quiz.Questions {
		q.Kind = q.KindOr(requested)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions[i] = q
	}

	return &Quiz{SessionID: p.SessionID, Questions: questions}, nil
}
