package llmquiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

const generateSystem = `You write trivia quizzes for a study assistant.
Questions must be factually accurate, unambiguous and answerable in a sentence.
Return only JSON matching the provided schema.`

const gradeSystem = `You grade answers to open-ended trivia questions.
Accept answers that capture the key fact of the model answer even when phrased differently or misspelled.
Keep feedback to one or two sentences and always mention the correct answer when the user is wrong.
Set isCorrect to null only when the question cannot be graded at all.`

// quizSchema is the structured output asked of the model. Every field is
// required so that strict providers accept it; unused variant fields are
// sent empty.
var quizSchema = &llmSchema{
	Name:        "trivia-llm-quiz",
	Description: "A list of trivia questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple-choice", "true-false", "open-ended"},
						},
						"question":      map[string]any{"type": "string"},
						"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correctAnswer": map[string]any{"type": "string"},
						"isTrue":        map[string]any{"type": "boolean"},
						"modelAnswer":   map[string]any{"type": "string"},
						"explanation":   map[string]any{"type": "string"},
						"topic":         map[string]any{"type": "string"},
					},
					"required": []any{
						"type", "question", "options", "correctAnswer",
						"isTrue", "modelAnswer", "explanation", "topic",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

var verdictSchema = &llmSchema{
	Name:        "trivia-llm-verdict",
	Description: "The grading decision for one answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{"type": []any{"boolean", "null"}},
			"feedback":  map[string]any{"type": "string"},
		},
		"required":             []any{"isCorrect", "feedback"},
		"additionalProperties": false,
	},
}

func generatePrompt(t topic.Topic, kind quiz.Kind, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d trivia questions about %s.\n", count, t.Prompt)

	switch kind {
	case quiz.KindMultipleChoice, quiz.KindTrueFalse, quiz.KindOpenEnded:
		fmt.Fprintf(&b, "Every question must be of type %q.\n", kind)
	default:
		b.WriteString("Mix the question types: multiple-choice, true-false and open-ended.\n")
	}
	if t.ID == topic.Mixed {
		b.WriteString("Draw the questions from different topics and set topic to one of: history, culture, sports, science, geography.\n")
	} else {
		fmt.Fprintf(&b, "Set topic to %q.\n", t.ID)
	}

	b.WriteString(`Rules per type:
- multiple-choice: 4 options without letter prefixes, correctAnswer is the letter of the right option ("a" to "d").
- true-false: write a statement in question, set isTrue.
- open-ended: set modelAnswer to a short reference answer.
Leave fields that do not apply to a question's type empty (false for isTrue).
Give every question a one-sentence explanation.`)
	return b.String()
}

func gradePrompt(q quiz.Question, answer string) string {
	return fmt.Sprintf("Question: %s\nModel answer: %s\nUser answer: %s", q.Prompt, q.ModelAnswer, answer)
}
