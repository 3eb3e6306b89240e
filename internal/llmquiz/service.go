// Package llmquiz generates and grades quizzes with a language model
// instead of the study assistant backend.
package llmquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/trivia/internal/grading"
	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/logging"
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
)

type llmSchema = llm.Schema

const (
	// tokensPerQuestion budgets output tokens for quiz generation.
	tokensPerQuestion = 300
	gradeMaxTokens    = 256
)

// Service implements remote.QuizService on top of an llm.Provider.
type Service struct {
	provider llm.Provider
	log      *logging.Logger
	newID    func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithIDGenerator replaces the session id generator.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// New creates a Service. The provider should already carry retries.
func New(p llm.Provider, opts ...Option) *Service {
	s := &Service{
		provider: p,
		log:      logging.Nop(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ remote.QuizService = (*Service)(nil)

// GenerateQuiz asks the model for req.Count questions and decodes them
// like a backend payload.
func (s *Service) GenerateQuiz(ctx context.Context, req remote.GenerateRequest) (*quiz.Quiz, error) {
	const op = "generate quiz"

	count := max(req.Count, 1)
	ctx = llm.WithPurpose(ctx, "quiz-gen")
	resp, err := s.provider.Generate(ctx, llm.UserPrompt(
		generateSystem,
		generatePrompt(req.Topic, req.QuestionType, count),
		quizSchema,
		tokensPerQuestion*count+256,
	))
	if err != nil {
		return nil, providerError(op, err)
	}

	raw, err := wrapPayload(resp.Content)
	if err != nil {
		return nil, &remote.ErrInvalidResponse{Op: op, Err: err}
	}
	q, err := quiz.DecodePayload(raw, req.QuestionType)
	if err != nil {
		return nil, &remote.ErrInvalidResponse{Op: op, Err: err}
	}

	q.SessionID = s.newID()
	q.Topic = req.Topic.ID
	q.Source = quiz.SourceLLM
	s.log.Debug("generated quiz", "session_id", q.SessionID, "questions", q.Len(), "model", resp.Model)
	return q, nil
}

// ValidateAnswer grades multiple-choice and true-false answers by
// comparison and open-ended answers with the model.
func (s *Service) ValidateAnswer(ctx context.Context, req remote.ValidateRequest) (*quiz.Verdict, error) {
	kind := req.QuestionType
	if kind == "" || kind == quiz.KindMixed {
		kind = req.Question.KindOr("")
	}

	switch kind {
	case quiz.KindMultipleChoice, quiz.KindTrueFalse:
		v := compare(req.Question, kind, req.UserAnswer)
		return &v, nil
	}

	ctx = llm.WithPurpose(ctx, "grade")
	resp, err := s.provider.Generate(ctx, llm.UserPrompt(
		gradeSystem,
		gradePrompt(req.Question, req.UserAnswer),
		verdictSchema,
		gradeMaxTokens,
	))
	if err != nil {
		return nil, providerError("validate answer", err)
	}

	var v quiz.Verdict
	if err := json.Unmarshal(resp.Content, &v); err != nil {
		return nil, &remote.ErrInvalidResponse{Op: "validate answer", Err: err}
	}
	return &v, nil
}

// compare grades closed questions. The verdict is not Local: the model
// supplied the answer key.
func compare(q quiz.Question, kind quiz.Kind, answer string) quiz.Verdict {
	v := grading.Local(q, kind, answer)
	v.Local = false
	v.Feedback = strings.TrimSpace(strings.TrimSuffix(v.Feedback, grading.LocalNotice))
	if q.Explanation != "" {
		v.Feedback += " " + q.Explanation
	}
	return v
}

// wrapPayload normalizes the model's {"questions": [...]} and re-encodes
// it in the backend's {"quiz": {"questions": [...]}} shape.
func wrapPayload(content json.RawMessage) (json.RawMessage, error) {
	var body struct {
		Questions []quiz.Question `json:"questions"`
	}
	if err := json.Unmarshal(content, &body); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	for i := range body.Questions {
		body.Questions[i] = normalize(body.Questions[i])
	}
	return json.Marshal(map[string]any{
		"quiz": map[string]any{"questions": body.Questions},
	})
}

// normalize drops fields the model filled for other question types and
// strips letter prefixes from options.
func normalize(q quiz.Question) quiz.Question {
	switch q.Kind {
	case quiz.KindMultipleChoice:
		q.CorrectLetter = strings.ToLower(strings.TrimSuffix(q.CorrectLetter, ")"))
		for i, opt := range q.Options {
			q.Options[i] = stripLetter(opt, i)
		}
		q.Truth = quiz.Truth{}
	case quiz.KindTrueFalse:
		q.Options = nil
		q.CorrectLetter = ""
	case quiz.KindOpenEnded:
		q.Options = nil
		q.CorrectLetter = ""
		q.Truth = quiz.Truth{}
	}
	return q
}

func stripLetter(opt string, i int) string {
	prefix := quiz.Letter(i) + ")"
	if len(opt) >= len(prefix) && strings.EqualFold(opt[:len(prefix)], prefix) {
		return strings.TrimSpace(opt[len(prefix):])
	}
	return opt
}

func providerError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return &remote.ErrInvalidResponse{Op: op, Err: err}
	}
	return &remote.ErrServiceUnavailable{Op: op, Err: err}
}
