package remote

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/trivia/internal/logging"
	"github.com/abhisek/trivia/internal/quiz"
)

// LoggingService is a decorator that logs every quiz service call.
type LoggingService struct {
	inner QuizService
	log   *logging.Logger
}

// WithLogging wraps a QuizService with structured call logging.
func WithLogging(s QuizService, log *logging.Logger) *LoggingService {
	return &LoggingService{inner: s, log: log}
}

func (l *LoggingService) GenerateQuiz(ctx context.Context, req GenerateRequest) (*quiz.Quiz, error) {
	start := time.Now()
	q, err := l.inner.GenerateQuiz(ctx, req)

	kv := []any{
		"op", "generate_quiz",
		"topic", req.Topic.ID,
		"question_type", req.QuestionType,
		"count", req.Count,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		l.log.Warn("quiz generation failed", append(kv, "error_kind", errorKind(err), "error", err)...)
		return nil, err
	}
	l.log.Info("quiz generated", append(kv, "session_id", q.SessionID, "questions", q.Len())...)
	return q, nil
}

func (l *LoggingService) ValidateAnswer(ctx context.Context, req ValidateRequest) (*quiz.Verdict, error) {
	start := time.Now()
	v, err := l.inner.ValidateAnswer(ctx, req)

	kv := []any{
		"op", "validate_answer",
		"session_id", req.SessionID,
		"question_index", req.QuestionIndex,
		"question_type", req.QuestionType,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		l.log.Warn("answer validation failed", append(kv, "error_kind", errorKind(err), "error", err)...)
		return nil, err
	}
	l.log.Debug("answer validated", append(kv, "graded", v.Graded(), "correct", v.Correct())...)
	return v, nil
}

// errorKind names the failure class for log aggregation.
func errorKind(err error) string {
	var (
		unavail   *ErrServiceUnavailable
		invalid   *ErrInvalidResponse
		exhausted *ErrValidationExhausted
	)
	switch {
	case errors.As(err, &exhausted):
		return "validation_exhausted"
	case errors.As(err, &invalid):
		return "invalid_response"
	case errors.As(err, &unavail) && unavail.Transport():
		return "network"
	case errors.As(err, &unavail):
		return "server"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}
