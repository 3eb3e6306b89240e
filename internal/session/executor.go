package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/trivia/internal/cache"
	"github.com/abhisek/trivia/internal/fallback"
	"github.com/abhisek/trivia/internal/grading"
	"github.com/abhisek/trivia/internal/logging"
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
)

// OfflineAdvisory is shown when fallback questions replace a quiz.
const OfflineAdvisory = "Could not reach the quiz service. Showing offline questions."

// Executor runs effects and reports their outcomes as events.
type Executor struct {
	service  remote.QuizService
	loader   *cache.Loader
	fallback *fallback.Generator
	sleep    remote.SleepFunc
	log      *logging.Logger
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithCache reads quizzes through loader.
func WithCache(loader *cache.Loader) ExecutorOption {
	return func(e *Executor) { e.loader = loader }
}

// WithFallback replaces the fallback generator.
func WithFallback(g *fallback.Generator) ExecutorOption {
	return func(e *Executor) { e.fallback = g }
}

// WithSleeper replaces the timer used by ScheduleAdvance.
func WithSleeper(s remote.SleepFunc) ExecutorOption {
	return func(e *Executor) { e.sleep = s }
}

// WithLogger sets the executor's logger.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) { e.log = l }
}

// NewExecutor creates an executor over service. The service is used as
// given: wrap it with remote.WithRetry for validation retries. A nil
// service always uses fallback questions and local grading.
func NewExecutor(service remote.QuizService, opts ...ExecutorOption) *Executor {
	e := &Executor{service: service}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.Nop()
	}
	if e.loader == nil {
		e.loader = cache.NewLoader(cache.Nop{}, e.log)
	}
	if e.fallback == nil {
		e.fallback = fallback.New(nil)
	}
	if e.sleep == nil {
		e.sleep = sleepContext
	}
	return e
}

// Run executes eff and returns the resulting event, or nil when there is
// nothing to deliver. Work cancelled through ctx delivers nothing.
func (e *Executor) Run(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case FetchQuiz:
		return e.fetch(ctx, eff)
	case GradeAnswer:
		return e.grade(ctx, eff)
	case ScheduleAdvance:
		if err := e.sleep(ctx, eff.After); err != nil {
			return nil
		}
		return AdvanceDue{Token: eff.Token, Index: eff.Index}
	}
	e.log.Error("unknown effect", "effect", fmt.Sprintf("%T", eff))
	return nil
}

func (e *Executor) fetch(ctx context.Context, eff FetchQuiz) Event {
	if e.service == nil {
		return QuizLoaded{Token: eff.Token, Quiz: e.fallback.Quiz(eff.Topic.ID)}
	}

	key := cache.Key{Topic: eff.Topic.ID, Kind: eff.QuestionType, Count: eff.Count}
	q, err := e.loader.Load(ctx, key, func(ctx context.Context) (*quiz.Quiz, error) {
		return e.service.GenerateQuiz(ctx, remote.GenerateRequest{
			Topic:        eff.Topic,
			QuestionType: eff.QuestionType,
			Count:        eff.Count,
		})
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		e.log.Warn("using fallback questions", "topic", string(eff.Topic.ID), "error", err)
		return QuizLoaded{
			Token:    eff.Token,
			Quiz:     e.fallback.Quiz(eff.Topic.ID),
			Advisory: OfflineAdvisory,
		}
	}
	return QuizLoaded{Token: eff.Token, Quiz: q}
}

func (e *Executor) grade(ctx context.Context, eff GradeAnswer) Event {
	graded := func(v quiz.Verdict) Event {
		return AnswerGraded{Token: eff.Token, Index: eff.Index, Answer: eff.Answer, Verdict: v}
	}

	if e.service == nil || eff.Offline {
		return graded(grading.Local(eff.Question, eff.QuestionType, eff.Answer))
	}

	req := remote.NewValidateRequest(eff.SessionID, eff.Index, eff.Question, eff.QuestionType, eff.Answer)
	v, err := e.service.ValidateAnswer(ctx, req)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	if err != nil || v == nil {
		e.log.Warn("grading locally", "session_id", eff.SessionID, "question_index", eff.Index, "error", err)
		return graded(grading.Local(eff.Question, eff.QuestionType, eff.Answer))
	}
	return graded(*v)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
