package remote

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/trivia/internal/quiz"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy is an exponential backoff schedule for sequential attempts.
// Attempts never overlap.
type RetryPolicy struct {
	MaxAttempts int
	InitialWait time.Duration
	Multiplier  float64

	// MaxWait caps a single wait. Zero means uncapped.
	MaxWait time.Duration

	// Jitter adds up to this fraction of the wait on top of it. Waits
	// never shrink below the exponential schedule.
	Jitter float64

	// Sleep replaces the real timer in tests.
	Sleep SleepFunc
}

// DefaultRetryPolicy waits 2s after the first failure and 4s after the
// second, for at most 3 attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		InitialWait: time.Second,
		Multiplier:  2.0,
	}
}

// Backoff returns the wait after the given number of failed attempts
// (1 for the first failure): InitialWait × Multiplier^failures.
func (p RetryPolicy) Backoff(failures int) time.Duration {
	wait := float64(p.InitialWait) * math.Pow(p.Multiplier, float64(failures))
	if p.MaxWait > 0 && wait > float64(p.MaxWait) {
		wait = float64(p.MaxWait)
	}
	if p.Jitter > 0 {
		wait += wait * p.Jitter * rand.Float64()
	}
	return time.Duration(wait)
}

// Do calls fn until it succeeds, the attempts run out, or ctx is done.
// It returns the number of attempts made and the last error.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		// Context errors are never retried.
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return attempt, err
		}
		if attempt == maxAttempts {
			break
		}
		if err := sleep(ctx, p.Backoff(attempt)); err != nil {
			return attempt, err
		}
	}
	return maxAttempts, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryService retries ValidateAnswer according to a RetryPolicy.
// GenerateQuiz is passed through: its caller falls back instead.
type RetryService struct {
	inner  QuizService
	policy RetryPolicy
}

// WithRetry wraps a QuizService with validation retries.
func WithRetry(s QuizService, p RetryPolicy) *RetryService {
	return &RetryService{inner: s, policy: p}
}

func (r *RetryService) GenerateQuiz(ctx context.Context, req GenerateRequest) (*quiz.Quiz, error) {
	return r.inner.GenerateQuiz(ctx, req)
}

func (r *RetryService) ValidateAnswer(ctx context.Context, req ValidateRequest) (*quiz.Verdict, error) {
	var verdict *quiz.Verdict
	attempts, err := r.policy.Do(ctx, func(ctx context.Context) error {
		v, err := r.inner.ValidateAnswer(ctx, req)
		if err != nil {
			return err
		}
		verdict = v
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, &ErrValidationExhausted{Attempts: attempts, Err: err}
	}
	return verdict, nil
}
