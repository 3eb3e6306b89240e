package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/topic"
)

func newPCG() rand.Source {
	return rand.NewPCG(1, 2)
}

func TestDriver_FullSession(t *testing.T) {
	s := &recordingSleeper{}
	mock := remote.NewMockClient().
		AddQuiz(testQuiz(), nil).
		AddVerdict(&quiz.Verdict{IsCorrect: quiz.Bool(true), Feedback: "Yes."}, nil).
		AddVerdict(&quiz.Verdict{IsCorrect: quiz.Bool(false), Feedback: "No."}, nil).
		AddVerdict(&quiz.Verdict{Feedback: "Close enough."}, nil)

	var seen []Event
	d := NewDriver(New(), NewExecutor(mock, WithSleeper(s.sleep)), func(ev Event, _ State) {
		seen = append(seen, ev)
	})
	ctx := context.Background()

	require.NoError(t, d.Start(ctx, TopicSelected{Topic: topic.Lookup(topic.Science)}))
	assert.Equal(t, StepQuiz, d.State().Step)

	require.NoError(t, d.Answer(ctx, "b"))
	assert.Equal(t, 1, d.State().Index)
	require.NoError(t, d.Answer(ctx, "false"))
	require.NoError(t, d.Answer(ctx, "mass attracts mass"))

	st := d.State()
	assert.Equal(t, StepResults, st.Step)
	assert.Len(t, st.Answers, 3)
	assert.Equal(t, 33, Score(st.Answers))
	assert.Equal(t, []time.Duration{AdvanceDelay, AdvanceDelay, AdvanceDelay}, s.waits)

	// topic, loaded, then submit/graded/advance per question.
	assert.Len(t, seen, 2+3*3)

	require.NoError(t, d.Reset(ctx))
	assert.Equal(t, StepInitial, d.State().Step)
}

func TestDriver_OfflineSession(t *testing.T) {
	s := &recordingSleeper{}
	d := NewDriver(New(), NewExecutor(remote.NewMockClient(), WithSleeper(s.sleep)), nil)
	ctx := context.Background()

	require.NoError(t, d.Start(ctx, TopicSelected{Topic: topic.Lookup(topic.Geography)}))
	st := d.State()
	require.Equal(t, StepQuiz, st.Step)
	assert.Equal(t, quiz.SourceFallback, st.Quiz.Source)
	assert.Equal(t, OfflineAdvisory, st.Advisory)

	for d.State().Step == StepQuiz {
		q, ok := d.State().Current()
		require.True(t, ok)
		ans := q.CorrectLetter
		if q.Kind == quiz.KindTrueFalse {
			ans = quiz.TruthLabel(q.Truth.Value)
		}
		require.NoError(t, d.Answer(ctx, ans))
	}

	st = d.State()
	assert.Equal(t, StepResults, st.Step)
	assert.Equal(t, 100, Score(st.Answers))
	assert.Equal(t, DegradedAdvisory, st.Advisory)
}

func TestDriver_AnswerBeforeStart(t *testing.T) {
	d := NewDriver(New(), NewExecutor(nil), nil)
	err := d.Answer(context.Background(), "a")
	require.ErrorIs(t, err, ErrWrongStep)
}

func TestDriver_CanceledContext(t *testing.T) {
	mock := remote.NewMockClient().AddQuiz(testQuiz(), nil)
	d := NewDriver(New(), NewExecutor(mock), nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Start(ctx, TopicSelected{Topic: topic.Lookup(topic.Science)}))
	cancel()

	err := d.Answer(ctx, "b")
	require.True(t, errors.Is(err, context.Canceled))
}
