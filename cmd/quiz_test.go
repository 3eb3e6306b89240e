package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/session"
	"github.com/abhisek/trivia/internal/topic"
)

func lineQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		SessionID: "sess-1",
		Topic:     topic.Science,
		Source:    quiz.SourceRemote,
		Questions: []quiz.Question{
			{Kind: quiz.KindMultipleChoice, Prompt: "H2O is?", Options: []string{"Salt", "Water", "Air"}, CorrectLetter: "b"},
			{Kind: quiz.KindTrueFalse, Prompt: "Light is faster than sound.", Truth: quiz.NewTruth(true), Explanation: "Light travels at about 300,000 km/s."},
		},
	}
}

func playLine(t *testing.T, mock *remote.MockClient, input string) string {
	t.Helper()
	var out bytes.Buffer
	exec := session.NewExecutor(mock)
	sel := session.TopicSelected{Topic: topic.Lookup(topic.Science), QuestionType: quiz.KindMixed, Count: 2}
	err := runLineQuiz(context.Background(), strings.NewReader(input), &out, session.New(session.WithAdvanceDelay(0)), exec, sel)
	require.NoError(t, err)
	return out.String()
}

func TestLineQuiz_FullRound(t *testing.T) {
	mock := remote.NewMockClient().
		AddQuiz(lineQuiz(), nil).
		AddVerdict(&quiz.Verdict{IsCorrect: quiz.Bool(true), Feedback: "Water."}, nil).
		AddVerdict(&quiz.Verdict{IsCorrect: quiz.Bool(false), Feedback: "It is true."}, nil)

	out := playLine(t, mock, "B\nf\n")

	assert.Contains(t, out, "Question 1/2")
	assert.Contains(t, out, "  b) Water")
	assert.Contains(t, out, "Correct! Water.")
	assert.Contains(t, out, "Incorrect. It is true.")
	assert.Contains(t, out, "Your score: 50%")
	assert.Contains(t, out, "Light travels at about")

	require.Len(t, mock.ValidateCalls, 2)
	assert.Equal(t, "b", mock.ValidateCalls[0].UserAnswer)
	assert.Equal(t, "false", mock.ValidateCalls[1].UserAnswer)
}

func TestLineQuiz_EmptyAnswerReprompts(t *testing.T) {
	mock := remote.NewMockClient().
		AddQuiz(lineQuiz(), nil).
		AddVerdict(&quiz.Verdict{IsCorrect: quiz.Bool(true)}, nil).
		AddVerdict(&quiz.Verdict{IsCorrect: quiz.Bool(true)}, nil)

	out := playLine(t, mock, "\nb\nt\n")
	assert.Contains(t, out, "answer is empty, try again.")
	assert.Equal(t, 2, strings.Count(out, "Question 1/2"))
	assert.Contains(t, out, "Your score: 100%")
}

func TestLineQuiz_EndOfInputShowsPartialResults(t *testing.T) {
	mock := remote.NewMockClient().
		AddQuiz(lineQuiz(), nil).
		AddVerdict(&quiz.Verdict{IsCorrect: quiz.Bool(true)}, nil)

	out := playLine(t, mock, "b\n")
	assert.Contains(t, out, "Your score: 100% (1 answered)")
}

func TestLineQuiz_OfflineFallback(t *testing.T) {
	mock := remote.NewMockClient().AddQuiz(nil, &remote.ErrServiceUnavailable{Op: "generate quiz", StatusCode: 503})

	out := playLine(t, mock, "")
	assert.Contains(t, out, "Note: "+session.OfflineAdvisory)
	assert.Empty(t, mock.ValidateCalls)
}

func TestLineQuiz_LocalVerdictLabelledOnce(t *testing.T) {
	unavailable := &remote.ErrServiceUnavailable{Op: "validate answer", StatusCode: 503}
	mock := remote.NewMockClient().
		AddQuiz(lineQuiz(), nil).
		AddVerdict(nil, unavailable).
		AddVerdict(nil, unavailable)

	out := playLine(t, mock, "b\nf\n")

	assert.Contains(t, out, "  Correct! (validated locally due to a connectivity issue)")
	assert.Contains(t, out, "  Incorrect. The correct answer is True. (validated locally")
	assert.NotContains(t, out, "Correct! Correct!")
	assert.NotContains(t, out, "Incorrect. Incorrect.")
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		kind quiz.Kind
		in   string
		want string
	}{
		{quiz.KindMultipleChoice, " C ", "c"},
		{quiz.KindTrueFalse, "T", "true"},
		{quiz.KindTrueFalse, "no", "false"},
		{quiz.KindTrueFalse, "maybe", "maybe"},
		{quiz.KindOpenEnded, "  Mass attracts mass ", "Mass attracts mass"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeAnswer(tt.kind, tt.in), "%s %q", tt.kind, tt.in)
	}
}
