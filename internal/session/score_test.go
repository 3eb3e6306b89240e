package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trivia/internal/quiz"
)

func records(verdicts ...quiz.Verdict) []quiz.AnswerRecord {
	out := make([]quiz.AnswerRecord, len(verdicts))
	for i, v := range verdicts {
		out[i] = quiz.AnswerRecord{Index: i, UserAnswer: "a", Verdict: v}
	}
	return out
}

func TestScore_ThreeOfFive(t *testing.T) {
	rs := records(correct(), incorrect(), correct(), incorrect(), correct())
	assert.Equal(t, 60, Score(rs))
}

func TestScore_UngradedCountsAsNotCorrect(t *testing.T) {
	rs := records(correct(), quiz.Verdict{Feedback: "compare with the model answer"})
	assert.Equal(t, 50, Score(rs))
}

func TestScore_Edges(t *testing.T) {
	assert.Equal(t, 0, Score(nil))
	assert.Equal(t, 100, Score(records(correct())))
	assert.Equal(t, 0, Score(records(incorrect(), incorrect())))
	assert.Equal(t, 33, Score(records(correct(), incorrect(), incorrect())))
}

func TestBandFor(t *testing.T) {
	cases := []struct {
		score int
		want  Band
	}{
		{100, BandGood},
		{70, BandGood},
		{69, BandFair},
		{40, BandFair},
		{39, BandPoor},
		{0, BandPoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BandFor(tc.score), "score %d", tc.score)
	}
	assert.NotEqual(t, BandGood.Message(), BandPoor.Message())
}

func TestReview(t *testing.T) {
	q := testQuiz()
	q.Questions[0].Explanation = "H2O is water."
	rs := []quiz.AnswerRecord{
		{Index: 0, UserAnswer: "a", Verdict: incorrect()},
		{Index: 1, UserAnswer: "TRUE", Verdict: correct()},
	}

	rows := Review(q, rs)
	require.Len(t, rows, 3)

	assert.Equal(t, "a) Salt", rows[0].UserAnswer)
	assert.Equal(t, "b) Water", rows[0].CorrectAnswer)
	assert.Equal(t, "H2O is water.", rows[0].Explanation)
	assert.False(t, rows[0].Verdict.Correct())
	assert.True(t, rows[0].Answered)

	assert.Equal(t, "True", rows[1].UserAnswer)
	assert.Equal(t, "True", rows[1].CorrectAnswer)
	assert.Equal(t, quiz.KindTrueFalse, rows[1].Kind)

	assert.False(t, rows[2].Answered)
	assert.Equal(t, "A force of attraction.", rows[2].CorrectAnswer)

	assert.Nil(t, Review(nil, rs))
}
