package llmquiz

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/remote"
	"github.com/abhisek/trivia/internal/topic"
)

const mixedOutput = `{"questions":[
 {"type":"multiple-choice","question":"Largest ocean?","options":["a) Atlantic","b) Pacific","c) Indian","d) Arctic"],"correctAnswer":"B","isTrue":false,"modelAnswer":"","explanation":"The Pacific covers a third of the surface.","topic":"geography"},
 {"type":"true-false","question":"The Great Wall is visible from the Moon.","options":[],"correctAnswer":"","isTrue":false,"modelAnswer":"","explanation":"It is far too narrow.","topic":"history"},
 {"type":"open-ended","question":"Who wrote Hamlet?","options":[],"correctAnswer":"","isTrue":false,"modelAnswer":"William Shakespeare","explanation":"Written around 1600.","topic":"culture"}
]}`

func newService(t *testing.T, responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	return New(mock, WithIDGenerator(func() string { return "sess-1" })), mock
}

func TestGenerateQuiz(t *testing.T) {
	svc, mock := newService(t, llm.MockResponse{Content: json.RawMessage(mixedOutput)})

	q, err := svc.GenerateQuiz(context.Background(), remote.GenerateRequest{
		Topic:        topic.Lookup(topic.Mixed),
		QuestionType: quiz.KindMixed,
		Count:        3,
	})
	require.NoError(t, err)

	assert.Equal(t, "sess-1", q.SessionID)
	assert.Equal(t, topic.Mixed, q.Topic)
	assert.Equal(t, quiz.SourceLLM, q.Source)
	require.Equal(t, 3, q.Len())

	mc := q.Questions[0]
	assert.Equal(t, quiz.KindMultipleChoice, mc.Kind)
	assert.Equal(t, "b", mc.CorrectLetter)
	assert.Equal(t, []string{"Atlantic", "Pacific", "Indian", "Arctic"}, mc.Options)
	assert.False(t, mc.Truth.Set)

	tf := q.Questions[1]
	assert.Equal(t, quiz.KindTrueFalse, tf.Kind)
	assert.True(t, tf.Truth.Set)
	assert.False(t, tf.Truth.Value)
	assert.Empty(t, tf.Options)

	open := q.Questions[2]
	assert.Equal(t, quiz.KindOpenEnded, open.Kind)
	assert.Equal(t, "William Shakespeare", open.ModelAnswer)
	assert.Equal(t, topic.Culture, open.Topic)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, quizSchema.Name, call.Schema.Name)
	assert.Contains(t, call.Messages[0].Content, "Write 3 trivia questions")
	assert.Contains(t, call.Messages[0].Content, "Mix the question types")
}

func TestGenerateQuiz_SingleKindPrompt(t *testing.T) {
	svc, mock := newService(t, llm.MockResponse{Content: json.RawMessage(`{"questions":[
 {"type":"true-false","question":"Water boils at 100C at sea level.","options":[],"correctAnswer":"","isTrue":true,"modelAnswer":"","explanation":"","topic":"science"}]}`)})

	q, err := svc.GenerateQuiz(context.Background(), remote.GenerateRequest{
		Topic:        topic.Lookup(topic.Science),
		QuestionType: quiz.KindTrueFalse,
		Count:        1,
	})
	require.NoError(t, err)
	assert.True(t, q.Questions[0].Truth.Value)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, `of type "true-false"`)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, `Set topic to "science"`)
}

func TestGenerateQuiz_InvalidQuestion(t *testing.T) {
	// A multiple-choice answer outside its options fails decoding.
	svc, _ := newService(t, llm.MockResponse{Content: json.RawMessage(`{"questions":[
 {"type":"multiple-choice","question":"Q?","options":["x","y"],"correctAnswer":"d","isTrue":false,"modelAnswer":"","explanation":"","topic":""}]}`)})

	_, err := svc.GenerateQuiz(context.Background(), remote.GenerateRequest{Topic: topic.Lookup(topic.History), Count: 1})
	var invalid *remote.ErrInvalidResponse
	require.True(t, errors.As(err, &invalid), "got %T: %v", err, err)
}

func TestGenerateQuiz_Empty(t *testing.T) {
	svc, _ := newService(t, llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})

	_, err := svc.GenerateQuiz(context.Background(), remote.GenerateRequest{Topic: topic.Lookup(topic.History), Count: 1})
	assert.ErrorIs(t, err, quiz.ErrNoQuestions)
}

func TestGenerateQuiz_ProviderDown(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.GenerateQuiz(context.Background(), remote.GenerateRequest{Topic: topic.Lookup(topic.History), Count: 1})
	var unavail *remote.ErrServiceUnavailable
	require.True(t, errors.As(err, &unavail), "got %T: %v", err, err)
	var inner *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &inner))
}

func TestGenerateQuiz_CanceledPassesThrough(t *testing.T) {
	svc, _ := newService(t, llm.MockResponse{Err: context.Canceled})

	_, err := svc.GenerateQuiz(context.Background(), remote.GenerateRequest{Topic: topic.Lookup(topic.History), Count: 1})
	assert.ErrorIs(t, err, context.Canceled)
	var unavail *remote.ErrServiceUnavailable
	assert.False(t, errors.As(err, &unavail))
}

func TestValidateAnswer_ClosedQuestionsSkipModel(t *testing.T) {
	svc, mock := newService(t)
	mc := quiz.Question{
		Kind:          quiz.KindMultipleChoice,
		Prompt:        "Largest ocean?",
		Options:       []string{"Atlantic", "Pacific"},
		CorrectLetter: "b",
		Explanation:   "It covers a third of the surface.",
	}

	v, err := svc.ValidateAnswer(context.Background(), remote.NewValidateRequest("s", 0, mc, quiz.KindMixed, "b"))
	require.NoError(t, err)
	assert.True(t, v.Correct())
	assert.False(t, v.Local)
	assert.Equal(t, "Correct! It covers a third of the surface.", v.Feedback)

	tf := quiz.Question{Kind: quiz.KindTrueFalse, Prompt: "Sky is green.", Truth: quiz.NewTruth(false)}
	v, err = svc.ValidateAnswer(context.Background(), remote.NewValidateRequest("s", 1, tf, quiz.KindMixed, "true"))
	require.NoError(t, err)
	assert.False(t, v.Correct())
	assert.NotContains(t, v.Feedback, "locally")

	assert.Equal(t, 0, mock.CallCount())
}

func TestValidateAnswer_OpenEnded(t *testing.T) {
	svc, mock := newService(t,
		llm.MockResponse{Content: json.RawMessage(`{"isCorrect":true,"feedback":"Yes, Shakespeare."}`)},
		llm.MockResponse{Content: json.RawMessage(`{"isCorrect":null,"feedback":"Cannot tell."}`)},
	)
	q := quiz.Question{Kind: quiz.KindOpenEnded, Prompt: "Who wrote Hamlet?", ModelAnswer: "William Shakespeare"}

	v, err := svc.ValidateAnswer(context.Background(), remote.NewValidateRequest("s", 0, q, quiz.KindOpenEnded, "shakespere"))
	require.NoError(t, err)
	assert.True(t, v.Correct())
	assert.Equal(t, "Yes, Shakespeare.", v.Feedback)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "User answer: shakespere")

	v, err = svc.ValidateAnswer(context.Background(), remote.NewValidateRequest("s", 0, q, quiz.KindOpenEnded, "?"))
	require.NoError(t, err)
	assert.False(t, v.Graded())
}

func TestValidateAnswer_OpenEndedProviderDown(t *testing.T) {
	svc, _ := newService(t)
	q := quiz.Question{Kind: quiz.KindOpenEnded, Prompt: "Who wrote Hamlet?", ModelAnswer: "William Shakespeare"}

	_, err := svc.ValidateAnswer(context.Background(), remote.NewValidateRequest("s", 0, q, quiz.KindOpenEnded, "me"))
	var unavail *remote.ErrServiceUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestStripLetter(t *testing.T) {
	assert.Equal(t, "Pacific", stripLetter("B) Pacific", 1))
	assert.Equal(t, "Pacific", stripLetter("Pacific", 1))
	assert.Equal(t, "a) Atlantic", stripLetter("a) Atlantic", 1))
}
