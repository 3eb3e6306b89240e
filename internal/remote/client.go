// Package remote talks to the study assistant backend: quiz generation,
// answer validation and the chat, session and rate-limit endpoints.
package remote

import (
	"context"
	"time"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

// QuizService generates quizzes and grades answers.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req GenerateRequest) (*quiz.Quiz, error)
	ValidateAnswer(ctx context.Context, req ValidateRequest) (*quiz.Verdict, error)
}

// ChatService is the free-form chat side of the backend.
type ChatService interface {
	Chat(ctx context.Context, prompt, sessionID string) (*ChatReply, error)
	History(ctx context.Context, sessionID string) ([]Exchange, error)
	Sessions(ctx context.Context) ([]SessionInfo, error)
	DeleteSession(ctx context.Context, id string) error
}

// StatusService reports the backend's rate-limit state.
type StatusService interface {
	APIStatus(ctx context.Context) (*APIStatus, error)
}

// GenerateRequest asks for a new quiz.
type GenerateRequest struct {
	Topic        topic.Topic
	QuestionType quiz.Kind
	Count        int
}

// ValidateRequest asks the backend to grade one answer.
type ValidateRequest struct {
	SessionID     string
	QuestionIndex int
	Question      quiz.Question
	UserAnswer    string
	QuestionType  quiz.Kind

	// CorrectAnswer is the grading hint: the letter for multiple-choice,
	// "true"/"false" for true-false, empty for open-ended.
	CorrectAnswer string
}

// NewValidateRequest fills the type and hint from the question itself.
func NewValidateRequest(sessionID string, index int, q quiz.Question, requested quiz.Kind, answer string) ValidateRequest {
	kind := q.KindOr(requested)
	return ValidateRequest{
		SessionID:     sessionID,
		QuestionIndex: index,
		Question:      q,
		UserAnswer:    answer,
		QuestionType:  kind,
		CorrectAnswer: q.CorrectAnswerHint(kind),
	}
}

// ChatReply is the backend's answer to a chat prompt.
type ChatReply struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	Title     string `json:"title,omitempty"`
}

// Exchange is one prompt/response pair of a chat session.
type Exchange struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// SessionInfo describes a stored chat session.
type SessionInfo struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIStatus is the backend's view of its upstream quota.
type APIStatus struct {
	Status             string `json:"status"`
	RequestsThisMinute int    `json:"requestsThisMinute"`
	MinuteQuota        int    `json:"minuteQuota"`

	// TimeToResetMS is milliseconds until the quota window resets.
	TimeToResetMS int64 `json:"timeToReset"`
}

// Limited reports whether the backend is currently throttling.
func (s *APIStatus) Limited() bool {
	return s != nil && s.Status == "limited"
}

// TimeToReset returns the reset countdown as a duration.
func (s *APIStatus) TimeToReset() time.Duration {
	if s == nil {
		return 0
	}
	return time.Duration(s.TimeToResetMS) * time.Millisecond
}
