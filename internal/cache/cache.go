// Package cache keeps recently generated quizzes so a repeated topic does
// not go back to the quiz service.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

// ErrMiss is returned by Get when no live entry exists.
var ErrMiss = errors.New("cache miss")

// Key identifies a cached quiz.
type Key struct {
	Topic topic.ID
	Kind  quiz.Kind
	Count int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d", k.Topic, k.Kind, k.Count)
}

// Cache stores quizzes by key. Implementations are safe for concurrent use.
type Cache interface {
	// Get returns a copy of the cached quiz or ErrMiss.
	Get(ctx context.Context, key Key) (*quiz.Quiz, error)

	// Put stores a copy of q.
	Put(ctx context.Context, key Key, q *quiz.Quiz) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, Key) (*quiz.Quiz, error) { return nil, ErrMiss }
func (Nop) Put(context.Context, Key, *quiz.Quiz) error   { return nil }

// Clone deep-copies q so cached entries cannot be mutated through a
// returned pointer.
func Clone(q *quiz.Quiz) *quiz.Quiz {
	if q == nil {
		return nil
	}
	out := *q
	out.Questions = make([]quiz.Question, len(q.Questions))
	for i, qq := range q.Questions {
		qq.Options = slices.Clone(qq.Options)
		out.Questions[i] = qq
	}
	return &out
}

// entry is the serialized form used by the Redis cache.
type entry struct {
	SessionID string          `json:"sessionId"`
	Topic     topic.ID        `json:"topic"`
	Source    quiz.Source     `json:"source"`
	Questions []quiz.Question `json:"questions"`
}

func encode(q *quiz.Quiz) ([]byte, error) {
	return json.Marshal(entry{
		SessionID: q.SessionID,
		Topic:     q.Topic,
		Source:    q.Source,
		Questions: q.Questions,
	})
}

func decode(raw []byte) (*quiz.Quiz, error) {
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return &quiz.Quiz{
		SessionID: e.SessionID,
		Topic:     e.Topic,
		Source:    e.Source,
		Questions: e.Questions,
	}, nil
}
