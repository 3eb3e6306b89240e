// Package fallback produces canned questions when no quiz service is
// reachable. It never fails and never returns an empty set.
package fallback

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

// Generator draws fallback questions from a static table. It is safe
// for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Generator with the given random source. A nil source
// seeds from the clock.
func New(src rand.Source) *Generator {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	return &Generator{rng: rand.New(src)}
}

// Generate returns the fallback questions for id:
//   - known topics: two multiple-choice questions and one true-false
//   - mixed: one question per known topic plus a general true-false, shuffled
//   - anything else: the generic multiple-choice pair
func (g *Generator) Generate(id topic.ID) []quiz.Question {
	if id == topic.Mixed {
		return g.mixed()
	}

	s, ok := table[id]
	if !ok {
		return cloneAll(genericPair, "")
	}

	out := make([]quiz.Question, 0, 3)
	for _, q := range s.multipleChoice {
		out = append(out, clone(q, id))
	}
	out = append(out, clone(s.trueFalse[g.intN(len(s.trueFalse))], id))
	return out
}

// Quiz wraps Generate into a quiz with no session identifier.
func (g *Generator) Quiz(id topic.ID) *quiz.Quiz {
	return &quiz.Quiz{
		Topic:     id,
		Questions: g.Generate(id),
		Source:    quiz.SourceFallback,
	}
}

func (g *Generator) mixed() []quiz.Question {
	known := topic.Known()
	out := make([]quiz.Question, 0, len(known)+1)
	for _, t := range known {
		out = append(out, clone(table[t.ID].multipleChoice[0], t.ID))
	}
	out = append(out, clone(mixedTrueFalse, topic.General))
	g.shuffle(out)
	return out
}

// shuffle is a Fisher-Yates permutation.
func (g *Generator) shuffle(qs []quiz.Question) {
	for i := len(qs) - 1; i > 0; i-- {
		j := g.intN(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

func (g *Generator) intN(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

func clone(q quiz.Question, id topic.ID) quiz.Question {
	q.Options = append([]string(nil), q.Options...)
	q.Topic = id
	return q
}

func cloneAll(qs []quiz.Question, id topic.ID) []quiz.Question {
	out := make([]quiz.Question, len(qs))
	for i, q := range qs {
		out[i] = clone(q, id)
	}
	return out
}
