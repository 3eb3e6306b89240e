package cache

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/trivia/internal/logging"
	"github.com/abhisek/trivia/internal/quiz"
)

// FetchFunc produces a quiz on a cache miss.
type FetchFunc func(ctx context.Context) (*quiz.Quiz, error)

// Loader reads through a Cache, coalescing concurrent fetches per key.
type Loader struct {
	cache Cache
	log   *logging.Logger
	group singleflight.Group
}

// NewLoader creates a Loader over c. A nil c disables caching.
func NewLoader(c Cache, log *logging.Logger) *Loader {
	if c == nil {
		c = Nop{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Loader{cache: c, log: log}
}

// Load returns the cached quiz for key, or calls fetch and caches its
// result. Cache hits are marked SourceCache. Fallback quizzes are never
// stored so the next request tries the service again.
func (l *Loader) Load(ctx context.Context, key Key, fetch FetchFunc) (*quiz.Quiz, error) {
	q, err := l.cache.Get(ctx, key)
	switch {
	case err == nil:
		q.Source = quiz.SourceCache
		l.log.Debug("quiz cache hit", "key", key.String())
		return q, nil
	case !errors.Is(err, ErrMiss):
		l.log.Warn("quiz cache read failed", "key", key.String(), "error", err)
	}

	v, err, shared := l.group.Do(key.String(), func() (any, error) {
		q, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if q.Len() > 0 && q.Source != quiz.SourceFallback {
			if err := l.cache.Put(ctx, key, q); err != nil {
				l.log.Warn("quiz cache write failed", "key", key.String(), "error", err)
			}
		}
		return q, nil
	})
	if err != nil {
		return nil, err
	}

	q = v.(*quiz.Quiz)
	if shared {
		q = Clone(q)
	}
	return q, nil
}

// Warm fetches every key that is not cached yet, at most limit at a time.
func (l *Loader) Warm(ctx context.Context, keys []Key, limit int, fetch func(ctx context.Context, key Key) (*quiz.Quiz, error)) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, key := range keys {
		g.Go(func() error {
			_, err := l.Load(gctx, key, func(ctx context.Context) (*quiz.Quiz, error) {
				return fetch(ctx, key)
			})
			return err
		})
	}
	return g.Wait()
}
