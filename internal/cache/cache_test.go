package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		SessionID: "sess-1",
		Topic:     topic.Geography,
		Source:    quiz.SourceRemote,
		Questions: []quiz.Question{
			{Kind: quiz.KindMultipleChoice, Prompt: "Longest river?", Options: []string{"Nile", "Amazon"}, CorrectLetter: "a"},
			{Kind: quiz.KindTrueFalse, Prompt: "Australia is a continent.", Truth: quiz.NewTruth(true)},
		},
	}
}

var geoKey = Key{Topic: topic.Geography, Kind: quiz.KindMixed, Count: 2}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemory_PutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(DefaultTTL)

	_, err := m.Get(ctx, geoKey)
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Put(ctx, geoKey, sampleQuiz()))
	got, err := m.Get(ctx, geoKey)
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz(), got)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(DefaultTTL)
	q := sampleQuiz()
	require.NoError(t, m.Put(ctx, geoKey, q))

	q.Questions[0].Options[0] = "changed after put"
	got, err := m.Get(ctx, geoKey)
	require.NoError(t, err)
	assert.Equal(t, "Nile", got.Questions[0].Options[0])

	got.Questions[0].Options[0] = "changed after get"
	again, err := m.Get(ctx, geoKey)
	require.NoError(t, err)
	assert.Equal(t, "Nile", again.Questions[0].Options[0])
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemory(time.Minute, WithClock(clock.now))

	require.NoError(t, m.Put(ctx, geoKey, sampleQuiz()))
	clock.advance(59 * time.Second)
	_, err := m.Get(ctx, geoKey)
	require.NoError(t, err)

	clock.advance(time.Second)
	_, err = m.Get(ctx, geoKey)
	require.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_PutSweepsExpired(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := NewMemory(time.Minute, WithClock(clock.now))

	require.NoError(t, m.Put(ctx, geoKey, sampleQuiz()))
	clock.advance(2 * time.Minute)
	require.NoError(t, m.Put(ctx, Key{Topic: topic.History}, sampleQuiz()))
	assert.Equal(t, 1, m.Len())
}

func TestMemory_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := NewMemory(0, WithClock(clock.now))

	require.NoError(t, m.Put(ctx, geoKey, sampleQuiz()))
	clock.advance(24 * time.Hour)
	_, err := m.Get(ctx, geoKey)
	require.NoError(t, err)
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}
	require.NoError(t, c.Put(ctx, geoKey, sampleQuiz()))
	_, err := c.Get(ctx, geoKey)
	require.ErrorIs(t, err, ErrMiss)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "geography:mixed:2", geoKey.String())
}

func TestEncodeDecodeKeepsKinds(t *testing.T) {
	raw, err := encode(sampleQuiz())
	require.NoError(t, err)
	got, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz(), got)
}

func TestLoader_MissFetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(NewMemory(DefaultTTL), nil)

	calls := 0
	fetch := func(context.Context) (*quiz.Quiz, error) {
		calls++
		return sampleQuiz(), nil
	}

	first, err := l.Load(ctx, geoKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, quiz.SourceRemote, first.Source)

	second, err := l.Load(ctx, geoKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, quiz.SourceCache, second.Source)
	assert.Equal(t, "sess-1", second.SessionID)
	assert.Equal(t, 1, calls)
}

func TestLoader_FallbackNotCached(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(DefaultTTL)
	l := NewLoader(mem, nil)

	q := sampleQuiz()
	q.Source = quiz.SourceFallback
	_, err := l.Load(ctx, geoKey, func(context.Context) (*quiz.Quiz, error) { return q, nil })
	require.NoError(t, err)
	assert.Equal(t, 0, mem.Len())
}

func TestLoader_FetchErrorNotCached(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(DefaultTTL)
	l := NewLoader(mem, nil)

	boom := errors.New("service down")
	_, err := l.Load(ctx, geoKey, func(context.Context) (*quiz.Quiz, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, mem.Len())
}

func TestLoader_CoalescesConcurrentFetches(t *testing.T) {
	ctx := context.Background()
	l := NewLoader(Nop{}, nil)

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(context.Context) (*quiz.Quiz, error) {
		calls.Add(1)
		<-release
		return sampleQuiz(), nil
	}

	const n = 8
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
		results = make([]*quiz.Quiz, n)
	)
	started.Add(n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			q, err := l.Load(ctx, geoKey, fetch)
			assert.NoError(t, err)
			results[i] = q
		}()
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(n))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	for _, q := range results {
		require.NotNil(t, q)
		assert.Len(t, q.Questions, 2)
	}
}

func TestLoader_Warm(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(DefaultTTL)
	l := NewLoader(mem, nil)

	var keys []Key
	for _, tp := range topic.Known() {
		keys = append(keys, Key{Topic: tp.ID, Kind: quiz.KindMixed, Count: 5})
	}

	var calls atomic.Int32
	err := l.Warm(ctx, keys, 2, func(_ context.Context, k Key) (*quiz.Quiz, error) {
		calls.Add(1)
		q := sampleQuiz()
		q.Topic = k.Topic
		return q, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(len(keys)), calls.Load())
	assert.Equal(t, len(keys), mem.Len())

	// A second warm is served from the cache.
	err = l.Warm(ctx, keys, 2, func(context.Context, Key) (*quiz.Quiz, error) {
		return nil, errors.New("should not fetch")
	})
	require.NoError(t, err)
}

func TestRedis_RoundTrip(t *testing.T) {
	addr := os.Getenv("TRIVIA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRIVIA_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	r, err := NewRedis(ctx, RedisConfig{Addr: addr, Prefix: "trivia:test:", TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	key := Key{Topic: topic.ID("redis-roundtrip"), Kind: quiz.KindMixed, Count: 2}
	require.NoError(t, r.Put(ctx, key, sampleQuiz()))
	got, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, sampleQuiz(), got)

	_, err = r.Get(ctx, Key{Topic: "never-stored"})
	require.ErrorIs(t, err, ErrMiss)
}
