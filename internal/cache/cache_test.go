package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-client/internal/logger"
)

const tagPosts Tag = "BlogModel"

func newTestCache() *QueryCache {
	return NewQueryCache(0, logger.Nop())
}

// countingFetch returns value and counts invocations.
func countingFetch(calls *atomic.Int32, value any) FetchFunc {
	return func(context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

// blockingFetch signals started, then waits for release before returning
// value.
func blockingFetch(started chan<- struct{}, release <-chan struct{}, value any) FetchFunc {
	return func(context.Context) (any, error) {
		started <- struct{}{}
		<-release
		return value, nil
	}
}

func TestQueryCache_HitAfterFirstFetch(t *testing.T) {
	c := newTestCache()
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		v, err := c.Fetch(context.Background(), "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
		require.NoError(t, err)
		assert.Equal(t, "v1", v)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestQueryCache_InvalidateForcesRefetch(t *testing.T) {
	c := newTestCache()
	var calls atomic.Int32
	ctx := context.Background()

	_, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)
	_, err = c.Fetch(ctx, "posts/user/alice", []Tag{tagPosts}, countingFetch(&calls, "a1"))
	require.NoError(t, err)

	c.Invalidate(tagPosts)

	_, ok := c.peek("posts/all")
	assert.False(t, ok)
	_, ok = c.peek("posts/user/alice")
	assert.False(t, ok)

	v, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, uint64(1), c.generation(tagPosts))
}

func TestQueryCache_InvalidateOtherTagKeepsEntry(t *testing.T) {
	c := newTestCache()
	var calls atomic.Int32

	_, err := c.Fetch(context.Background(), "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)

	c.Invalidate("User")

	v, ok := c.peek("posts/all")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)
}

func TestQueryCache_Members(t *testing.T) {
	c := newTestCache()
	var calls atomic.Int32
	ctx := context.Background()

	assert.Empty(t, c.Members(tagPosts))

	_, _ = c.Fetch(ctx, "posts/user/bob", []Tag{tagPosts}, countingFetch(&calls, nil))
	_, _ = c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, nil))

	assert.Equal(t, []string{"posts/all", "posts/user/bob"}, c.Members(tagPosts))
}

func TestQueryCache_InFlightReadNotStoredAfterInvalidation(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	started := make(chan struct{}, 1)
	release := make(chan struct{})

	done := make(chan any, 1)
	go func() {
		v, _ := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, blockingFetch(started, release, "old"))
		done <- v
	}()

	<-started
	c.Invalidate(tagPosts)
	close(release)

	assert.Equal(t, "old", <-done)

	_, ok := c.peek("posts/all")
	assert.False(t, ok, "pre-invalidation result must not be cached as fresh")

	var calls atomic.Int32
	v, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "new"))
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueryCache_ReadAfterInvalidationDoesNotJoinOldFlight(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	defer close(release)

	go func() {
		_, _ = c.Fetch(ctx, "posts/all", []Tag{tagPosts}, blockingFetch(started, release, "old"))
	}()
	<-started

	c.Invalidate(tagPosts)

	var calls atomic.Int32
	v, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "new"))
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.Equal(t, int32(1), calls.Load())

	cached, ok := c.peek("posts/all")
	assert.True(t, ok)
	assert.Equal(t, "new", cached)
}

func TestQueryCache_ConcurrentReadsShareFetch(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	release := make(chan struct{})
	var calls atomic.Int32

	fetch := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "v1", nil
	}

	var wg sync.WaitGroup
	results := make(chan any, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, fetch)
			assert.NoError(t, err)
			results <- v
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		assert.Equal(t, "v1", v)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueryCache_CallerCancellation(t *testing.T) {
	c := newTestCache()
	started := make(chan struct{}, 1)
	release := make(chan struct{})

	var fetchCtxErr error
	finished := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		started <- struct{}{}
		<-release
		fetchCtxErr = ctx.Err()
		close(finished)
		return "v1", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, fetch)
		errCh <- err
	}()

	<-started
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	<-finished
	assert.NoError(t, fetchCtxErr, "shared fetch must outlive the cancelled caller")

	require.Eventually(t, func() bool {
		_, ok := c.peek("posts/all")
		return ok
	}, time.Second, time.Millisecond)
}

func TestQueryCache_ErrorsAreNotCached(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()
	fetchErr := errors.New("boom")

	_, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, func(context.Context) (any, error) {
		return nil, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)

	_, ok := c.peek("posts/all")
	assert.False(t, ok)

	var calls atomic.Int32
	v, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueryCache_TTL(t *testing.T) {
	c := NewQueryCache(time.Minute, logger.Nop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	var calls atomic.Int32
	ctx := context.Background()

	_, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(31 * time.Second)
	_, ok := c.peek("posts/all")
	assert.False(t, ok)

	_, err = c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQueryCache_TTLSkipsSubscribedKeys(t *testing.T) {
	c := NewQueryCache(time.Minute, logger.Nop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	var calls atomic.Int32
	ctx := context.Background()

	_, unsubscribe := c.Subscribe("posts/all")
	_, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	v, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
	assert.Equal(t, int32(1), calls.Load())

	unsubscribe()

	now = now.Add(59 * time.Second)
	_, ok := c.peek("posts/all")
	assert.True(t, ok, "the clock starts when the last subscriber leaves")

	now = now.Add(2 * time.Second)
	_, ok = c.peek("posts/all")
	assert.False(t, ok)

	v, err = c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQueryCache_InvalidateStillAppliesToSubscribedKeys(t *testing.T) {
	c := NewQueryCache(time.Minute, logger.Nop())
	var calls atomic.Int32
	ctx := context.Background()

	_, unsubscribe := c.Subscribe("posts/all")
	defer unsubscribe()

	_, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)

	c.Invalidate(tagPosts)

	_, ok := c.peek("posts/all")
	assert.False(t, ok)
}

func TestQueryCache_Refetch(t *testing.T) {
	c := newTestCache()
	var calls atomic.Int32
	ctx := context.Background()

	_, err := c.Fetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))
	require.NoError(t, err)

	v, err := c.Refetch(ctx, "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v2"))
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, int32(2), calls.Load())

	cached, ok := c.peek("posts/all")
	assert.True(t, ok)
	assert.Equal(t, "v2", cached)
}

func TestQueryCache_Subscribe(t *testing.T) {
	c := newTestCache()
	var calls atomic.Int32
	_, _ = c.Fetch(context.Background(), "posts/all", []Tag{tagPosts}, countingFetch(&calls, "v1"))

	ch, unsubscribe := c.Subscribe("posts/all")

	c.Invalidate(tagPosts)
	c.Invalidate(tagPosts)

	select {
	case <-ch:
	default:
		t.Fatal("expected a notification")
	}
	select {
	case <-ch:
		t.Fatal("notifications must not queue up")
	default:
	}

	unsubscribe()
	unsubscribe()
	c.Invalidate(tagPosts)

	select {
	case <-ch:
		t.Fatal("no notification expected after unsubscribe")
	default:
	}
}

func TestQuery_Typed(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	posts, err := Query(ctx, c, "posts/all", []Tag{tagPosts}, func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, posts)

	_, err = Query(ctx, c, "posts/all", []Tag{tagPosts}, func(context.Context) (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, ErrUnexpectedType)
}

func TestRefetch_Typed(t *testing.T) {
	c := newTestCache()

	n, err := Refetch(context.Background(), c, "count", nil, func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
