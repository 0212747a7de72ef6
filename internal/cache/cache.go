// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-blog-client/internal/logger"
)

// Tag names a group of cached queries that a mutation can invalidate at once.
type Tag string

// FetchFunc performs the network read behind a query.
type FetchFunc func(ctx context.Context) (any, error)

// ErrUnexpectedType is returned by [Query] when a cached value has a type
// other than the one requested.
var ErrUnexpectedType = errors.New("cached value has unexpected type")

type entry struct {
	value    any
	storedAt time.Time
	stale    bool
}

// QueryCache is a concurrency-safe, tag-invalidated cache of query results.
type QueryCache struct {
	mu          sync.Mutex
	entries     map[string]*entry
	members     map[Tag]map[string]struct{}
	generations map[Tag]uint64
	subscribers map[string]map[*subscription]struct{}
	// releasedAt records when the last subscriber of a key left.
	releasedAt map[string]time.Time

	group  singleflight.Group
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

type subscription struct {
	ch chan struct{}
}

// NewQueryCache returns an empty cache. ttl bounds how long unused data is
// kept: an entry with no subscribers is evicted once ttl has passed since it
// was stored or since its last subscriber left, whichever is later. Entries
// with subscribers never expire. A zero ttl keeps entries until they are
// invalidated.
func NewQueryCache(ttl time.Duration, log *logger.Logger) *QueryCache {
	return &QueryCache{
		entries:     make(map[string]*entry),
		members:     make(map[Tag]map[string]struct{}),
		generations: make(map[Tag]uint64),
		subscribers: make(map[string]map[*subscription]struct{}),
		releasedAt:  make(map[string]time.Time),
		ttl:         ttl,
		now:         time.Now,
		logger:      log,
	}
}

// Fetch returns the fresh cached value of key, or runs fetch and caches its
// result under key as a member of tags.
func (c *QueryCache) Fetch(ctx context.Context, key string, tags []Tag, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	c.register(key, tags)
	if value, ok := c.freshLocked(key); ok {
		c.mu.Unlock()
		c.logger.Debug().Str("func", "QueryCache.Fetch").Str("key", key).Msg("cache hit")
		return value, nil
	}
	gens := c.snapshotLocked(tags)
	c.mu.Unlock()

	return c.run(ctx, key, tags, gens, fetch)
}

// Refetch runs fetch regardless of the cached state of key and caches the
// result. Identical refetches of the same generation are coalesced.
func (c *QueryCache) Refetch(ctx context.Context, key string, tags []Tag, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	c.register(key, tags)
	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
	gens := c.snapshotLocked(tags)
	c.mu.Unlock()

	return c.run(ctx, key, tags, gens, fetch)
}

func (c *QueryCache) run(ctx context.Context, key string, tags []Tag, gens map[Tag]uint64, fetch FetchFunc) (any, error) {
	c.logger.Debug().Str("func", "QueryCache.Fetch").Str("key", key).Msg("cache miss, fetching")

	// the shared fetch must not die with the first caller that gives up
	detached := context.WithoutCancel(ctx)
	resultCh := c.group.DoChan(flightKey(key, gens), func() (any, error) {
		value, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		c.store(key, tags, gens, value)
		return value, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultCh:
		return res.Val, res.Err
	}
}

// store saves value as fresh unless one of tags was invalidated after the
// fetch started.
func (c *QueryCache) store(key string, tags []Tag, gens map[Tag]uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, tag := range tags {
		if c.generations[tag] != gens[tag] {
			c.logger.Debug().
				Str("func", "QueryCache.store").
				Str("key", key).
				Str("tag", string(tag)).
				Msg("result outdated by invalidation, not cached")
			return
		}
	}

	c.entries[key] = &entry{value: value, storedAt: c.now()}
}

// Invalidate marks every query providing one of tags as stale and notifies
// their subscribers. The next read of such a query fetches again.
func (c *QueryCache) Invalidate(tags ...Tag) {
	c.mu.Lock()
	notify := make([]*subscription, 0)
	for _, tag := range tags {
		c.generations[tag]++
		for key := range c.members[tag] {
			if e, ok := c.entries[key]; ok {
				e.stale = true
			}
			for sub := range c.subscribers[key] {
				notify = append(notify, sub)
			}
		}
	}
	c.mu.Unlock()

	c.logger.Debug().Str("func", "QueryCache.Invalidate").Interface("tags", tags).Msg("tags invalidated")

	for _, sub := range notify {
		select {
		case sub.ch <- struct{}{}:
		default:
			// a notification is already pending
		}
	}
}

// Subscribe returns a channel that receives a value whenever key is
// invalidated, and a function that ends the subscription. Notifications do
// not queue up: a slow reader sees at most one pending value.
func (c *QueryCache) Subscribe(key string) (<-chan struct{}, func()) {
	sub := &subscription{ch: make(chan struct{}, 1)}

	c.mu.Lock()
	if c.subscribers[key] == nil {
		c.subscribers[key] = make(map[*subscription]struct{})
	}
	c.subscribers[key][sub] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subscribers[key], sub)
			if len(c.subscribers[key]) == 0 {
				delete(c.subscribers, key)
				c.releasedAt[key] = c.now()
			}
		})
	}
}

// Members returns the sorted query keys known to provide tag.
func (c *QueryCache) Members(tag Tag) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.members[tag]))
	for key := range c.members[tag] {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (c *QueryCache) register(key string, tags []Tag) {
	for _, tag := range tags {
		if c.members[tag] == nil {
			c.members[tag] = make(map[string]struct{})
		}
		c.members[tag][key] = struct{}{}
	}
}

func (c *QueryCache) freshLocked(key string) (any, bool) {
	e, ok := c.entries[key]
	if !ok || e.stale {
		return nil, false
	}
	if c.expiredLocked(key, e) {
		delete(c.entries, key)
		delete(c.releasedAt, key)
		c.logger.Debug().Str("func", "QueryCache.freshLocked").Str("key", key).Msg("unused entry evicted")
		return nil, false
	}
	return e.value, true
}

func (c *QueryCache) expiredLocked(key string, e *entry) bool {
	if c.ttl <= 0 || len(c.subscribers[key]) > 0 {
		return false
	}
	unusedSince := e.storedAt
	if released, ok := c.releasedAt[key]; ok && released.After(unusedSince) {
		unusedSince = released
	}
	return c.now().Sub(unusedSince) > c.ttl
}

func (c *QueryCache) snapshotLocked(tags []Tag) map[Tag]uint64 {
	gens := make(map[Tag]uint64, len(tags))
	for _, tag := range tags {
		gens[tag] = c.generations[tag]
	}
	return gens
}

// flightKey makes reads issued after an invalidation use a different
// singleflight slot than reads issued before it.
func flightKey(key string, gens map[Tag]uint64) string {
	tags := make([]string, 0, len(gens))
	for tag := range gens {
		tags = append(tags, string(tag))
	}
	slices.Sort(tags)

	var b strings.Builder
	b.WriteString(key)
	for _, tag := range tags {
		b.WriteByte('|')
		b.WriteString(tag)
		b.WriteByte('=')
		b.WriteString(strconv.FormatUint(gens[Tag(tag)], 10))
	}
	return b.String()
}

// Query is a typed wrapper around [QueryCache.Fetch].
func Query[T any](ctx context.Context, c *QueryCache, key string, tags []Tag, fetch func(context.Context) (T, error)) (T, error) {
	return typed[T](c.Fetch(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}))
}

// Refetch is a typed wrapper around [QueryCache.Refetch].
func Refetch[T any](ctx context.Context, c *QueryCache, key string, tags []Tag, fetch func(context.Context) (T, error)) (T, error) {
	return typed[T](c.Refetch(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}))
}

func typed[T any](value any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	v, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedType, value)
	}
	return v, nil
}
