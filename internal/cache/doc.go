// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache implements the client-side query cache.
//
// Every cached read is identified by a query key (for example "posts/all" or
// "posts/user/alice") and provides one or more tags. Mutations invalidate a
// tag; every query that provides it becomes stale and is fetched again on
// its next read.
//
// Invalidation is tracked with a per-tag generation counter. A fetch records
// the generations of its tags when it starts and only stores its result as
// fresh if none of them changed in the meantime, so a read that was already
// in flight when a mutation succeeded can never resurrect pre-mutation data.
//
// Identical concurrent reads of the same generation share one fetch
// (golang.org/x/sync/singleflight). A caller whose context is cancelled stops
// waiting immediately; the shared fetch runs on with a detached context and
// may still populate the cache for later readers.
package cache
