// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-blog-client/internal/adapter"
	"github.com/MKhiriev/go-blog-client/internal/logger"
)

// ReconnectWatcher probes the API at a fixed interval and calls onReconnect
// when the API becomes reachable again after at least one failed probe.
type ReconnectWatcher struct {
	checker     adapter.HealthChecker
	onReconnect func()
	interval    time.Duration

	mu     sync.Mutex
	online bool

	logger *logger.Logger
}

// NewReconnectWatcher returns a watcher that assumes the API is reachable
// until a probe says otherwise.
func NewReconnectWatcher(checker adapter.HealthChecker, interval time.Duration, onReconnect func(), logger *logger.Logger) *ReconnectWatcher {
	return &ReconnectWatcher{
		checker:     checker,
		onReconnect: onReconnect,
		interval:    interval,
		online:      true,
		logger:      logger,
	}
}

func (r *ReconnectWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Check(ctx)
		}
	}
}

// Check runs a single probe and reports whether the API is reachable.
func (r *ReconnectWatcher) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	err := r.checker.Ping(probeCtx)
	if err != nil && ctx.Err() != nil {
		// shutting down, not a connectivity change
		return r.Online()
	}
	online := err == nil

	r.mu.Lock()
	reconnected := online && !r.online
	wentOffline := !online && r.online
	r.online = online
	r.mu.Unlock()

	switch {
	case reconnected:
		r.logger.Info().Str("func", "ReconnectWatcher.Check").Msg("api reachable again")
		if r.onReconnect != nil {
			r.onReconnect()
		}
	case wentOffline:
		r.logger.Warn().Err(err).Str("func", "ReconnectWatcher.Check").Msg("api unreachable")
	}

	return online
}

// Online reports the result of the last probe.
func (r *ReconnectWatcher) Online() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.online
}
