// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// subscription turns cache invalidation notifications of one listing into
// tea messages.
type subscription struct {
	updates <-chan struct{}
	cancel  func()
	done    chan struct{}
	once    sync.Once
}

func newSubscription(updates <-chan struct{}, cancel func()) *subscription {
	return &subscription{updates: updates, cancel: cancel, done: make(chan struct{})}
}

// wait blocks until the listing is invalidated or the subscription stops.
func (s *subscription) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.updates:
			return postsInvalidatedMsg{sub: s}
		case <-s.done:
			return nil
		}
	}
}

func (s *subscription) stop() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		close(s.done)
	})
}
