// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the in-memory credentials of the signed-in user.
//
// A single *Store is created by the application and injected into the
// adapters (as the bearer token source) and the auth service (as the only
// writer). User and token are always set and cleared together.
package session

import (
	"sync"

	"github.com/MKhiriev/go-blog-client/models"
)

// Store is a concurrency-safe holder of the current [models.Session].
type Store struct {
	mu    sync.RWMutex
	user  *models.User
	token string
}

// NewStore returns an empty (signed-out) store.
func NewStore() *Store {
	return &Store{}
}

// Session returns a snapshot of the current credentials. The returned user
// is a copy and may be modified freely.
func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *models.User
	if s.user != nil {
		u := *s.user
		user = &u
	}

	return models.Session{User: user, Token: s.token}
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// SetCredentials replaces both user and token.
func (s *Store) SetCredentials(user models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.token = token
}

// Clear removes both user and token.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
}
