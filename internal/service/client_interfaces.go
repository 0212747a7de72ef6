// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the client operations on top of the adapter,
// the session store, the session storage and the query cache.
package service

import (
	"context"

	"github.com/MKhiriev/go-blog-client/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// ClientAuthService signs the user in and out and keeps the session store
// and the session storage in agreement.
type ClientAuthService interface {
	// Login authenticates with the server. On success the returned token and
	// identity are copied to the session store and persisted as
	// isAuthenticated="true" and user=<login response JSON>.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Logout ends the server session. Only when the server answers with a
	// 2xx status are the session store and the persisted keys cleared.
	Logout(ctx context.Context) error

	// Register creates an account. The session store is not touched.
	Register(ctx context.Context, req models.RegisterRequest) error

	// RestoreSession loads a persisted session into the session store. It
	// reports false with a nil error when nothing was persisted, and false
	// with ErrMalformedSession when the persisted user cannot be decoded.
	RestoreSession(ctx context.Context) (bool, error)

	// SetCredentials replaces the in-memory credentials directly.
	SetCredentials(user models.User, token string)

	// Session returns a snapshot of the in-memory credentials.
	Session() models.Session
}

// ClientBlogService reads posts through the query cache and invalidates the
// post listings after every successful mutation.
type ClientBlogService interface {
	// ListAll returns all posts, from cache when fresh.
	ListAll(ctx context.Context) ([]models.BlogModel, error)

	// ListByUser returns the posts of username, from cache when fresh.
	ListByUser(ctx context.Context, username string) ([]models.BlogModel, error)

	// RefetchAll fetches all posts from the server even if cached.
	RefetchAll(ctx context.Context) ([]models.BlogModel, error)

	// RefetchByUser fetches the posts of username even if cached.
	RefetchByUser(ctx context.Context, username string) ([]models.BlogModel, error)

	Create(ctx context.Context, req models.BlogCreateRequest) (models.BlogResponse, error)
	Update(ctx context.Context, req models.BlogUpdateRequest) (models.BlogResponse, error)
	Delete(ctx context.Context, req models.BlogDeleteRequest) (models.BlogResponse, error)

	// Invalidate marks every post listing stale.
	Invalidate()

	// Subscribe notifies when the listing of username (all posts for "")
	// is invalidated. The returned function ends the subscription.
	Subscribe(username string) (<-chan struct{}, func())
}
