// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client services
// and the blog REST API.
//
// [HTTPServerAdapter] implements every interface of this package over resty.
// It attaches the bearer token of a [TokenSource] to each request whose path
// is not a [PublicEndpoint], sends cookies with every request and turns
// non-2xx responses into [*APIError] values that match the sentinel errors in
// errors.go with [errors.Is] (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// TokenSource yields the bearer token current at call time, or "" when
// signed out.
type TokenSource interface {
	Token() string
}

// AuthAdapter talks to the auth endpoints.
type AuthAdapter interface {
	// Login posts credentials to auth/login and returns the issued token
	// together with the identity of the user.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Logout posts to auth/logout. Only a 2xx response is a success.
	Logout(ctx context.Context) error

	// Register posts a new account to auth/register. Only a 2xx response is a
	// success.
	Register(ctx context.Context, req models.RegisterRequest) error
}

// BlogAdapter talks to the posts endpoints.
type BlogAdapter interface {
	// ListAll returns every post (GET posts/all).
	ListAll(ctx context.Context) ([]models.BlogModel, error)

	// ListByUser returns the posts of username (GET posts/user/{username}).
	ListByUser(ctx context.Context, username string) ([]models.BlogModel, error)

	// Create publishes a new post.
	Create(ctx context.Context, req models.BlogCreateRequest) (models.BlogResponse, error)

	// Update replaces title and content of an existing post.
	Update(ctx context.Context, req models.BlogUpdateRequest) (models.BlogResponse, error)

	// Delete removes a post. Only its id and title are sent.
	Delete(ctx context.Context, req models.BlogDeleteRequest) (models.BlogResponse, error)
}

// HealthChecker probes whether the API can be reached at all.
type HealthChecker interface {
	// Ping returns nil when the API answered with any HTTP response.
	Ping(ctx context.Context) error
}

// ServerAdapter is the full API surface used by the client.
type ServerAdapter interface {
	AuthAdapter
	BlogAdapter
	HealthChecker
}
