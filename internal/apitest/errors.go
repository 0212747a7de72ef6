// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apitest

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request has no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidToken is returned when the bearer token is not a JWT signed
	// by this server or has expired.
	ErrInvalidToken = errors.New("token is expired or invalid")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPostNotFound       = errors.New("post not found")
	ErrNotPostOwner       = errors.New("post belongs to another user")
	ErrInvalidBody        = errors.New("invalid request body")
)
