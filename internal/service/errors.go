// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidDataProvided is returned before any request is sent when a
	// request model fails validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrMalformedSession is returned by RestoreSession when the persisted
	// user record cannot be decoded. The session store is left untouched.
	ErrMalformedSession = errors.New("persisted session is malformed")

	// ErrSessionNotPersisted is returned by Login when the server accepted
	// the credentials and the in-memory session was set, but mirroring it
	// into the session storage failed.
	ErrSessionNotPersisted = errors.New("session was not persisted")

	// ErrInvalidLoginResponse is returned when the server reports success
	// but issues no token.
	ErrInvalidLoginResponse = errors.New("login response carries no token")
)

// Wrappers for adapter failures. The adapter error stays in the chain, so
// errors.Is matches both these and adapter sentinels such as
// adapter.ErrUnauthorized.
var (
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrLogoutOnServer   = errors.New("logout on server failed")
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrPostsRequest     = errors.New("posts request failed")
)
