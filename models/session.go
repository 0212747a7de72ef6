// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session is a point-in-time copy of the client's authentication state.
//
// User and Token are set and cleared together: a Session either carries both
// an identity and a bearer token, or neither of them.
type Session struct {
	// User is the authenticated identity, nil when logged out.
	User *User `json:"user"`

	// Token is the bearer token attached to authenticated requests, empty
	// when logged out.
	Token string `json:"token"`
}

// Authenticated reports whether the session holds both an identity and a
// token.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}
