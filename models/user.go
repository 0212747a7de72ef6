// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is the identity of an authenticated blog account as the client keeps
// it in the session. It is built from a [LoginResponse] and is never sent to
// the server on its own.
type User struct {
	// ID is the server-assigned user identifier (the "userId" field of the
	// login response).
	ID string `json:"id"`

	// Username is the unique public name of the account. Posts are listed
	// per user by this value.
	Username string `json:"username"`

	// Email is the contact address of the account.
	Email string `json:"email"`

	// Role is the authorization role assigned by the server (e.g. "user",
	// "admin").
	Role string `json:"role"`
}

// LoginRequest carries the credentials sent to POST auth/login.
type LoginRequest struct {
	// Identifier is the username or email the user logs in with.
	Identifier string `json:"identifier" validate:"notblank"`

	// Secret is the plaintext password. It is only ever sent over the wire
	// and never persisted by the client.
	Secret string `json:"secret" validate:"required"`
}

// LoginResponse is the success body of POST auth/login. The whole value is
// persisted into session storage under the "user" key so that a later
// restore can rebuild the session without a network call.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// User maps the identity fields of the response onto a [User].
func (r LoginResponse) User() User {
	return User{
		ID:       r.UserID,
		Username: r.Username,
		Email:    r.Email,
		Role:     r.Role,
	}
}

// RegisterRequest carries the account fields sent to POST auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"notblank"`
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// RegisterResponse is the optional body of a successful registration.
// Registration success is decided by the HTTP status alone; the message is
// informational.
type RegisterResponse struct {
	Message string `json:"message,omitempty"`
}

// LogoutResponse is the optional body of a successful logout.
type LogoutResponse struct {
	Message string `json:"message,omitempty"`
}
