// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the error envelope the blog API writes on non-2xx
// responses. When the body is not JSON the whole trimmed text ends up in
// Message.
type ErrorResponse struct {
	// Status echoes the HTTP status code when the server includes it.
	Status int `json:"status,omitempty"`

	// Message is the human-readable reason of the failure.
	Message string `json:"message"`

	// Error is a short machine-oriented error name, if any.
	Error string `json:"error,omitempty"`
}
