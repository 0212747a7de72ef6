// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apitest is an in-memory implementation of the blog REST API used to
// exercise the client end to end.
//
// It speaks the same wire format as the real server: JWT bearer tokens issued
// at login, a refresh cookie, {posts: [...]} listings and {status, message}
// error bodies. Every request is recorded so tests can assert on headers,
// cookies and bodies the client actually sent.
package apitest
