// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "strings"

const (
	pathLogin    = "auth/login"
	pathLogout   = "auth/logout"
	pathRegister = "auth/register"

	pathPostsAll    = "posts/all"
	pathPostsByUser = "posts/user/{username}"
	pathPostCreate  = "posts/post/create"
	pathPostUpdate  = "posts/post/update"
	pathPostDelete  = "posts/post/delete"

	publicPostsByUserPrefix = "posts/user"
)

// PublicEndpoint reports whether path must be requested without an
// Authorization header: posts/all, and anything under posts/user. Every
// other endpoint carries the bearer token when one is present.
func PublicEndpoint(path string) bool {
	path = strings.TrimPrefix(path, "/")
	return path == pathPostsAll || strings.HasPrefix(path, publicPostsByUserPrefix)
}
