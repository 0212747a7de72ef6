// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http/cookiejar"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient backed by its own cookie jar, so that
// cookies set by the server (e.g. a refresh cookie issued at login) are sent
// back with every following request to the same site.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and cookies.
func NewHTTPClient() *HTTPClient {
	client := resty.New()

	// cookiejar.New never returns a non-nil error.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err == nil {
		client.SetCookieJar(jar)
	}

	return &HTTPClient{Client: client}
}
