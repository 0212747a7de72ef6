// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BaseURL is an API base address given on the command line. It implements
// flag.Value and normalises the input with [NormalizeBaseURL].
type BaseURL string

// String returns the normalised address, or "" when unset.
func (u *BaseURL) String() string {
	if u == nil {
		return ""
	}
	return string(*u)
}

// Set parses and normalises s.
func (u *BaseURL) Set(s string) error {
	normalized, err := NormalizeBaseURL(s)
	if err != nil {
		return err
	}
	*u = BaseURL(normalized)
	return nil
}

// NormalizeBaseURL trims raw, defaults the scheme to http, requires a host
// and guarantees a single trailing slash so that relative endpoint paths such
// as "auth/login" resolve under it.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/") + "/", nil
}

// ParseFlags parses the client flags from args (program name excluded).
//
// Flags:
//
//	-a                  blog API base URL
//	-request-timeout    outbound request timeout (e.g. "15s")
//	-storage            session storage driver: memory, sqlite, postgres
//	-d                  storage DSN (sqlite file or postgres URL)
//	-scope              session storage scope id
//	-encryption-key     passphrase encrypting stored session values
//	-cache-ttl          how long unused listings stay cached (e.g. "1m")
//	-reconnect-interval reconnect watcher probe interval (e.g. "30s")
//	-log-level          zerolog level name
//	-c/-config          json file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		baseURL           BaseURL
		requestTimeout    time.Duration
		driver            string
		dsn               string
		scope             string
		encryptionKey     string
		cacheTTL          time.Duration
		reconnectInterval time.Duration
		logLevel          string
		jsonConfigPath    string
	)

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.Var(&baseURL, "a", "Blog API base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	fs.StringVar(&driver, "storage", "", "Session storage driver: memory, sqlite, postgres")
	fs.StringVar(&dsn, "d", "", "Storage DSN")
	fs.StringVar(&scope, "scope", "", "Session storage scope")
	fs.StringVar(&encryptionKey, "encryption-key", "", "Passphrase encrypting stored session values")
	fs.DurationVar(&cacheTTL, "cache-ttl", 0, "Query cache TTL (e.g., 1m)")
	fs.DurationVar(&reconnectInterval, "reconnect-interval", 0, "Reconnect probe interval (e.g., 30s)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{LogLevel: logLevel},
		Storage: Storage{
			Driver:        driver,
			Scope:         scope,
			EncryptionKey: encryptionKey,
			DB:            DB{DSN: dsn},
		},
		Adapter: Adapter{
			HTTPAddress:    baseURL.String(),
			RequestTimeout: requestTimeout,
		},
		Cache:        Cache{TTL: cacheTTL},
		Workers:      Workers{ReconnectInterval: reconnectInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}
