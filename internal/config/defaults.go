// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultHTTPAddress       = "http://localhost:4040/api/"
	defaultRequestTimeout    = 15 * time.Second
	defaultCacheTTL          = 60 * time.Second
	defaultReconnectInterval = 30 * time.Second
	defaultLogLevel          = "debug"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{LogLevel: defaultLogLevel},
		Storage: Storage{
			Driver: DriverMemory,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Cache:   Cache{TTL: defaultCacheTTL},
		Workers: Workers{ReconnectInterval: defaultReconnectInterval},
	}
}
