// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds process-level client settings.
type ClientApp struct {
	// LogLevel is the zerolog level name applied at startup.
	LogLevel string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the normalised blog API base URL (trailing slash).
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains SQL storage connection settings.
type ClientDB struct {
	// DSN is the sqlite path or postgres connection string.
	DSN string
}

// ClientStorage selects the session storage backend.
type ClientStorage struct {
	// Driver is one of [DriverMemory], [DriverSQLite], [DriverPostgres].
	Driver string
	// Scope partitions SQL storage rows per client session.
	Scope string
	// EncryptionKey enables value encryption when non-empty.
	EncryptionKey string
	// DB holds SQL settings; unused by the memory driver.
	DB ClientDB
}

// ClientCache holds query cache settings.
type ClientCache struct {
	// TTL is how long an unused listing stays cached; zero disables expiry.
	TTL time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ReconnectInterval defines how often the API reachability is probed.
	ReconnectInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Cache   ClientCache
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client configuration from args
// (program name excluded).
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{LogLevel: cfg.App.LogLevel},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Driver:        cfg.Storage.Driver,
			Scope:         cfg.Storage.Scope,
			EncryptionKey: cfg.Storage.EncryptionKey,
			DB:            ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Cache:   ClientCache{TTL: cfg.Cache.TTL},
		Workers: ClientWorkers{ReconnectInterval: cfg.Workers.ReconnectInterval},
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}
