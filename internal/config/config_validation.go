// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the client invariants and normalises the API address.
func (cfg *ClientConfig) validate() error {
	address, err := NormalizeBaseURL(cfg.Adapter.HTTPAddress)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAdapterConfigs, err)
	}
	cfg.Adapter.HTTPAddress = address

	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	switch cfg.Storage.Driver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s driver requires a DSN", ErrInvalidStorageConfigs, cfg.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Cache.TTL < 0 {
		return ErrInvalidCacheConfigs
	}

	if cfg.Workers.ReconnectInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
