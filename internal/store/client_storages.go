// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-client/internal/config"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/utils"
)

// ClientStorages groups the client-side storages into a single value that
// can be passed to the service layer.
type ClientStorages struct {
	// Session is where the auth service mirrors the signed-in user.
	Session KeyValueStorage

	db        *DB
	sqlStore  *SQLStorage
	ephemeral bool
	logger    *logger.Logger
}

// NewClientStorages initialises the storage selected by cfg.Driver:
//   - memory: a process-lifetime map, nothing to open;
//   - sqlite / postgres: opens the database, runs migrations and returns
//     rows scoped by cfg.Scope.
//
// An empty scope is replaced by a fresh id, making the SQL storage session
// scoped: [ClientStorages.Close] then purges the scope's rows.
//
// A non-empty cfg.EncryptionKey wraps the storage in an [EncryptedStorage].
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	storages, err := openClientStorages(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.EncryptionKey == "" {
		return storages, nil
	}

	encrypted, err := NewEncryptedStorage(ctx, storages.Session, cfg.EncryptionKey)
	if err != nil {
		_ = storages.Close(ctx)
		return nil, fmt.Errorf("enable storage encryption: %w", err)
	}
	storages.Session = encrypted

	log.Info().Str("driver", cfg.Driver).Msg("session storage values are encrypted")
	return storages, nil
}

func openClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)
	switch cfg.Driver {
	case config.DriverMemory, "":
		return &ClientStorages{Session: NewMemoryStorage(), logger: log}, nil
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.Driver, err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newSQLClientStorages(db, cfg.Scope, log), nil
}

func newSQLClientStorages(db *DB, scope string, log *logger.Logger) *ClientStorages {
	ephemeral := scope == ""
	if ephemeral {
		scope = utils.NewUUIDGenerator().Generate()
	}

	sqlStore := NewSQLStorage(db, scope, log)
	return &ClientStorages{
		Session:   sqlStore,
		db:        db,
		sqlStore:  sqlStore,
		ephemeral: ephemeral,
		logger:    log,
	}
}

// Close releases the database connection, if any.
func (c *ClientStorages) Close(ctx context.Context) error {
	if c.db == nil {
		return nil
	}

	if c.ephemeral {
		if err := c.sqlStore.Purge(ctx); err != nil {
			c.logger.Err(err).Str("func", "ClientStorages.Close").Msg("failed to purge session scope")
		}
	}

	return c.db.Close()
}
