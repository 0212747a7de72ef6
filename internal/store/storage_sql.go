// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-client/internal/logger"
)

// SQLStorage is a [KeyValueStorage] over the session_storage table. All
// rows it touches belong to one scope, so several clients can share a
// database without seeing each other's credentials.
type SQLStorage struct {
	db     *DB
	scope  string
	logger *logger.Logger
}

func NewSQLStorage(db *DB, scope string, log *logger.Logger) *SQLStorage {
	return &SQLStorage{db: db, scope: scope, logger: log}
}

// Scope returns the row partition this storage reads and writes.
func (s *SQLStorage) Scope() string {
	return s.scope
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, bool, error) {
	log := s.logger

	query, args, err := s.db.buildGetValueQuery(s.scope, key)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		err = classifyStorageError(err)
		log.Err(err).
			Str("func", "SQLStorage.Get").
			Str("key", key).
			Msg("failed to read session value")
		if errors.Is(err, ErrStorageNotInitialized) {
			return "", false, err
		}
		return "", false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, true, nil
}

func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	query, args, err := s.db.buildSetValueQuery(s.scope, key, value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "SQLStorage.Set", key, query, args)
}

func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	query, args, err := s.db.buildRemoveValueQuery(s.scope, key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "SQLStorage.Remove", key, query, args)
}

// Purge deletes every row of the scope.
func (s *SQLStorage) Purge(ctx context.Context) error {
	query, args, err := s.db.buildPurgeScopeQuery(s.scope)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	return s.exec(ctx, "SQLStorage.Purge", "", query, args)
}

func (s *SQLStorage) exec(ctx context.Context, fn, key, query string, args []any) error {
	log := s.logger

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		err = classifyStorageError(err)
		log.Err(err).
			Str("func", fn).
			Str("scope", s.scope).
			Str("key", key).
			Msg("failed to execute session storage statement")
		if errors.Is(err, ErrStorageNotInitialized) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
