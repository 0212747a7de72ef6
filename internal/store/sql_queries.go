// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	sessionTable = "session_storage"

	columnScope = "scope"
	columnKey   = "item_key"
	columnValue = "item_value"

	// upsertSuffix is understood by both postgres and sqlite (3.24+).
	upsertSuffix = "ON CONFLICT (scope, item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = CURRENT_TIMESTAMP"
)

func (db *DB) buildGetValueQuery(scope, key string) (string, []any, error) {
	return db.builder.
		Select(columnValue).
		From(sessionTable).
		Where(sq.Eq{columnScope: scope, columnKey: key}).
		ToSql()
}

func (db *DB) buildSetValueQuery(scope, key, value string) (string, []any, error) {
	return db.builder.
		Insert(sessionTable).
		Columns(columnScope, columnKey, columnValue).
		Values(scope, key, value).
		Suffix(upsertSuffix).
		ToSql()
}

func (db *DB) buildRemoveValueQuery(scope, key string) (string, []any, error) {
	return db.builder.
		Delete(sessionTable).
		Where(sq.Eq{columnScope: scope, columnKey: key}).
		ToSql()
}

func (db *DB) buildPurgeScopeQuery(scope string) (string, []any, error) {
	return db.builder.
		Delete(sessionTable).
		Where(sq.Eq{columnScope: scope}).
		ToSql()
}
