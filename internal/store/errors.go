// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by storage methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrStorageNotInitialized is returned when the session table does not
	// exist, i.e. migrations were not applied to the configured database.
	ErrStorageNotInitialized = errors.New("session storage is not initialized")

	// ErrUnknownDriver is returned by [NewClientStorages] for a driver name
	// it cannot open.
	ErrUnknownDriver = errors.New("unknown storage driver")

	// ErrEmptyEncryptionKey is returned by [NewEncryptedStorage] for an
	// empty passphrase.
	ErrEmptyEncryptionKey = errors.New("encryption key is empty")

	// ErrUndecryptableValue is returned when a stored value cannot be
	// decrypted, usually because the passphrase changed.
	ErrUndecryptableValue = errors.New("stored value cannot be decrypted")
)

// Low-level database operation errors. These wrap the driver error of a
// failed SQL-level operation.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan session storage row")
)
