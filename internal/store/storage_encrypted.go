// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// SaltKey is the key under which [EncryptedStorage] keeps its key
// derivation salt in the wrapped storage. The salt is stored unencrypted.
const SaltKey = "encryptionSalt"

const saltSize = 16

// argonParams are the Argon2id tuning parameters.
type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// defaultArgonParams follow the OWASP (2024) recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (AES-256)
var defaultArgonParams = argonParams{
	time:    1,
	memory:  64 * 1024,
	threads: 4,
	keyLen:  32,
}

// EncryptedStorage wraps a [KeyValueStorage] and encrypts every value with
// AES-256-GCM before it reaches the wrapped storage. The key is derived
// from a passphrase with Argon2id.
//
// A stored value is Base64(nonce ‖ ciphertext). The entry key is bound as
// additional data, so a value copied under another key fails to decrypt.
type EncryptedStorage struct {
	inner KeyValueStorage
	aead  cipher.AEAD
}

var _ KeyValueStorage = (*EncryptedStorage)(nil)

// NewEncryptedStorage derives the value key from passphrase and the salt
// found under [SaltKey] in inner. A missing salt is generated and stored,
// so the first use of a storage fixes its salt.
func NewEncryptedStorage(ctx context.Context, inner KeyValueStorage, passphrase string) (*EncryptedStorage, error) {
	return newEncryptedStorage(ctx, inner, passphrase, defaultArgonParams)
}

func newEncryptedStorage(ctx context.Context, inner KeyValueStorage, passphrase string, params argonParams) (*EncryptedStorage, error) {
	if passphrase == "" {
		return nil, ErrEmptyEncryptionKey
	}

	salt, err := loadOrCreateSalt(ctx, inner)
	if err != nil {
		return nil, err
	}

	key := argon2.IDKey([]byte(passphrase), salt, params.time, params.memory, params.threads, params.keyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &EncryptedStorage{inner: inner, aead: gcm}, nil
}

func loadOrCreateSalt(ctx context.Context, inner KeyValueStorage) ([]byte, error) {
	encoded, ok, err := inner.Get(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	if ok {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil || len(salt) != saltSize {
			return nil, fmt.Errorf("%w: stored salt is corrupted", ErrUndecryptableValue)
		}
		return salt, nil
	}

	salt := make([]byte, saltSize)
	if _, err = io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	if err = inner.Set(ctx, SaltKey, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("store salt: %w", err)
	}
	return salt, nil
}

// Get implements [KeyValueStorage]. A value that cannot be decoded or
// authenticated yields [ErrUndecryptableValue].
func (e *EncryptedStorage) Get(ctx context.Context, key string) (string, bool, error) {
	encoded, ok, err := e.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false, fmt.Errorf("%w: %s: decode base64: %v", ErrUndecryptableValue, key, err)
	}

	nonceSize := e.aead.NonceSize()
	if len(blob) < nonceSize {
		return "", false, fmt.Errorf("%w: %s: ciphertext too short", ErrUndecryptableValue, key)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", false, fmt.Errorf("%w: %s: %v", ErrUndecryptableValue, key, err)
	}

	return string(plaintext), true, nil
}

// Set implements [KeyValueStorage].
func (e *EncryptedStorage) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	blob := e.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return e.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(blob))
}

// Remove implements [KeyValueStorage].
func (e *EncryptedStorage) Remove(ctx context.Context, key string) error {
	return e.inner.Remove(ctx, key)
}
